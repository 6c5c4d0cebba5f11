package common

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	err := NewUserError("Pack ID and name are required", ErrInvalidInput)

	assert.Equal(t, "Pack ID and name are required: invalid input", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "Pack ID and name are required", UserMessage(err))

	wrapped := fmt.Errorf("saving pack: %w", err)
	assert.Equal(t, "Pack ID and name are required", UserMessage(wrapped))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))

	assert.Equal(t, "just a message", (&UserError{UserMessage: "just a message"}).Error())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHandler(t *testing.T) {
	var buf bytes.Buffer

	h, err := NewHandler(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)
	slog.New(h).Info("loaded dataset", "packs", 3)
	assert.Contains(t, buf.String(), `"packs":3`)

	buf.Reset()
	h, err = NewHandler(&buf, slog.LevelWarn, "console")
	require.NoError(t, err)
	slog.New(h).Info("hidden")
	assert.Empty(t, buf.String())

	_, err = NewHandler(&buf, slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
