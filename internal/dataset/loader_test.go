package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/packcal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packs.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o600))

	res := NewLoader(path, 0).Load(context.Background())

	assert.False(t, res.Failed)
	assert.Empty(t, res.Advisories)
	assert.Len(t, res.Dataset.PackDefs, 2)
	assert.Equal(t, path, res.Source)
}

func TestLoader_MissingFileDegrades(t *testing.T) {
	res := NewLoader(filepath.Join(t.TempDir(), "nope.json"), 0).Load(context.Background())

	assert.True(t, res.Failed)
	require.Len(t, res.Advisories, 1)
	assert.Contains(t, res.Advisories[0], "failed to open")
	assert.Equal(t, Empty(), res.Dataset)
}

func TestLoader_NoSource(t *testing.T) {
	res := NewLoader("", 0).Load(context.Background())
	assert.True(t, res.Failed)
	assert.Equal(t, Empty(), res.Dataset)
}

func TestLoader_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/packs.json":
			assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleJSON))
		case "/broken.json":
			_, _ = w.Write([]byte(`{"packDefs": 12}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	res := NewLoader(srv.URL+"/packs.json", time.Second).Load(ctx)
	assert.False(t, res.Failed)
	assert.Len(t, res.Dataset.PackDefs, 2)

	res = NewLoader(srv.URL+"/missing.json", time.Second).Load(ctx)
	assert.True(t, res.Failed)
	require.Len(t, res.Advisories, 1)
	assert.Contains(t, res.Advisories[0], "HTTP 404")

	res = NewLoader(srv.URL+"/broken.json", time.Second).Load(ctx)
	assert.False(t, res.Failed)
	assert.Equal(t, []string{"packDefs is not an array; treating it as empty"}, res.Advisories)
	assert.Equal(t, []model.PackDefinition{}, res.Dataset.PackDefs)
}

func TestEncodeRoundTrip(t *testing.T) {
	ds, _ := Normalize([]byte(sampleJSON))
	data, err := Encode(ds)
	require.NoError(t, err)

	again, advisories := Normalize(data)
	assert.Empty(t, advisories)
	assert.Equal(t, ds, again)
}

func TestSummarize(t *testing.T) {
	s := Summarize(baseDataset(), true)
	assert.Equal(t, Summary{Packs: 2, Rules: 2, HasOverride: true}, s)
	assert.Equal(t, "Packs: 2   |   Rules: 2   |   Override: YES", s.String())
	assert.Equal(t, "Packs: 0   |   Rules: 0   |   Override: NO", Summarize(nil, false).String())
}
