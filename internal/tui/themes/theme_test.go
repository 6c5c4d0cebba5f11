package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, CatppuccinMocha.Primary, GetTheme("catppuccin-mocha").Primary)
	assert.Equal(t, Default.Primary, GetTheme("default").Primary)
	assert.Equal(t, Default.Primary, GetTheme("nope").Primary)
	assert.NotEqual(t, Default.Primary, CatppuccinMocha.Primary)
}

func TestGetCategoryIcon(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"Daily Deals", "☀️"},
		{"WEEKLY", "📅"},
		{"", "📦"},
		{"Mystery", "📦"},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCategoryIcon(tt.category))
		})
	}
}
