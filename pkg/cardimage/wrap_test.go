package cardimage_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wishmint/wishmint/pkg/cardimage"
)

// charWidth measures every rune as 10 units wide, which makes expected line
// breaks easy to compute by hand.
func charWidth(s string) float64 {
	return float64(len([]rune(s))) * 10
}

func TestWrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{
			name:     "empty text",
			text:     "",
			maxWidth: 100,
			want:     nil,
		},
		{
			name:     "whitespace only",
			text:     "  \t \n ",
			maxWidth: 100,
			want:     nil,
		},
		{
			name:     "fits on one line",
			text:     "happy days",
			maxWidth: 100,
			want:     []string{"happy days"},
		},
		{
			name:     "breaks at word boundary",
			text:     "merry christmas dear friend",
			maxWidth: 150,
			want:     []string{"merry christmas", "dear friend"},
		},
		{
			name:     "one word per line when narrow",
			text:     "one two three",
			maxWidth: 50,
			want:     []string{"one", "two", "three"},
		},
		{
			name:     "oversized word gets its own line",
			text:     "hi supercalifragilistic yo",
			maxWidth: 50,
			want:     []string{"hi", "supercalifragilistic", "yo"},
		},
		{
			name:     "whitespace runs collapse",
			text:     "warm   wishes\n\tto you",
			maxWidth: 500,
			want:     []string{"warm wishes to you"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := cardimage.Wrap(charWidth, tt.text, tt.maxWidth)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWrap_LinesNeverExceedMaxWidth(t *testing.T) {
	t.Parallel()

	text := "Wishing you a season full of light and laughter and a new year of peace"
	lines := cardimage.Wrap(charWidth, text, 200)

	assert.NotEmpty(t, lines)
	for _, line := range lines {
		assert.LessOrEqual(t, charWidth(line), 200.0, "line %q overflows", line)
	}
	assert.Equal(t, strings.Join(strings.Fields(text), " "), strings.Join(lines, " "))
}
