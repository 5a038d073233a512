package cardimage

import "strings"

// Wrap splits text into lines using greedy word accumulation: words are
// appended to the current line until adding the next one would push the
// measured width past maxWidth, at which point the line is flushed and a new
// one starts. A single word wider than maxWidth still occupies its own line;
// words are never broken apart.
//
// measure must return the rendered width of a string for the active font
// face. Whitespace runs collapse to single spaces.
func Wrap(measure func(string) float64, text string, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, 4)
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		if measure(candidate) > maxWidth {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	return append(lines, line)
}
