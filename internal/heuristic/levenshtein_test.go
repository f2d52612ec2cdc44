package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"identical", "paypal.com", "paypal.com", 0},
		{"single substitution", "paypa1.com", "paypal.com", 1},
		{"single deletion", "amazn.com", "amazon.com", 1},
		{"single insertion", "appple.com", "apple.com", 1},
		{"two edits", "g00gle.com", "google.com", 2},
		{"empty against word", "", "abc", 3},
		{"word against empty", "abc", "", 3},
		{"both empty", "", "", 0},
		{"unrelated", "kitten", "sitting", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, levenshteinDistance(tt.a, tt.b))
			assert.Equal(t, tt.want, levenshteinDistance(tt.b, tt.a))
		})
	}
}
