package match

import (
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"a", "a", 0},
		{"C2", "C2", 0},

		// Empty vs non-empty
		{"", "abc", 3},
		{"abc", "", 3},

		// Single character operations
		{"a", "b", 1},
		{"a", "ab", 1},
		{"ab", "a", 1},

		// Multiple operations
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},

		// Case-sensitive
		{"c2", "C2", 1},

		// Scheme names
		{"C3", "C2", 1},
		{"WENO3", "W3", 3},
		{"U1", "U2", 1},

		// Runes, not bytes
		{"Zweiter Ordnung", "Zweite Ordnung", 1},
		{"é", "e", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := Levenshtein(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}

			resultReverse := Levenshtein(tt.b, tt.a)
			if result != resultReverse {
				t.Errorf("Levenshtein symmetry failed: (%q, %q) = %d, (%q, %q) = %d",
					tt.a, tt.b, result, tt.b, tt.a, resultReverse)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("", ""); got != 1.0 {
		t.Errorf("Similarity of empty strings = %v, want 1", got)
	}

	if got := Similarity("C2", "C4"); got != 0.5 {
		t.Errorf("Similarity(C2, C4) = %v, want 0.5", got)
	}

	if got := Similarity("ab", "cd"); got != 0 {
		t.Errorf("Similarity(ab, cd) = %v, want 0", got)
	}
}
