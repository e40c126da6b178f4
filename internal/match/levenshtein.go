package match

import "unicode/utf8"

// Levenshtein returns the edit distance between a and b: the fewest single
// rune insertions, deletions or substitutions turning one into the other.
//
// Time complexity: O(len(a) * len(b))
// Space complexity: O(min(len(a), len(b))), a single matrix row.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	// The row is sized by the shorter input
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for j, cb := range rb {
		// diag holds the previous row's value left of the current cell
		diag := row[0]
		row[0] = j + 1

		for i, ca := range ra {
			above := row[i+1]

			cost := 1
			if ca == cb {
				cost = 0
			}

			row[i+1] = min(
				above+1,   // deletion
				row[i]+1,  // insertion
				diag+cost, // substitution
			)
			diag = above
		}
	}

	return row[len(ra)]
}

// Similarity maps the edit distance onto [0, 1], 1 meaning identical.
// The score is 1 - distance / max(runes(a), runes(b)).
func Similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(longest)
}
