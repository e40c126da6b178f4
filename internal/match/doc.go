// Package match ranks known scheme names against a misspelled one so that
// configuration errors can say "did you mean".
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Suggest: returns the closest candidates, case-insensitively
package match
