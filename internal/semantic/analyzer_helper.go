package semantic

import "sort"

// maxSuggestionDistance bounds how far a misspelling may be from a known name
const maxSuggestionDistance = 2

// findSimilarVariables returns assigned names close enough to name to be a
// likely typo. Single-letter names are never offered.
func (a *Analyzer) findSimilarVariables(name string) []string {
	var similar []string
	for _, candidate := range a.assigned.ToSlice() {
		if len(candidate) > 1 && levenshteinDistance(name, candidate) <= maxSuggestionDistance {
			similar = append(similar, candidate)
		}
	}
	sort.Strings(similar)
	return similar
}

// levenshteinDistance counts single-byte insertions, deletions and
// substitutions turning a into b, keeping one row of the edit table
func levenshteinDistance(a, b string) int {
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(a); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			above := row[j]
			if a[i-1] == b[j-1] {
				row[j] = diag
			} else {
				row[j] = 1 + min(diag, above, row[j-1])
			}
			diag = above
		}
	}
	return row[len(b)]
}
