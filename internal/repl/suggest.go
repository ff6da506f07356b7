package repl

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance is the largest edit distance still offered as a
// correction.
const maxSuggestDistance = 2

// suggest returns the registered name closest to name, or "" when none
// is close enough. Comparison ignores case so "INIT" suggests "init";
// ties go to the first of names.
func suggest(name string, names []string) string {
	name = strings.ToLower(name)

	best, bestDist := "", maxSuggestDistance+1
	for _, candidate := range names {
		d := levenshtein.ComputeDistance(name, candidate)
		if d < bestDist && d < len(name) {
			best, bestDist = candidate, d
		}
	}
	return best
}
