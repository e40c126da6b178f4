package match

import (
	"sort"
	"strings"
)

// MinSimilarity is the lowest score a candidate needs to be suggested.
const MinSimilarity = 0.5

type scored struct {
	name  string
	score float64
	order int
}

// Suggest returns up to limit candidates close to input, best first. The
// comparison ignores case, matching how scheme names are looked up. Ties
// keep the candidates' original order.
func Suggest(input string, candidates []string, limit int) []string {
	needle := strings.ToLower(input)

	var ranked []scored

	for i, c := range candidates {
		score := Similarity(needle, strings.ToLower(c))
		if score >= MinSimilarity {
			ranked = append(ranked, scored{name: c, score: score, order: i})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].order < ranked[j].order
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.name
	}

	return out
}
