// Package suggest offers fuzzy "did you mean" hints for misspelled
// identifiers, used to enrich runtime error messages.
package suggest

import "github.com/lithammer/fuzzysearch/fuzzy"

// Closest returns the candidate in candidates that best matches name,
// provided it is close enough to be a plausible typo (Levenshtein
// distance at most min(3, len(name)/2), and never less than 1). It
// returns ("", false) when candidates is empty, nothing is close enough,
// or the best candidate is name itself.
func Closest(name string, candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}

	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		return "", false
	}

	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}

	maxDistance := len(name) / 2
	if maxDistance > 3 {
		maxDistance = 3
	}
	if maxDistance < 1 {
		maxDistance = 1
	}
	if best.Distance > maxDistance || best.Target == name {
		return "", false
	}
	return best.Target, true
}
