package matchers

import "sort"

// InSetThreshold is the score FuzzyInSet must exceed to treat two
// strings as equal. A score of exactly 95 is not a match.
const InSetThreshold = 95

// Match is one ranked candidate.
type Match struct {
	Target string `json:"target"`
	Score  int    `json:"score"`
}

// BestMatch ranks targets against s by token-set similarity and returns
// at most topN matches, best first. A topN below 1 returns all targets.
// Equal scores keep the order of targets.
func BestMatch(s string, targets []string, topN int) []Match {
	return BestMatchWith(TokenSet{}, s, targets, topN)
}

// BestMatchWith is BestMatch with a custom similarity.
func BestMatchWith(sim Similarity, s string, targets []string, topN int) []Match {
	matches := make([]Match, len(targets))
	for i, t := range targets {
		matches[i] = Match{Target: t, Score: sim.Score(s, t)}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if topN > 0 && len(matches) > topN {
		matches = matches[:topN]
	}
	return matches
}

// FuzzyInSet reports whether value fuzzily equals, or is contained in,
// any member of set. Comparison is case-insensitive.
func FuzzyInSet(value string, set []string) bool {
	for _, item := range set {
		if inSet(TokenSetRatio(value, item)) {
			return true
		}
	}
	return false
}

func inSet(score int) bool {
	return score > InSetThreshold
}
