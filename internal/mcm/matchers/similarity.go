package matchers

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Similarity scores how alike two strings are, from 0 to 100.
type Similarity interface {
	Score(a, b string) int
}

// SimilarityFunc adapts a plain function to Similarity.
type SimilarityFunc func(a, b string) int

// Score calls f(a, b).
func (f SimilarityFunc) Score(a, b string) int {
	return f(a, b)
}

// TokenSet scores strings by token-set overlap. It is the default Similarity.
type TokenSet struct{}

// Score returns TokenSetRatio(a, b).
func (TokenSet) Score(a, b string) int {
	return TokenSetRatio(a, b)
}

var _ Similarity = TokenSet{}

// Process normalises s for comparison: every rune that is not a letter,
// digit or underscore becomes a space, the result is lowercased and trimmed.
func Process(s string) string {
	out := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.TrimSpace(out)
}

// Ratio is the indel similarity of a and b: 2*LCS / (len(a)+len(b)),
// scaled to 0-100 and rounded half to even. An empty string scores 0.
func Ratio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	return scale(2 * float64(lcs(ra, rb)) / float64(total))
}

// TokenSetRatio compares the word sets of a and b, ignoring order,
// duplicates, case and punctuation. A string whose tokens are a subset
// of the other's scores 100.
func TokenSetRatio(a, b string) int {
	pa, pb := Process(a), Process(b)
	if pa == "" || pb == "" {
		return 0
	}

	ta, tb := tokenSet(pa), tokenSet(pb)

	var sect, onlyA, onlyB []string
	for t := range ta {
		if _, ok := tb[t]; ok {
			sect = append(sect, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range tb {
		if _, ok := ta[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(sect)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	s := strings.Join(sect, " ")
	ca := strings.TrimSpace(s + " " + strings.Join(onlyA, " "))
	cb := strings.TrimSpace(s + " " + strings.Join(onlyB, " "))

	return max(Ratio(s, ca), Ratio(s, cb), Ratio(ca, cb))
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// lcs returns the length of the longest common subsequence of a and b.
func lcs(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func scale(r float64) int {
	return int(math.RoundToEven(100 * r))
}
