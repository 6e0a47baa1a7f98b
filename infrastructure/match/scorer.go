// Package match provides the fuzzy string similarity strategies and the
// matching policy used by the NLU evaluator.
package match

import (
	"fmt"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/andeslab/asreval/internal/ports"
)

var _ ports.FuzzyScorer = Scorer{}

// Strategy selects which similarity variant a comparison uses.
type Strategy string

// Supported similarity strategies.
const (
	// StrategyPartial scores the best window of the haystack against the
	// needle, tolerant of surrounding noise. Used for keywords and for
	// longer slot values.
	StrategyPartial Strategy = "partial"

	// StrategyTokenSet scores token-set overlap, tolerant of reordering.
	// Used for short slot values, where substring containment would
	// false-hit inside unrelated longer words ("dos" inside "todos").
	StrategyTokenSet Strategy = "token_set"

	// StrategyRatio scores whole-string similarity from normalized
	// Levenshtein distance.
	StrategyRatio Strategy = "ratio"
)

// Scorer implements ports.FuzzyScorer. The zero value is ready to use;
// Scorer is stateless and safe for concurrent use.
type Scorer struct{}

// Partial returns the substring-containment similarity of needle within
// haystack, 0-100.
func (Scorer) Partial(needle, haystack string) int {
	return fuzzy.PartialRatio(needle, haystack)
}

// TokenSet returns the token-set similarity of the two strings, 0-100.
func (Scorer) TokenSet(a, b string) int {
	return fuzzy.TokenSetRatio(a, b)
}

// Ratio returns whole-string similarity computed as
// 100 * (1 - distance/maxRuneLen), 0-100. Two empty strings score 100.
func (Scorer) Ratio(a, b string) int {
	if a == b {
		return 100
	}

	distance := levenshtein.ComputeDistance(a, b)

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 100
	}

	score := 100 - (100*distance)/maxLen
	if score < 0 {
		score = 0
	}
	return score
}

// Score applies the given strategy. It returns an error for an unknown
// strategy so configuration typos never silently degrade to a default.
func (s Scorer) Score(strategy Strategy, needle, haystack string) (int, error) {
	switch strategy {
	case StrategyPartial:
		return s.Partial(needle, haystack), nil
	case StrategyTokenSet:
		return s.TokenSet(needle, haystack), nil
	case StrategyRatio:
		return s.Ratio(needle, haystack), nil
	default:
		return 0, fmt.Errorf("unknown match strategy %q", strategy)
	}
}
