package match

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Package-level validator instance for configuration validation.
var validate = validator.New()

// Policy captures the tunable matching heuristics as explicit configuration
// rather than inlined logic: the hit threshold and the value-length cutoff
// that switches short slot values to token-set matching.
type Policy struct {
	// Threshold is the minimum 0-100 score that counts as a hit.
	Threshold int `yaml:"threshold" json:"threshold" validate:"min=0,max=100"`

	// ShortValueLimit is the maximum rune length, inclusive, at which an
	// expected slot value is matched with the token-set strategy instead
	// of substring containment.
	ShortValueLimit int `yaml:"short_value_limit" json:"short_value_limit" validate:"min=0"`
}

// DefaultPolicy returns the policy the evaluators converged on: hits at
// score >= 80, token-set matching for values of 6 runes or fewer.
func DefaultPolicy() Policy {
	return Policy{Threshold: 80, ShortValueLimit: 6}
}

// Validate checks the policy's configuration constraints.
func (p Policy) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("match policy validation failed: %w", err)
	}
	return nil
}

// ForValue selects the strategy for an expected slot value by its length.
func (p Policy) ForValue(value string) Strategy {
	if utf8.RuneCountInString(value) <= p.ShortValueLimit {
		return StrategyTokenSet
	}
	return StrategyPartial
}

// Hit reports whether a score meets the threshold.
func (p Policy) Hit(score int) bool { return score >= p.Threshold }
