// Package ports defines the interfaces between the evaluation core and the
// external primitives it depends on: number-to-words conversion, fuzzy string
// similarity, and metrics collection. The core treats all three as black
// boxes; infrastructure packages provide the implementations.
package ports

import "time"

// NumberConverter maps a non-negative integer to its spoken-word form in the
// target language. Implementations return an error for values outside their
// supported range; callers fall back to leaving the original text unchanged.
type NumberConverter interface {
	// ToWords returns the cardinal word form of n, e.g. 50 -> "cincuenta".
	ToWords(n int) (string, error)
}

// FuzzyScorer computes 0-100 similarity scores between two strings.
// A score of 100 means an effectively perfect match.
//
// Implementations must be stateless and safe for concurrent use; scoring
// runs on the per-record hot path.
type FuzzyScorer interface {
	// Partial scores how well needle appears as a substring of haystack,
	// tolerant of surrounding noise and truncated token boundaries.
	Partial(needle, haystack string) int

	// TokenSet scores the overlap of the two strings' token sets,
	// tolerant of word reordering and repeated words.
	TokenSet(a, b string) int

	// Ratio scores whole-string similarity from normalized edit distance.
	Ratio(a, b string) int
}

// MetricsCollector receives operational metrics from the corpus runner.
// Implementations must be safe for concurrent use.
type MetricsCollector interface {
	// RecordLatency records the duration of a named operation.
	RecordLatency(operation string, duration time.Duration)

	// RecordCounter increments a named counter, partitioned by status.
	RecordCounter(metric, status string, value float64)

	// RecordGauge sets a named gauge to the given value.
	RecordGauge(metric string, value float64)
}
