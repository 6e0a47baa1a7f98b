// Package normalize implements the text normalization pipeline that
// canonicalizes raw ASR transcripts before NLU and WER scoring.
//
// The pipeline is an ordered sequence of rewriting passes. Order is a
// correctness invariant, not a style choice: each pass assumes the normal
// form produced by the previous ones. Letter/digit separation and digit
// unification must both run before numeral classification so that fragmented
// and concatenated codes alike arrive as single contiguous digit runs; the
// replacement table must run after separation (so multi-word keys match) but
// before numeral conversion (so patterns like "1 tb" are rewritten while the
// digit still exists).
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/andeslab/asreval/internal/ports"
)

// lowerCaser is a package-level Spanish-aware caser for performance.
// This avoids creating a new caser for each normalization call.
var lowerCaser = cases.Lower(language.Spanish)

var (
	reDotComma    = regexp.MustCompile(`[.,]`)
	reLetterDigit = regexp.MustCompile(`([a-záéíóúñ])([0-9])`)
	reDigitLetter = regexp.MustCompile(`([0-9])([a-záéíóúñ])`)
	reDigitJoin   = regexp.MustCompile(`([0-9])[\s-]+([0-9])`)
	reDigitRun    = regexp.MustCompile(`[0-9]+`)
	reSymbols     = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	reSpaces      = regexp.MustCompile(`\s+`)
)

// Replacement is one entry of the domain replacement table: a literal
// lowercase source phrase rewritten to a literal lowercase target phrase.
type Replacement struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// compiledReplacement pairs a table entry with its whole-word,
// case-insensitive pattern.
type compiledReplacement struct {
	pattern *regexp.Regexp
	to      string
}

// Normalizer canonicalizes raw Spanish ASR transcripts. It is immutable
// after construction and safe for concurrent use.
type Normalizer struct {
	converter    ports.NumberConverter
	replacements []compiledReplacement
	unoFix       *regexp.Regexp
}

// Option configures a Normalizer during construction.
type Option func(*options)

type options struct {
	replacements   []Replacement
	masculineNouns []string
}

// WithReplacements overrides the default domain replacement table.
// Entries are applied in slice order; insertion order is significant because
// an earlier entry's output is never re-triggered by a later key within the
// same call, but the entries themselves are evaluated sequentially.
func WithReplacements(replacements []Replacement) Option {
	return func(o *options) { o.replacements = replacements }
}

// WithMasculineNouns overrides the nouns that trigger the "uno" -> "un"
// agreement fix-up after numeral conversion.
func WithMasculineNouns(nouns []string) Option {
	return func(o *options) { o.masculineNouns = nouns }
}

// NewNormalizer creates a Normalizer that spells numerals through the given
// converter. With no options it carries the default Spanish domain
// replacement table and masculine-noun list.
func NewNormalizer(converter ports.NumberConverter, opts ...Option) (*Normalizer, error) {
	if converter == nil {
		return nil, fmt.Errorf("number converter is required")
	}

	o := options{
		replacements:   DefaultReplacements(),
		masculineNouns: DefaultMasculineNouns(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	compiled := make([]compiledReplacement, 0, len(o.replacements))
	for _, r := range o.replacements {
		if strings.TrimSpace(r.From) == "" {
			return nil, fmt.Errorf("replacement table entry with blank source (target %q)", r.To)
		}
		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(r.From) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compiling replacement %q: %w", r.From, err)
		}
		compiled = append(compiled, compiledReplacement{pattern: pattern, to: r.To})
	}

	var unoFix *regexp.Regexp
	if len(o.masculineNouns) > 0 {
		quoted := make([]string, len(o.masculineNouns))
		for i, noun := range o.masculineNouns {
			quoted[i] = regexp.QuoteMeta(noun)
		}
		unoFix = regexp.MustCompile(`\buno (` + strings.Join(quoted, "|") + `)\b`)
	}

	return &Normalizer{
		converter:    converter,
		replacements: compiled,
		unoFix:       unoFix,
	}, nil
}

// Normalize canonicalizes a raw transcript. An empty input yields the empty
// string. The result is a fixed point: normalizing it again returns it
// unchanged.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	// Pass 1: Spanish-aware lowercase.
	text = lowerCaser.String(text)

	// Pass 2: periods and commas become spaces so abbreviations like
	// "f.a." split into separable tokens.
	text = reDotComma.ReplaceAllString(text, " ")

	// Pass 3: split letter/digit concatenations ("fa4095" -> "fa 4095").
	text = reLetterDigit.ReplaceAllString(text, "$1 $2")
	text = reDigitLetter.ReplaceAllString(text, "$1 $2")

	// Pass 4: domain replacement table, whole-word and case-insensitive,
	// in table order.
	for _, r := range n.replacements {
		text = r.pattern.ReplaceAllString(text, r.to)
	}

	// Pass 5: join digit runs fragmented by whitespace or hyphens
	// ("85-20-25" -> "852025"). RE2 has no lookbehind, so matches consume
	// the trailing digit; iterate to a fixed point to catch chains.
	for {
		joined := reDigitJoin.ReplaceAllString(text, "$1$2")
		if joined == text {
			break
		}
		text = joined
	}

	// Pass 6: numeral classification and spelling.
	text = reDigitRun.ReplaceAllStringFunc(text, n.spellRun)

	// Pass 7: strip remaining punctuation and symbols. Underscore is
	// neither \p{L} nor \p{N}, so it is stripped with the rest.
	text = reSymbols.ReplaceAllString(text, " ")

	// Pass 8: gender agreement for "uno" before known masculine nouns.
	if n.unoFix != nil {
		text = n.unoFix.ReplaceAllString(text, "un $1")
	}

	// Pass 9: collapse whitespace.
	text = reSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// spellRun converts one maximal digit run to words. A run is a code, spelled
// digit by digit, when it starts with zero and is longer than one digit or
// when it is four or more digits long; otherwise it is a quantity spelled as
// a single cardinal. Conversion failure leaves the run unchanged.
func (n *Normalizer) spellRun(run string) string {
	if isCode(run) {
		return n.spellDigits(run)
	}

	value, err := strconv.Atoi(run)
	if err != nil {
		return run
	}
	words, err := n.converter.ToWords(value)
	if err != nil {
		return run
	}
	return words
}

func isCode(run string) bool {
	return len(run) >= 4 || (len(run) > 1 && run[0] == '0')
}

func (n *Normalizer) spellDigits(run string) string {
	words := make([]string, len(run))
	for i, d := range []byte(run) {
		word, err := n.converter.ToWords(int(d - '0'))
		if err != nil {
			return run
		}
		words[i] = word
	}
	return strings.Join(words, " ")
}
