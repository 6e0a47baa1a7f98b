package domain

import "fmt"

// Slot is a named piece of information expected to appear in an utterance,
// together with the value the speaker is expected to have said.
// Slot order within a rule follows the configuration file.
type Slot struct {
	// Key names the slot, e.g. "cliente" or "cantidad".
	Key string `json:"key"`

	// Value is the expected spoken value in its normalized form.
	Value string `json:"value"`
}

// ScenarioRule describes one predefined spoken-command test case: the intent
// the utterance expresses, the keywords that must all be present for the
// intent to count as matched, and the slot values expected to appear.
// Rules are immutable after loading.
type ScenarioRule struct {
	// ID is the scenario identifier, unique within a table.
	ID int `json:"id"`

	// Intent is the high-level action label, e.g. "crear_cotizacion".
	Intent string `json:"intent"`

	// Keywords must all match the transcript for the intent to be predicted.
	Keywords []string `json:"keywords"`

	// Slots are the expected slot values, in configuration order.
	Slots []Slot `json:"slots"`
}

// RuleTable is an ordered, immutable collection of scenario rules keyed by
// scenario id. Iteration order is the configuration file order, which the
// corpus-scoped intent prediction strategy depends on.
type RuleTable struct {
	rules []ScenarioRule
	index map[int]int
}

// NewRuleTable builds a RuleTable from rules in their configuration order.
// It returns a ValidationError if the slice is empty or contains duplicate
// scenario ids; a transcript must never silently match the wrong rule.
func NewRuleTable(rules []ScenarioRule) (*RuleTable, error) {
	verr := NewValidationError("rule table")
	if len(rules) == 0 {
		verr.AddError("at least one scenario rule is required")
		return nil, verr
	}

	index := make(map[int]int, len(rules))
	for i, rule := range rules {
		if prev, ok := index[rule.ID]; ok {
			verr.AddError(fmt.Sprintf("duplicate scenario id %d (positions %d and %d)", rule.ID, prev, i))
			continue
		}
		index[rule.ID] = i
	}
	if verr.HasErrors() {
		return nil, verr
	}

	owned := make([]ScenarioRule, len(rules))
	copy(owned, rules)

	return &RuleTable{rules: owned, index: index}, nil
}

// Lookup returns the rule for the given scenario id.
// The second return value reports whether the id resolved.
func (t *RuleTable) Lookup(id int) (ScenarioRule, bool) {
	i, ok := t.index[id]
	if !ok {
		return ScenarioRule{}, false
	}
	return t.rules[i], true
}

// Rules returns the rules in table order. Callers must not mutate the
// returned slice.
func (t *RuleTable) Rules() []ScenarioRule { return t.rules }

// Len returns the number of rules in the table.
func (t *RuleTable) Len() int { return len(t.rules) }

// ReferenceLookup maps a scenario id, as carried by the dataset, to its
// ground-truth reference sentence. Loaders guarantee every stored text is
// non-blank; an id absent from the lookup means the record is excluded from
// WER aggregation.
type ReferenceLookup map[string]string

// Reference returns the ground-truth sentence for the given scenario id.
// The second return value reports whether a reference exists.
func (l ReferenceLookup) Reference(id string) (string, bool) {
	text, ok := l[id]
	return text, ok
}
