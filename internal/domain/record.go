package domain

// Sentinel intent labels used by NluResult when prediction cannot name a
// configured intent.
const (
	// IntentNoMatch is predicted when no rule's full keyword set matched.
	IntentNoMatch = "no_match"

	// IntentError is predicted when the record's scenario id could not be
	// parsed or does not resolve to a rule.
	IntentError = "error"

	// IntentUnknown is reported as the expected intent when the scenario id
	// is unresolvable and no rule can name an expectation.
	IntentUnknown = "unknown"
)

// TranscriptRecord is one row of ASR output to evaluate: a scenario id as
// carried by the dataset and the transcribed text. Records are inputs only;
// evaluation derives result records and never mutates them.
type TranscriptRecord struct {
	// ScenarioID is the raw dataset identifier. It is kept as a string
	// because datasets carry it unparsed; evaluators parse it per record
	// and fail closed when it is not an integer.
	ScenarioID string `json:"audio"`

	// Text is the transcript. An absent transcript is the empty string.
	Text string `json:"text"`
}

// SlotOutcome records the verdict for a single expected slot value.
type SlotOutcome struct {
	// Key is the slot name from the rule.
	Key string `json:"key"`

	// Expected is the slot value the rule requires.
	Expected string `json:"expected"`

	// Score is the 0-100 similarity between the expected value and the
	// normalized transcript.
	Score int `json:"score"`

	// Hit reports whether the score met the matching threshold.
	Hit bool `json:"hit"`
}

// NluResult is the natural-language-understanding verdict for one record.
// It is purely derived from the record, the rule table, and the matching
// policy; a result exists for every record, malformed ones included.
type NluResult struct {
	// IntentExpected is the intent of the record's rule, or "unknown" when
	// the scenario id is unresolvable.
	IntentExpected string `json:"intent_expected"`

	// IntentPredicted is the predicted intent, or a sentinel: "no_match"
	// when no keyword set fully matched, "error" when the id is unresolvable.
	IntentPredicted string `json:"intent_predicted"`

	// IntentSuccess reports whether the prediction equals the expectation.
	IntentSuccess bool `json:"intent_success"`

	// Slots holds per-slot outcomes in rule order.
	Slots []SlotOutcome `json:"slots,omitempty"`

	// SlotsHit counts slots whose score met the threshold.
	SlotsHit int `json:"slots_hit_count"`

	// SlotsTotal counts the slots the rule expects.
	SlotsTotal int `json:"slots_total_count"`

	// SlotsSuccess reports whether every expected slot hit.
	SlotsSuccess bool `json:"slots_success"`

	// OverallSuccess is IntentSuccess AND SlotsSuccess.
	OverallSuccess bool `json:"overall_success"`
}

// WerResult is the word-error-rate verdict for one record. A record whose
// scenario id has no reference carries an empty Reference and zero counts,
// and is excluded from corpus aggregation.
type WerResult struct {
	// Reference is the ground-truth sentence, empty when unresolvable.
	Reference string `json:"reference"`

	// RowWER is (substitutions+deletions+insertions)/reference length.
	// It is meaningful only when Reference is non-empty.
	RowWER float64 `json:"row_wer"`

	// Substitutions counts reference words replaced by different words.
	Substitutions int `json:"substitutions"`

	// Deletions counts reference words missing from the hypothesis.
	Deletions int `json:"deletions"`

	// Insertions counts hypothesis words with no reference counterpart.
	Insertions int `json:"insertions"`

	// Hits counts reference words matched exactly.
	Hits int `json:"hits"`

	// ReferenceWords is hits + substitutions + deletions, the reference length.
	ReferenceWords int `json:"reference_word_count"`
}

// Scored reports whether this result participates in corpus aggregation.
func (w WerResult) Scored() bool { return w.Reference != "" }

// Errors returns the total edit errors for this record.
func (w WerResult) Errors() int { return w.Substitutions + w.Deletions + w.Insertions }

// CorpusWer is the micro-averaged word error rate across every scored record
// of a corpus.
type CorpusWer struct {
	// TotalErrors sums substitutions, deletions and insertions over all
	// scored records.
	TotalErrors int `json:"total_errors"`

	// TotalReferenceWords sums reference lengths over all scored records.
	TotalReferenceWords int `json:"total_reference_words"`

	// GlobalWER is TotalErrors / TotalReferenceWords, and 0.0 for an empty
	// corpus so aggregation never divides by zero.
	GlobalWER float64 `json:"global_wer"`
}
