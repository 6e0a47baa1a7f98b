// Package evaluate provides the two independent scorers that consume
// normalized transcripts: the NLU evaluator and the WER scorer.
package evaluate

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/andeslab/asreval/infrastructure/match"
	"github.com/andeslab/asreval/internal/domain"
	"github.com/andeslab/asreval/internal/ports"
)

// PredictionScope selects how the evaluator predicts an intent.
type PredictionScope string

// Supported prediction scopes.
const (
	// ScopeRule checks only the rule indicated by the record's scenario id,
	// predicting that rule's intent or the no_match sentinel.
	ScopeRule PredictionScope = "rule"

	// ScopeCorpus scans all rules in table order and predicts the intent of
	// the first rule whose full keyword set matches. It also captures
	// false-positive intent confusion: a transcript can coincidentally
	// satisfy another rule's keywords.
	ScopeCorpus PredictionScope = "corpus"
)

// NLUConfig defines the configuration parameters for the NLUEvaluator.
type NLUConfig struct {
	// Policy holds the matching threshold and strategy-selection cutoff.
	Policy match.Policy `yaml:"policy" json:"policy"`

	// Scope selects rule-scoped or corpus-scoped intent prediction.
	Scope PredictionScope `yaml:"scope" json:"scope"`
}

// DefaultNLUConfig returns the default matching policy with rule-scoped
// prediction.
func DefaultNLUConfig() NLUConfig {
	return NLUConfig{Policy: match.DefaultPolicy(), Scope: ScopeRule}
}

// NLUEvaluator scores normalized transcripts against scenario rules: did the
// transcript contain the right intent keywords and the right slot values.
//
// The evaluator fails closed: an unparseable or unresolvable scenario id
// yields a sentinel result with all counts zero and all success flags false.
// Evaluate never returns an error past this boundary, so corpus evaluation
// always completes.
//
// The evaluator is stateless apart from its immutable configuration and is
// safe for concurrent use.
type NLUEvaluator struct {
	// name is the unique identifier for this evaluator instance.
	name string
	// rules is the immutable scenario rule table.
	rules *domain.RuleTable
	// scorer is the fuzzy similarity primitive.
	scorer ports.FuzzyScorer
	// config contains the validated configuration parameters.
	config NLUConfig
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// NewNLUEvaluator creates an NLUEvaluator over the given rule table.
// Returns an error if the name is empty, a dependency is nil, or the
// configuration is invalid.
func NewNLUEvaluator(name string, rules *domain.RuleTable, scorer ports.FuzzyScorer, config NLUConfig) (*NLUEvaluator, error) {
	if name == "" {
		return nil, domain.ErrEmptyName
	}
	if rules == nil {
		return nil, fmt.Errorf("rule table is required")
	}
	if scorer == nil {
		return nil, fmt.Errorf("fuzzy scorer is required")
	}
	if err := config.Policy.Validate(); err != nil {
		return nil, err
	}
	switch config.Scope {
	case ScopeRule, ScopeCorpus:
	default:
		return nil, fmt.Errorf("unknown prediction scope %q", config.Scope)
	}

	return &NLUEvaluator{
		name:   name,
		rules:  rules,
		scorer: scorer,
		config: config,
		tracer: otel.Tracer("nlu-evaluator"),
	}, nil
}

// Name returns the unique identifier for this evaluator instance.
func (e *NLUEvaluator) Name() string { return e.name }

// Evaluate scores one record's normalized transcript against the rule table.
// The record is never mutated; the result is purely derived.
func (e *NLUEvaluator) Evaluate(ctx context.Context, record domain.TranscriptRecord) domain.NluResult {
	_, span := e.tracer.Start(ctx, "NLUEvaluator.Evaluate",
		trace.WithAttributes(
			attribute.String("eval.scenario_id", record.ScenarioID),
			attribute.String("eval.scope", string(e.config.Scope)),
		),
	)
	defer span.End()

	scenarioID, err := strconv.Atoi(record.ScenarioID)
	if err != nil {
		span.RecordError(fmt.Errorf("unparseable scenario id %q: %w", record.ScenarioID, err))
		return sentinelResult()
	}

	rule, ok := e.rules.Lookup(scenarioID)
	if !ok {
		span.RecordError(fmt.Errorf("scenario id %d not found in rule table", scenarioID))
		return sentinelResult()
	}

	result := domain.NluResult{IntentExpected: rule.Intent}

	result.IntentPredicted = e.predictIntent(rule, record.Text)
	result.IntentSuccess = result.IntentPredicted == rule.Intent

	result.Slots = make([]domain.SlotOutcome, 0, len(rule.Slots))
	for _, slot := range rule.Slots {
		outcome := e.matchSlot(slot, record.Text)
		if outcome.Hit {
			result.SlotsHit++
		}
		result.Slots = append(result.Slots, outcome)
	}
	result.SlotsTotal = len(rule.Slots)
	result.SlotsSuccess = result.SlotsHit == result.SlotsTotal
	result.OverallSuccess = result.IntentSuccess && result.SlotsSuccess

	span.SetAttributes(
		attribute.String("eval.intent_predicted", result.IntentPredicted),
		attribute.Bool("eval.overall_success", result.OverallSuccess),
		attribute.Int("eval.slots_hit", result.SlotsHit),
	)

	return result
}

// predictIntent returns the predicted intent label for a transcript.
// Rule scope checks only the record's own rule; corpus scope takes the first
// fully matching rule in table order, which makes the table's iteration
// order part of the contract.
func (e *NLUEvaluator) predictIntent(rule domain.ScenarioRule, text string) string {
	if e.config.Scope == ScopeRule {
		if e.keywordsMatch(rule, text) {
			return rule.Intent
		}
		return domain.IntentNoMatch
	}

	for _, candidate := range e.rules.Rules() {
		if e.keywordsMatch(candidate, text) {
			return candidate.Intent
		}
	}
	return domain.IntentNoMatch
}

// keywordsMatch reports whether every keyword of the rule clears the
// threshold against the transcript using substring-containment matching.
func (e *NLUEvaluator) keywordsMatch(rule domain.ScenarioRule, text string) bool {
	for _, keyword := range rule.Keywords {
		if !e.config.Policy.Hit(e.scorer.Partial(keyword, text)) {
			return false
		}
	}
	return len(rule.Keywords) > 0
}

// matchSlot scores one expected slot value against the transcript. Short
// values use token-set matching, longer values substring containment, per
// the policy's length cutoff.
func (e *NLUEvaluator) matchSlot(slot domain.Slot, text string) domain.SlotOutcome {
	var score int
	switch e.config.Policy.ForValue(slot.Value) {
	case match.StrategyTokenSet:
		score = e.scorer.TokenSet(slot.Value, text)
	default:
		score = e.scorer.Partial(slot.Value, text)
	}

	return domain.SlotOutcome{
		Key:      slot.Key,
		Expected: slot.Value,
		Score:    score,
		Hit:      e.config.Policy.Hit(score),
	}
}

// sentinelResult is the fail-closed verdict for records whose scenario id
// cannot be resolved to a rule.
func sentinelResult() domain.NluResult {
	return domain.NluResult{
		IntentExpected:  domain.IntentUnknown,
		IntentPredicted: domain.IntentError,
	}
}
