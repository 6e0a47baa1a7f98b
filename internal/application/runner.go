package application

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/andeslab/asreval/infrastructure/evaluate"
	"github.com/andeslab/asreval/infrastructure/middleware"
	"github.com/andeslab/asreval/infrastructure/normalize"
	"github.com/andeslab/asreval/internal/domain"
	"github.com/andeslab/asreval/internal/ports"
)

// RecordResult pairs one input record with everything evaluation derived
// from it. Input records are never mutated; results are joined back to them
// by position.
type RecordResult struct {
	// Record is the original, unmodified input.
	Record domain.TranscriptRecord `json:"record"`

	// Normalized is the canonical transcript both scorers consumed.
	Normalized string `json:"normalized"`

	// NLU is the intent/slot verdict.
	NLU domain.NluResult `json:"nlu"`

	// WER is the word-error-rate verdict.
	WER domain.WerResult `json:"wer"`
}

// CorpusResult is the full output of one corpus evaluation run.
type CorpusResult struct {
	// Records holds per-record results in input order.
	Records []RecordResult `json:"records"`

	// Corpus is the aggregated word error rate.
	Corpus domain.CorpusWer `json:"corpus"`
}

// Runner wires the normalizer and the two scorers into a per-record
// pipeline and fans it out across a corpus. Records are independent, so the
// fan-out is across records, never across pipeline stages.
type Runner struct {
	normalizer *normalize.Normalizer
	nlu        *evaluate.NLUEvaluator
	wer        *evaluate.WERScorer
	metrics    ports.MetricsCollector
	tracer     trace.Tracer
	workers    int
}

// RunnerOption configures a Runner during construction.
type RunnerOption func(*Runner)

// WithMetrics attaches a metrics collector to the runner.
func WithMetrics(metrics ports.MetricsCollector) RunnerOption {
	return func(r *Runner) {
		if metrics != nil {
			r.metrics = metrics
		}
	}
}

// WithWorkers caps the number of records evaluated concurrently.
// Values below one fall back to the number of CPUs.
func WithWorkers(workers int) RunnerOption {
	return func(r *Runner) {
		if workers > 0 {
			r.workers = workers
		}
	}
}

// NewRunner creates a Runner over the given pipeline components.
func NewRunner(
	normalizer *normalize.Normalizer,
	nlu *evaluate.NLUEvaluator,
	wer *evaluate.WERScorer,
	opts ...RunnerOption,
) (*Runner, error) {
	if normalizer == nil {
		return nil, fmt.Errorf("normalizer is required")
	}
	if nlu == nil {
		return nil, fmt.Errorf("nlu evaluator is required")
	}
	if wer == nil {
		return nil, fmt.Errorf("wer scorer is required")
	}

	r := &Runner{
		normalizer: normalizer,
		nlu:        nlu,
		wer:        wer,
		metrics:    middleware.NoopMetrics{},
		tracer:     otel.Tracer("corpus-runner"),
		workers:    runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// EvaluateCorpus normalizes and scores every record, preserving input order
// in the result. Malformed records surface as sentinel result values; the
// only error returned is context cancellation, so a full corpus always
// yields a full result table.
func (r *Runner) EvaluateCorpus(ctx context.Context, records []domain.TranscriptRecord) (*CorpusResult, error) {
	ctx, span := r.tracer.Start(ctx, "Runner.EvaluateCorpus",
		trace.WithAttributes(attribute.Int("eval.corpus_size", len(records))),
	)
	defer span.End()

	start := time.Now()
	results := make([]RecordResult, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, record := range records {
		i, record := i, record
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.evaluateRecord(gctx, record)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	corpus := evaluate.Aggregate(werResults(results))

	r.observe(results, corpus, time.Since(start))
	span.SetAttributes(
		attribute.Float64("eval.global_wer", corpus.GlobalWER),
		attribute.Int("eval.total_reference_words", corpus.TotalReferenceWords),
	)

	return &CorpusResult{Records: results, Corpus: corpus}, nil
}

// evaluateRecord runs the per-record pipeline: normalize once, then score
// the same canonical text independently with NLU and WER.
func (r *Runner) evaluateRecord(ctx context.Context, record domain.TranscriptRecord) RecordResult {
	canonical := record
	canonical.Text = r.normalizer.Normalize(record.Text)

	return RecordResult{
		Record:     record,
		Normalized: canonical.Text,
		NLU:        r.nlu.Evaluate(ctx, canonical),
		WER:        r.wer.Score(ctx, canonical),
	}
}

func (r *Runner) observe(results []RecordResult, corpus domain.CorpusWer, elapsed time.Duration) {
	r.metrics.RecordLatency("evaluate_corpus", elapsed)
	for _, res := range results {
		nluStatus := "failure"
		switch {
		case res.NLU.IntentPredicted == domain.IntentError:
			nluStatus = "error"
		case res.NLU.OverallSuccess:
			nluStatus = "success"
		}
		r.metrics.RecordCounter("nlu", nluStatus, 1)

		werStatus := "scored"
		if !res.WER.Scored() {
			werStatus = "unscored"
		}
		r.metrics.RecordCounter("wer", werStatus, 1)
	}
	r.metrics.RecordGauge("global_wer", corpus.GlobalWER)
}

func werResults(results []RecordResult) []domain.WerResult {
	out := make([]domain.WerResult, len(results))
	for i, res := range results {
		out[i] = res.WER
	}
	return out
}
