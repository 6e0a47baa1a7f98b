package evaluate

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/andeslab/asreval/internal/domain"
)

// WERScorer computes word-level edit-distance error counts between a
// normalized transcript and its ground-truth reference sentence.
//
// Records whose scenario id has no reference produce a result with an empty
// Reference that corpus aggregation skips; Score never returns an error so
// corpus evaluation always completes.
//
// The scorer is stateless apart from its immutable reference lookup and is
// safe for concurrent use.
type WERScorer struct {
	// name is the unique identifier for this scorer instance.
	name string
	// refs maps scenario ids to non-blank reference sentences.
	refs domain.ReferenceLookup
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// NewWERScorer creates a WERScorer over the given reference lookup.
// The loader guarantees references are non-blank; a nil or empty lookup is
// rejected here so a missing ground-truth file cannot silently zero out the
// corpus rate.
func NewWERScorer(name string, refs domain.ReferenceLookup) (*WERScorer, error) {
	if name == "" {
		return nil, domain.ErrEmptyName
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("reference lookup is empty: %w", domain.ErrInvalidConfiguration)
	}

	return &WERScorer{
		name:   name,
		refs:   refs,
		tracer: otel.Tracer("wer-scorer"),
	}, nil
}

// Name returns the unique identifier for this scorer instance.
func (s *WERScorer) Name() string { return s.name }

// Score aligns one record's normalized transcript against its reference and
// returns the edit counts. A record with no reference yields a zero result
// with an empty Reference.
func (s *WERScorer) Score(ctx context.Context, record domain.TranscriptRecord) domain.WerResult {
	_, span := s.tracer.Start(ctx, "WERScorer.Score",
		trace.WithAttributes(attribute.String("eval.scenario_id", record.ScenarioID)),
	)
	defer span.End()

	reference, ok := s.refs.Reference(record.ScenarioID)
	if !ok {
		span.RecordError(fmt.Errorf("no reference for scenario id %q", record.ScenarioID))
		return domain.WerResult{}
	}

	hits, subs, dels, inss := alignWords(strings.Fields(reference), strings.Fields(record.Text))

	result := domain.WerResult{
		Reference:      reference,
		Substitutions:  subs,
		Deletions:      dels,
		Insertions:     inss,
		Hits:           hits,
		ReferenceWords: hits + subs + dels,
	}
	if result.ReferenceWords > 0 {
		result.RowWER = float64(result.Errors()) / float64(result.ReferenceWords)
	}

	span.SetAttributes(
		attribute.Float64("eval.row_wer", result.RowWER),
		attribute.Int("eval.reference_words", result.ReferenceWords),
	)

	return result
}

// Aggregate folds per-record results into the corpus-level micro-averaged
// rate. Records without a reference are excluded; an empty corpus yields a
// rate of 0.0, never a division error.
func Aggregate(results []domain.WerResult) domain.CorpusWer {
	var corpus domain.CorpusWer
	for _, r := range results {
		if !r.Scored() {
			continue
		}
		corpus.TotalErrors += r.Errors()
		corpus.TotalReferenceWords += r.ReferenceWords
	}
	if corpus.TotalReferenceWords > 0 {
		corpus.GlobalWER = float64(corpus.TotalErrors) / float64(corpus.TotalReferenceWords)
	}
	return corpus
}

// alignWords computes the minimum-edit alignment between reference and
// hypothesis token sequences and returns the hit, substitution, deletion and
// insertion counts. Classic Levenshtein DP with a backtrace; distance-only
// libraries cannot return this breakdown.
func alignWords(ref, hyp []string) (hits, subs, dels, inss int) {
	m, n := len(ref), len(hyp)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		d[i][0] = i
	}
	for j := 1; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if ref[i-1] == hyp[j-1] {
				d[i][j] = d[i-1][j-1]
				continue
			}
			d[i][j] = min(d[i-1][j-1], d[i-1][j], d[i][j-1]) + 1
		}
	}

	// Walk back from the corner, preferring diagonal moves so ties resolve
	// to substitutions the way jiwer-style scorers count them.
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && ref[i-1] == hyp[j-1] && d[i][j] == d[i-1][j-1]:
			hits++
			i--
			j--
		case i > 0 && j > 0 && d[i][j] == d[i-1][j-1]+1:
			subs++
			i--
			j--
		case i > 0 && d[i][j] == d[i-1][j]+1:
			dels++
			i--
		default:
			inss++
			j--
		}
	}

	return hits, subs, dels, inss
}
