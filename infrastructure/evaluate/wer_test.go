package evaluate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andeslab/asreval/internal/domain"
)

func testReferences() domain.ReferenceLookup {
	return domain.ReferenceLookup{
		"1": "genera una cotización para el cliente compufacil cantidad cinco",
		"5": "busca la factura de velasco",
	}
}

func newTestScorer(t *testing.T) *WERScorer {
	t.Helper()
	s, err := NewWERScorer("test-wer", testReferences())
	require.NoError(t, err)
	return s
}

func TestNewWERScorer(t *testing.T) {
	_, err := NewWERScorer("", testReferences())
	assert.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = NewWERScorer("wer", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	_, err = NewWERScorer("wer", domain.ReferenceLookup{})
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	s, err := NewWERScorer("wer", testReferences())
	require.NoError(t, err)
	assert.Equal(t, "wer", s.Name())
}

func TestWERScorerScore(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		record   domain.TranscriptRecord
		wantSubs int
		wantDels int
		wantIns  int
		wantHits int
		wantWER  float64
	}{
		{
			name: "perfect hypothesis",
			record: domain.TranscriptRecord{
				ScenarioID: "5",
				Text:       "busca la factura de velasco",
			},
			wantHits: 5,
			wantWER:  0.0,
		},
		{
			name: "one substitution",
			record: domain.TranscriptRecord{
				ScenarioID: "5",
				Text:       "busca la fectura de velasco",
			},
			wantSubs: 1,
			wantHits: 4,
			wantWER:  0.2,
		},
		{
			name: "one deletion",
			record: domain.TranscriptRecord{
				ScenarioID: "5",
				Text:       "busca factura de velasco",
			},
			wantDels: 1,
			wantHits: 4,
			wantWER:  0.2,
		},
		{
			name: "one insertion",
			record: domain.TranscriptRecord{
				ScenarioID: "5",
				Text:       "busca la factura de juan velasco",
			},
			wantIns:  1,
			wantHits: 5,
			wantWER:  0.2,
		},
		{
			name: "empty hypothesis deletes everything",
			record: domain.TranscriptRecord{
				ScenarioID: "5",
				Text:       "",
			},
			wantDels: 5,
			wantWER:  1.0,
		},
	}

	s := newTestScorer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.Score(ctx, tt.record)

			require.True(t, result.Scored())
			assert.Equal(t, tt.wantSubs, result.Substitutions)
			assert.Equal(t, tt.wantDels, result.Deletions)
			assert.Equal(t, tt.wantIns, result.Insertions)
			assert.Equal(t, tt.wantHits, result.Hits)
			assert.Equal(t, 5, result.ReferenceWords)
			assert.InDelta(t, tt.wantWER, result.RowWER, 1e-9)
		})
	}
}

func TestWERScorerScoreMissingReference(t *testing.T) {
	s := newTestScorer(t)

	result := s.Score(context.Background(), domain.TranscriptRecord{
		ScenarioID: "99",
		Text:       "busca la factura de velasco",
	})

	assert.False(t, result.Scored())
	assert.Empty(t, result.Reference)
	assert.Zero(t, result.ReferenceWords)
	assert.Zero(t, result.Errors())
}

func TestAggregate(t *testing.T) {
	results := []domain.WerResult{
		{Reference: "a", Substitutions: 1, Hits: 3, ReferenceWords: 4},
		{Reference: "b", Hits: 6, ReferenceWords: 6},
		// Unscored record must be excluded from the denominator.
		{},
	}

	corpus := Aggregate(results)
	assert.Equal(t, 1, corpus.TotalErrors)
	assert.Equal(t, 10, corpus.TotalReferenceWords)
	assert.InDelta(t, 0.1, corpus.GlobalWER, 1e-9)
}

func TestAggregateEmptyCorpus(t *testing.T) {
	assert.Zero(t, Aggregate(nil).GlobalWER)
	assert.Zero(t, Aggregate([]domain.WerResult{{}, {}}).GlobalWER)
}

func TestAlignWords(t *testing.T) {
	// Two minimal alignments exist here (del+ins vs two substitutions);
	// the backtrace resolves ties toward substitutions. Total errors match
	// the edit distance either way.
	hits, subs, dels, inss := alignWords(
		[]string{"genera", "una", "cotización"},
		[]string{"genera", "cotización", "ya"},
	)

	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, subs)
	assert.Equal(t, 0, dels)
	assert.Equal(t, 0, inss)
	assert.Equal(t, 3, hits+subs+dels)
}
