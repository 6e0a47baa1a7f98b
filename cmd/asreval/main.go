// Command asreval evaluates a dataset of ASR transcriptions against the
// scenario rule table and ground-truth references, printing per-record
// NLU/WER fields and the corpus word error rate.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/andeslab/asreval/infrastructure/evaluate"
	"github.com/andeslab/asreval/infrastructure/match"
	"github.com/andeslab/asreval/infrastructure/normalize"
	"github.com/andeslab/asreval/infrastructure/spanish"
	"github.com/andeslab/asreval/internal/application"
)

func main() {
	var (
		rulesPath   = flag.String("rules", "configs/rules.yaml", "Path to the scenario rules YAML file")
		refsPath    = flag.String("ground-truth", "configs/ground_truth.json", "Path to the ground truth JSON file")
		datasetPath = flag.String("dataset", "", "Path to the dataset JSON file ([{audio, text}, ...])")
		scope       = flag.String("scope", "rule", "Intent prediction scope: rule or corpus")
		workers     = flag.Int("workers", 0, "Concurrent record evaluations (0 = number of CPUs)")
	)
	flag.Parse()

	if *datasetPath == "" {
		log.Fatal("missing required -dataset flag")
	}

	// Configuration problems are fatal before any record is processed.
	rules, err := application.LoadRules(*rulesPath)
	if err != nil {
		log.Fatalf("Failed to load rules: %v", err)
	}

	refs, err := application.LoadReferences(*refsPath)
	if err != nil {
		log.Fatalf("Failed to load ground truth: %v", err)
	}

	records, err := application.LoadDataset(*datasetPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	normalizer, err := normalize.NewNormalizer(spanish.Converter{})
	if err != nil {
		log.Fatalf("Failed to build normalizer: %v", err)
	}

	nlu, err := evaluate.NewNLUEvaluator("nlu", rules, match.Scorer{}, evaluate.NLUConfig{
		Policy: match.DefaultPolicy(),
		Scope:  evaluate.PredictionScope(*scope),
	})
	if err != nil {
		log.Fatalf("Failed to build NLU evaluator: %v", err)
	}

	wer, err := evaluate.NewWERScorer("wer", refs)
	if err != nil {
		log.Fatalf("Failed to build WER scorer: %v", err)
	}

	runner, err := application.NewRunner(normalizer, nlu, wer, application.WithWorkers(*workers))
	if err != nil {
		log.Fatalf("Failed to build runner: %v", err)
	}

	result, err := runner.EvaluateCorpus(context.Background(), records)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	fmt.Printf("Evaluated %d records (%d rules, %d references)\n\n",
		len(result.Records), rules.Len(), len(refs))

	for _, res := range result.Records {
		fmt.Printf("[%s] %q\n", res.Record.ScenarioID, res.Normalized)
		fmt.Printf("  intent: expected=%s predicted=%s success=%t\n",
			res.NLU.IntentExpected, res.NLU.IntentPredicted, res.NLU.IntentSuccess)
		fmt.Printf("  slots:  %d/%d hit, success=%t, overall=%t\n",
			res.NLU.SlotsHit, res.NLU.SlotsTotal, res.NLU.SlotsSuccess, res.NLU.OverallSuccess)
		if res.WER.Scored() {
			fmt.Printf("  wer:    %.4f (S=%d D=%d I=%d H=%d, ref=%d words)\n",
				res.WER.RowWER, res.WER.Substitutions, res.WER.Deletions,
				res.WER.Insertions, res.WER.Hits, res.WER.ReferenceWords)
		} else {
			fmt.Printf("  wer:    no reference, excluded from aggregation\n")
		}
		fmt.Println()
	}

	fmt.Printf("Global WER: %.4f (%d errors / %d reference words)\n",
		result.Corpus.GlobalWER, result.Corpus.TotalErrors, result.Corpus.TotalReferenceWords)
}
