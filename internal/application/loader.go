package application

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/andeslab/asreval/internal/domain"
)

// json is a drop-in encoding/json replacement used for ground-truth and
// dataset parsing.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Package-level validator instance for configuration validation.
var validate = validator.New()

// Missing or malformed configuration is fatal: every loader in this file
// returns an error rather than degrading to an empty table, so a data
// problem aborts before any record is processed.

// LoadRules reads, parses and validates a scenario rule table from a YAML
// file, preserving file order.
func LoadRules(path string) (*domain.RuleTable, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return LoadRulesFromReader(bytes.NewReader(data))
}

// LoadRulesFromReader parses and validates a scenario rule table from any
// reader. Decoding is strict: unknown YAML fields are rejected so
// configuration typos are never silently ignored.
func LoadRulesFromReader(r io.Reader) (*domain.RuleTable, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var config RulesConfig
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse rules (check for typos): %w", err)
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}

	rules := make([]domain.ScenarioRule, 0, len(config.Scenarios))
	for _, sc := range config.Scenarios {
		slots := make([]domain.Slot, 0, len(sc.Slots))
		for _, slot := range sc.Slots {
			slots = append(slots, domain.Slot{Key: slot.Key, Value: slot.Value})
		}
		rules = append(rules, domain.ScenarioRule{
			ID:       sc.ID,
			Intent:   sc.Intent,
			Keywords: sc.Keywords,
			Slots:    slots,
		})
	}

	// NewRuleTable rejects duplicate ids.
	table, err := domain.NewRuleTable(rules)
	if err != nil {
		return nil, err
	}
	return table, nil
}

// LoadReferences reads the ground-truth lookup from a JSON file holding a
// list of {id, text} records.
func LoadReferences(path string) (domain.ReferenceLookup, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read ground truth file: %w", err)
	}
	return LoadReferencesFromBytes(data)
}

// LoadReferencesFromBytes parses the ground-truth lookup. A record with a
// missing or blank text field, or a duplicated id, is a configuration error.
func LoadReferencesFromBytes(data []byte) (domain.ReferenceLookup, error) {
	var entries []referenceEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse ground truth: %w", err)
	}

	lookup := make(domain.ReferenceLookup, len(entries))
	for i, entry := range entries {
		if strings.TrimSpace(entry.ID) == "" {
			return nil, fmt.Errorf("ground truth record %d: missing id: %w", i, domain.ErrInvalidConfiguration)
		}
		if strings.TrimSpace(entry.Text) == "" {
			return nil, fmt.Errorf("ground truth record %d (id %q): %w", i, entry.ID, domain.ErrBlankReference)
		}
		if _, ok := lookup[entry.ID]; ok {
			return nil, fmt.Errorf("ground truth record %d (id %q): %w", i, entry.ID, domain.ErrDuplicateReference)
		}
		lookup[entry.ID] = entry.Text
	}
	return lookup, nil
}

// LoadDataset reads transcript records from a JSON file holding a list of
// {audio, text} rows. An absent text field becomes the empty transcript;
// that is a record-level condition, not a configuration error.
func LoadDataset(path string) ([]domain.TranscriptRecord, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var records []domain.TranscriptRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	return records, nil
}
