package application

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andeslab/asreval/internal/domain"
)

const validRulesYAML = `
version: "1.0"
scenarios:
  - id: 1
    intent: crear_cotizacion
    keywords: [cotización, cotizacion]
    slots:
      - key: cliente
        value: compufacil
      - key: cantidad
        value: cinco
  - id: 2
    intent: crear_presupuesto
    keywords: [presupuesto]
    slots:
      - key: cliente
        value: tecnosys
`

func TestLoadRulesFromReader(t *testing.T) {
	table, err := LoadRulesFromReader(strings.NewReader(validRulesYAML))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	// File order is preserved.
	rules := table.Rules()
	assert.Equal(t, "crear_cotizacion", rules[0].Intent)
	assert.Equal(t, "crear_presupuesto", rules[1].Intent)

	rule, ok := table.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, []string{"cotización", "cotizacion"}, rule.Keywords)
	require.Len(t, rule.Slots, 2)
	assert.Equal(t, domain.Slot{Key: "cliente", Value: "compufacil"}, rule.Slots[0])

	_, ok = table.Lookup(99)
	assert.False(t, ok)
}

func TestLoadRulesFromReaderRejects(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{
			name:    "unknown field",
			yaml:    "version: \"1.0\"\nscenarios:\n  - id: 1\n    intent: a\n    keywords: [b]\n    extra: oops\n",
			wantMsg: "check for typos",
		},
		{
			name:    "missing keywords",
			yaml:    "version: \"1.0\"\nscenarios:\n  - id: 1\n    intent: a\n",
			wantMsg: "validation failed",
		},
		{
			name:    "empty scenarios",
			yaml:    "version: \"1.0\"\nscenarios: []\n",
			wantMsg: "validation failed",
		},
		{
			name:    "duplicate ids",
			yaml:    "version: \"1.0\"\nscenarios:\n  - id: 1\n    intent: a\n    keywords: [x]\n  - id: 1\n    intent: b\n    keywords: [y]\n",
			wantMsg: "duplicate scenario id",
		},
		{
			name:    "blank slot value",
			yaml:    "version: \"1.0\"\nscenarios:\n  - id: 1\n    intent: a\n    keywords: [x]\n    slots:\n      - key: cliente\n        value: \"\"\n",
			wantMsg: "validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRulesFromReader(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read rules file")
}

func TestLoadReferencesFromBytes(t *testing.T) {
	data := []byte(`[
		{"id": "1", "text": "genera una cotización para compufacil"},
		{"id": "2", "text": "presupuesto para tecnosys"}
	]`)

	lookup, err := LoadReferencesFromBytes(data)
	require.NoError(t, err)
	require.Len(t, lookup, 2)

	text, ok := lookup.Reference("1")
	require.True(t, ok)
	assert.Equal(t, "genera una cotización para compufacil", text)

	_, ok = lookup.Reference("99")
	assert.False(t, ok)
}

func TestLoadReferencesFromBytesRejects(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "blank text",
			data:    `[{"id": "1", "text": "   "}]`,
			wantErr: domain.ErrBlankReference,
		},
		{
			name:    "missing text",
			data:    `[{"id": "1"}]`,
			wantErr: domain.ErrBlankReference,
		},
		{
			name:    "duplicate id",
			data:    `[{"id": "1", "text": "a"}, {"id": "1", "text": "b"}]`,
			wantErr: domain.ErrDuplicateReference,
		},
		{
			name:    "missing id",
			data:    `[{"text": "a"}]`,
			wantErr: domain.ErrInvalidConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadReferencesFromBytes([]byte(tt.data))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadReferencesFromBytesMalformedJSON(t *testing.T) {
	_, err := LoadReferencesFromBytes([]byte(`{"not": "a list"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse ground truth")
}

func TestLoadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	data := `[
		{"audio": "1", "text": "genera una cotizacion"},
		{"audio": "2"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	records, err := LoadDataset(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].ScenarioID)
	assert.Equal(t, "genera una cotizacion", records[0].Text)
	// Absent text is an empty transcript, not an error.
	assert.Empty(t, records[1].Text)
}
