package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorerPartial(t *testing.T) {
	var s Scorer

	transcript := "genera una cotizacion para el cliente compufacil cantidad cinco"

	// Exact substring containment scores 100 regardless of surrounding noise.
	assert.Equal(t, 100, s.Partial("compufacil", transcript))

	// One accent difference in a ten-letter word stays well above 80.
	assert.GreaterOrEqual(t, s.Partial("cotización", transcript), 80)

	// A value absent from the transcript scores low.
	assert.Less(t, s.Partial("presupuesto", transcript), 80)
}

func TestScorerTokenSet(t *testing.T) {
	var s Scorer

	// Reordering does not hurt token-set similarity.
	assert.Equal(t, 100, s.TokenSet("cinco", "cantidad cinco unidades"))

	// "dos" as a token of the transcript is a clean hit.
	assert.Equal(t, 100, s.TokenSet("dos", "cantidad dos monitores"))

	// "dos" inside "todos" is not a token, so the short value misses.
	assert.Less(t, s.TokenSet("dos", "avisa a todos los vendedores"), 80)
}

func TestScorerRatio(t *testing.T) {
	var s Scorer

	assert.Equal(t, 100, s.Ratio("factura", "factura"))
	assert.Equal(t, 100, s.Ratio("", ""))
	assert.Equal(t, 0, s.Ratio("", "factura"))

	// One substitution in a seven-rune word: 100 - 100/7 = 86.
	assert.Equal(t, 86, s.Ratio("factura", "fectura"))
}

func TestScorerScoreUnknownStrategy(t *testing.T) {
	var s Scorer

	_, err := s.Score(Strategy("soundex"), "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown match strategy")
}

func TestPolicyForValue(t *testing.T) {
	policy := DefaultPolicy()

	// Short values use token-set matching.
	assert.Equal(t, StrategyTokenSet, policy.ForValue("dos"))
	assert.Equal(t, StrategyTokenSet, policy.ForValue("cinco"))

	// Six runes is still short, even with a multi-byte accent.
	assert.Equal(t, StrategyTokenSet, policy.ForValue("seisón"))

	// Longer values use substring containment.
	assert.Equal(t, StrategyPartial, policy.ForValue("compufacil"))
	assert.Equal(t, StrategyPartial, policy.ForValue("dura disco"))
}

func TestPolicyHit(t *testing.T) {
	policy := DefaultPolicy()

	assert.True(t, policy.Hit(80))
	assert.True(t, policy.Hit(100))
	assert.False(t, policy.Hit(79))
}

func TestPolicyValidate(t *testing.T) {
	assert.NoError(t, DefaultPolicy().Validate())

	bad := Policy{Threshold: 120, ShortValueLimit: 6}
	assert.Error(t, bad.Validate())
}
