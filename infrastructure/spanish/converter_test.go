package spanish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andeslab/asreval/internal/domain"
)

func TestConverterToWords(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "cero"},
		{1, "uno"},
		{5, "cinco"},
		{9, "nueve"},
		{10, "diez"},
		{15, "quince"},
		{16, "dieciséis"},
		{20, "veinte"},
		{21, "veintiuno"},
		{22, "veintidós"},
		{29, "veintinueve"},
		{30, "treinta"},
		{31, "treinta y uno"},
		{50, "cincuenta"},
		{85, "ochenta y cinco"},
		{99, "noventa y nueve"},
		{100, "cien"},
		{101, "ciento uno"},
		{115, "ciento quince"},
		{200, "doscientos"},
		{347, "trescientos cuarenta y siete"},
		{500, "quinientos"},
		{999, "novecientos noventa y nueve"},
		{1000, "mil"},
		{1001, "mil uno"},
		{2500, "dos mil quinientos"},
		{21000, "veintiún mil"},
		{121000, "ciento veintiún mil"},
		{1_000_000, "un millón"},
		{2_000_000, "dos millones"},
		{2_000_050, "dos millones cincuenta"},
	}

	var conv Converter
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := conv.ToWords(tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConverterToWordsOutOfRange(t *testing.T) {
	var conv Converter

	_, err := conv.ToWords(-1)
	assert.ErrorIs(t, err, domain.ErrNumberOutOfRange)

	_, err = conv.ToWords(MaxConvertible + 1)
	assert.ErrorIs(t, err, domain.ErrNumberOutOfRange)
}
