// Package spanish provides Spanish cardinal number spelling for the text
// normalization pipeline.
package spanish

import (
	"fmt"
	"strings"

	"github.com/andeslab/asreval/internal/domain"
	"github.com/andeslab/asreval/internal/ports"
)

var _ ports.NumberConverter = Converter{}

// MaxConvertible is the largest value Converter spells out. Digit runs long
// enough to exceed it are classified as codes by the normalizer and spelled
// digit by digit, so the limit is never reached on the normalization path.
const MaxConvertible = 999_999_999

// ones covers 0-29, which Spanish spells as single words.
var ones = [...]string{
	"cero", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho",
	"nueve", "diez", "once", "doce", "trece", "catorce", "quince",
	"dieciséis", "diecisiete", "dieciocho", "diecinueve", "veinte",
	"veintiuno", "veintidós", "veintitrés", "veinticuatro", "veinticinco",
	"veintiséis", "veintisiete", "veintiocho", "veintinueve",
}

var tens = [...]string{
	"", "", "", "treinta", "cuarenta", "cincuenta", "sesenta", "setenta",
	"ochenta", "noventa",
}

var hundreds = [...]string{
	"", "ciento", "doscientos", "trescientos", "cuatrocientos", "quinientos",
	"seiscientos", "setecientos", "ochocientos", "novecientos",
}

// Converter spells non-negative integers as Spanish cardinal words.
// The zero value is ready to use; Converter is stateless and safe for
// concurrent use.
type Converter struct{}

// ToWords returns the Spanish cardinal form of n, e.g. 50 -> "cincuenta".
// It returns domain.ErrNumberOutOfRange for negative values or values above
// MaxConvertible.
func (Converter) ToWords(n int) (string, error) {
	if n < 0 || n > MaxConvertible {
		return "", fmt.Errorf("%w: %d", domain.ErrNumberOutOfRange, n)
	}
	return cardinal(n), nil
}

func cardinal(n int) string {
	switch {
	case n < 30:
		return ones[n]
	case n < 100:
		if r := n % 10; r != 0 {
			return tens[n/10] + " y " + ones[r]
		}
		return tens[n/10]
	case n == 100:
		return "cien"
	case n < 1000:
		if r := n % 100; r != 0 {
			return hundreds[n/100] + " " + cardinal(r)
		}
		return hundreds[n/100]
	case n < 1_000_000:
		head := "mil"
		if th := n / 1000; th > 1 {
			head = apocopate(cardinal(th)) + " mil"
		}
		if r := n % 1000; r != 0 {
			return head + " " + cardinal(r)
		}
		return head
	default:
		head := "un millón"
		if m := n / 1_000_000; m > 1 {
			head = apocopate(cardinal(m)) + " millones"
		}
		if r := n % 1_000_000; r != 0 {
			return head + " " + cardinal(r)
		}
		return head
	}
}

// apocopate shortens a trailing "uno" before a masculine noun:
// "veintiuno mil" is wrong, Spanish says "veintiún mil".
func apocopate(s string) string {
	if strings.HasSuffix(s, "veintiuno") {
		return strings.TrimSuffix(s, "veintiuno") + "veintiún"
	}
	if strings.HasSuffix(s, "uno") {
		return strings.TrimSuffix(s, "uno") + "un"
	}
	return s
}
