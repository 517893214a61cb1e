// Package ptbr utilidades de localización para português do Brasil: moneda y comparación de textos.
package ptbr

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Money formatea un valor en reales: R$ 1.299,90.
func Money(v decimal.Decimal) string {
	f := v.Round(2).InexactFloat64()
	return "R$ " + printer.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Fold normaliza un texto para comparaciones: minúsculas, sin acentos y sin espacios extremos.
// "Básico" y "basico " producen la misma clave.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Date formatea una fecha como dd/mm/aaaa.
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// DateTime formatea fecha y hora como dd/mm/aaaa hh:mm.
func DateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
