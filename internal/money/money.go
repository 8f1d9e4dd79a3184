// Package money formats whole-unit prices for display.
//
// Numbers are grouped with the locale's thousands separator
// (golang.org/x/text) and prefixed with a fixed currency symbol.
package money

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultSymbol is the storefront's currency prefix (Nigerian naira).
const DefaultSymbol = "₦"

// Formatter renders amounts as "<symbol><grouped number>".
// The zero value formats with no symbol in English.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter builds a Formatter for a currency symbol and BCP 47 locale tag.
// Returns an error if the locale tag cannot be parsed.
func NewFormatter(symbol, locale string) (Formatter, error) {
	tag := language.English
	if locale != "" {
		t, err := language.Parse(locale)
		if err != nil {
			return Formatter{}, fmt.Errorf("parse locale %q: %w", locale, err)
		}
		tag = t
	}
	return Formatter{symbol: symbol, printer: message.NewPrinter(tag)}, nil
}

// Default returns the storefront formatter: naira, English grouping.
func Default() Formatter {
	return Formatter{symbol: DefaultSymbol, printer: message.NewPrinter(language.English)}
}

// Symbol returns the currency prefix.
func (f Formatter) Symbol() string {
	return f.symbol
}

// Number formats n with locale-aware grouping and no symbol.
func (f Formatter) Number(n int64) string {
	p := f.printer
	if p == nil {
		p = message.NewPrinter(language.English)
	}
	return p.Sprintf("%d", n)
}

// Amount formats n with the currency prefix, e.g. "₦1,500".
func (f Formatter) Amount(n int64) string {
	return f.symbol + f.Number(n)
}
