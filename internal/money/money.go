// Package money formats amounts for presentation.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ErrUnknownCurrency = errors.New("unknown currency")

// Formatter formats amounts in one currency. Amounts are only rounded
// here, all calculations keep the full precision.
type Formatter struct {
	unit    currency.Unit
	scale   int
	printer *message.Printer
}

// NewFormatter returns a formatter for the ISO 4217 currency code.
func NewFormatter(iso string) (Formatter, error) {
	unit, err := currency.ParseISO(iso)
	if err != nil {
		return Formatter{}, fmt.Errorf("%w %q: %w", ErrUnknownCurrency, iso, err)
	}

	scale, _ := currency.Standard.Rounding(unit)

	return Formatter{
		unit:    unit,
		scale:   scale,
		printer: message.NewPrinter(language.English),
	}, nil
}

// Currency returns the ISO code of the currency.
func (f Formatter) Currency() string {
	return f.unit.String()
}

// Round rounds the amount to the standard scale of the currency.
func (f Formatter) Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(int32(f.scale))
}

// Plain formats the rounded amount without grouping, e.g. "1234.50".
// The result can be parsed again.
func (f Formatter) Plain(d decimal.Decimal) string {
	return f.Round(d).StringFixed(int32(f.scale))
}

// Number formats the amount with thousands separators and the
// standard number of decimals, without the currency symbol.
func (f Formatter) Number(d decimal.Decimal) string {
	return f.printer.Sprint(number.Decimal(f.Round(d).InexactFloat64(), number.Scale(f.scale)))
}

// Format formats the amount with the currency symbol, e.g. "$ 1,234.50".
func (f Formatter) Format(d decimal.Decimal) string {
	return f.printer.Sprintf("%v %s", currency.Symbol(f.unit), f.Number(d))
}
