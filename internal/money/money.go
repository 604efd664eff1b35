// Package money parses and formats ledger amounts.
//
// Amounts are fixed-point decimals with two fractional digits and at most ten
// significant digits, mirroring the NUMERIC(10,2) columns they are stored in.
package money

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// Places is the number of fractional digits kept for every amount.
	Places = 2
	// MaxIntegerDigits is the room left before the decimal separator.
	MaxIntegerDigits = 8
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrTooManyDecimals = errors.New("amount has more than 2 decimal places")
	ErrTooManyDigits   = errors.New("amount has more than 8 digits before the decimal separator")
)

// Parse reads a user-entered amount. Both "1 234,50" and "1234.50" are accepted.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.ReplaceAll(s, ",", ".")

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	if !digitsOnly(whole) || !digitsOnly(frac) {
		return decimal.Zero, ErrInvalidAmount
	}

	if negative {
		return decimal.Zero, ErrNegativeAmount
	}

	if len(frac) > Places {
		return decimal.Zero, ErrTooManyDecimals
	}

	if len(strings.TrimLeft(whole, "0")) > MaxIntegerDigits {
		return decimal.Zero, ErrTooManyDigits
	}

	if whole == "" {
		whole = "0"
	}

	d, err := decimal.NewFromString(whole + "." + frac + "0")
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidAmount, err)
	}

	return d, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// Formatter renders amounts with locale digit grouping and a currency suffix.
type Formatter struct {
	printer    *message.Printer
	decimalSep string
	currency   string
}

func NewFormatter(lang language.Tag, currency string) *Formatter {
	p := message.NewPrinter(lang)

	sep := strings.Trim(p.Sprintf("%.1f", 1.5), "15")
	if sep == "" {
		sep = "."
	}

	return &Formatter{printer: p, decimalSep: sep, currency: currency}
}

// Currency returns the suffix appended by Format.
func (f *Formatter) Currency() string {
	return f.currency
}

// Format renders d as "1 234,50 FCFA" (separators depend on the locale).
func (f *Formatter) Format(d decimal.Decimal) string {
	if f.currency == "" {
		return f.Number(d)
	}

	return f.Number(d) + " " + f.currency
}

// Number renders d with grouping and exactly two decimals, without currency.
func (f *Formatter) Number(d decimal.Decimal) string {
	d = d.Round(Places)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(Places).IntPart()

	return sign + f.printer.Sprintf("%d", whole.IntPart()) + f.decimalSep + fmt.Sprintf("%02d", cents)
}
