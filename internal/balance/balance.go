// Package balance derives remaining balances and settlement status from
// recorded amounts. Every function is pure and uses exact decimal arithmetic.
package balance

import "github.com/shopspring/decimal"

// Status tells whether anything is still owed on a debt or credit.
type Status string

const (
	StatusOutstanding Status = "Outstanding"
	StatusSettled     Status = "Settled"
)

// Label is the wording shown to operators.
func (s Status) Label() string {
	if s == StatusSettled {
		return "Soldé"
	}

	return "En cours"
}

// Line is one debt or credit together with the payments made against it.
type Line struct {
	Amount   decimal.Decimal
	Payments []decimal.Decimal
}

// Sum adds amounts; an empty input sums to zero.
func Sum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}

	return total
}

// Remaining is amount minus the sum of payments. Overpayment yields a negative
// value; it is not clamped.
func Remaining(amount decimal.Decimal, payments []decimal.Decimal) decimal.Decimal {
	return amount.Sub(Sum(payments))
}

// Outstanding is Remaining for amounts that were already summed upstream.
func Outstanding(totalAmount, totalPaid decimal.Decimal) decimal.Decimal {
	return totalAmount.Sub(totalPaid)
}

// StatusOf is Settled when nothing positive remains.
func StatusOf(remaining decimal.Decimal) Status {
	if remaining.Sign() <= 0 {
		return StatusSettled
	}

	return StatusOutstanding
}

// Aggregate sums the remaining balance of every line.
func Aggregate(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(Remaining(l.Amount, l.Payments))
	}

	return total
}
