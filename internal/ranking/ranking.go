// Package ranking builds the "largest outstanding balances" lists shown on the
// dashboard.
package ranking

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// DefaultLimit is the number of entries shown per chart.
const DefaultLimit = 5

// Entry is a debtor or supplier with its aggregate remaining balance.
type Entry struct {
	ID      int64
	Name    string
	Balance decimal.Decimal
}

// Top returns at most n entries with a positive balance, largest first.
// Equal balances are ordered by ascending ID. entries is left untouched.
func Top(entries []Entry, n int) []Entry {
	if n <= 0 {
		return nil
	}

	ranked := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Balance.Sign() > 0 {
			ranked = append(ranked, e)
		}
	}

	slices.SortFunc(ranked, func(a, b Entry) int {
		if c := b.Balance.Cmp(a.Balance); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked
}
