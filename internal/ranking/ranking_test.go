package ranking_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/ardoise/internal/ranking"
)

func entry(id int64, balance string) ranking.Entry {
	return ranking.Entry{ID: id, Name: "n", Balance: decimal.RequireFromString(balance)}
}

func ids(entries []ranking.Entry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}

	return out
}

func TestTop(t *testing.T) {
	type testCase struct {
		name    string
		entries []ranking.Entry
		n       int
		wantIDs []int64
	}

	tests := []testCase{
		{
			name:    "Empty",
			entries: nil,
			n:       ranking.DefaultLimit,
			wantIDs: []int64{},
		},
		{
			name: "SortsDescending",
			entries: []ranking.Entry{
				entry(1, "10.00"), entry(2, "300.50"), entry(3, "45.10"),
			},
			n:       ranking.DefaultLimit,
			wantIDs: []int64{2, 3, 1},
		},
		{
			name: "DropsSettledAndOverpaid",
			entries: []ranking.Entry{
				entry(1, "0"), entry(2, "-5.00"), entry(3, "0.01"),
			},
			n:       ranking.DefaultLimit,
			wantIDs: []int64{3},
		},
		{
			name: "TruncatesToLimit",
			entries: []ranking.Entry{
				entry(1, "1"), entry(2, "2"), entry(3, "3"), entry(4, "4"),
				entry(5, "5"), entry(6, "6"), entry(7, "7"),
			},
			n:       ranking.DefaultLimit,
			wantIDs: []int64{7, 6, 5, 4, 3},
		},
		{
			name: "TiesByAscendingID",
			entries: []ranking.Entry{
				entry(9, "50"), entry(4, "50"), entry(6, "80"), entry(2, "50"),
			},
			n:       ranking.DefaultLimit,
			wantIDs: []int64{6, 2, 4, 9},
		},
		{
			name:    "ZeroLimit",
			entries: []ranking.Entry{entry(1, "1")},
			n:       0,
			wantIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ranking.Top(tt.entries, tt.n)

			assert.LessOrEqual(t, len(got), max(tt.n, 0))
			assert.Equal(t, tt.wantIDs, ids(got))

			for i := 1; i < len(got); i++ {
				assert.True(t, got[i-1].Balance.GreaterThanOrEqual(got[i].Balance))
			}

			for _, e := range got {
				assert.True(t, e.Balance.IsPositive())
			}
		})
	}
}

func TestTop_DoesNotMutateInput(t *testing.T) {
	entries := []ranking.Entry{entry(1, "1"), entry(2, "3"), entry(3, "2")}

	ranking.Top(entries, 2)

	assert.Equal(t, []int64{1, 2, 3}, ids(entries))
}
