package balance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/ardoise/internal/balance"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ds(ss ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(ss))
	for i, s := range ss {
		out[i] = d(s)
	}

	return out
}

func TestRemaining(t *testing.T) {
	type testCase struct {
		name       string
		amount     string
		payments   []decimal.Decimal
		want       string
		wantStatus balance.Status
	}

	tests := []testCase{
		{name: "PartlyPaid", amount: "100.00", payments: ds("30.00", "20.00"), want: "50.00", wantStatus: balance.StatusOutstanding},
		{name: "ExactlyPaid", amount: "50.00", payments: ds("50.00"), want: "0.00", wantStatus: balance.StatusSettled},
		{name: "NoPayments", amount: "75.25", payments: nil, want: "75.25", wantStatus: balance.StatusOutstanding},
		{name: "Overpaid", amount: "40.00", payments: ds("25.00", "25.00"), want: "-10.00", wantStatus: balance.StatusSettled},
		{name: "ZeroAmount", amount: "0", payments: nil, want: "0", wantStatus: balance.StatusSettled},
		{name: "NoFloatDrift", amount: "0.30", payments: ds("0.10", "0.10", "0.10"), want: "0", wantStatus: balance.StatusSettled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := balance.Remaining(d(tt.amount), tt.payments)

			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
			assert.Equal(t, tt.wantStatus, balance.StatusOf(got))
		})
	}
}

func TestSum_Empty(t *testing.T) {
	assert.True(t, balance.Sum(nil).Equal(decimal.Zero))
}

func TestAggregate(t *testing.T) {
	lines := []balance.Line{
		{Amount: d("100.00"), Payments: ds("30.00", "20.00")},
		{Amount: d("50.00"), Payments: ds("50.00")},
		{Amount: d("10.00"), Payments: ds("15.00")},
		{Amount: d("12.34")},
	}

	assert.True(t, balance.Aggregate(lines).Equal(d("57.34")))
	assert.True(t, balance.Aggregate(nil).Equal(decimal.Zero))
}

func TestOutstanding(t *testing.T) {
	assert.True(t, balance.Outstanding(d("200"), d("199.99")).Equal(d("0.01")))
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "Soldé", balance.StatusSettled.Label())
	assert.Equal(t, "En cours", balance.StatusOutstanding.Label())
}
