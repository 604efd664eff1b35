package money_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/ardoise/internal/money"
)

func TestParse(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    string
		wantErr error
	}

	tests := []testCase{
		{name: "Dot", input: "12.34", want: "12.34"},
		{name: "Comma", input: "12,34", want: "12.34"},
		{name: "Integer", input: "150000", want: "150000"},
		{name: "OneDecimal", input: "7.5", want: "7.5"},
		{name: "LeadingSeparator", input: ".5", want: "0.5"},
		{name: "Grouped", input: "1 234 567,89", want: "1234567.89"},
		{name: "Zero", input: "0", want: "0"},
		{name: "Padded", input: "  42,00 ", want: "42"},
		{name: "MaxDigits", input: "99999999.99", want: "99999999.99"},
		{name: "Empty", input: "", wantErr: money.ErrInvalidAmount},
		{name: "Blank", input: "   ", wantErr: money.ErrInvalidAmount},
		{name: "Letters", input: "12a", wantErr: money.ErrInvalidAmount},
		{name: "TwoSeparators", input: "1.2.3", wantErr: money.ErrInvalidAmount},
		{name: "OnlySeparator", input: ".", wantErr: money.ErrInvalidAmount},
		{name: "Plus", input: "+5", wantErr: money.ErrInvalidAmount},
		{name: "Negative", input: "-5,00", wantErr: money.ErrNegativeAmount},
		{name: "ThreeDecimals", input: "1.234", wantErr: money.ErrTooManyDecimals},
		{name: "TooLarge", input: "123456789", wantErr: money.ErrTooManyDigits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.Parse(tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestFormatter_English(t *testing.T) {
	f := money.NewFormatter(language.English, "FCFA")

	assert.Equal(t, "1,234.50 FCFA", f.Format(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "0.00 FCFA", f.Format(decimal.Zero))
	assert.Equal(t, "-50.00 FCFA", f.Format(decimal.RequireFromString("-50")))
	assert.Equal(t, "-0.25 FCFA", f.Format(decimal.RequireFromString("-0.25")))
	assert.Equal(t, "1,000,000.01", f.Number(decimal.RequireFromString("1000000.01")))
	assert.Equal(t, "FCFA", f.Currency())
}

func TestFormatter_French(t *testing.T) {
	f := money.NewFormatter(language.French, "")

	got := f.Format(decimal.RequireFromString("1234.5"))
	assert.True(t, strings.HasPrefix(got, "1"), got)
	assert.True(t, strings.HasSuffix(got, "234,50"), got)
}
