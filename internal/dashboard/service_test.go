package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ardoise/internal/dashboard"
	"github.com/MrJamesThe3rd/ardoise/internal/debtor"
	"github.com/MrJamesThe3rd/ardoise/internal/ranking"
	"github.com/MrJamesThe3rd/ardoise/internal/supplier"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expectDebtors(m *dashboard.MockDebtorSource, balances []ranking.Entry) {
	m.EXPECT().TotalDebt(gomock.Any()).Return(dec("1500.00"), nil)
	m.EXPECT().Recent(gomock.Any(), dashboard.RecentLimit).Return([]*debtor.Debtor{{ID: 1}}, nil)
	m.EXPECT().RecentDebts(gomock.Any(), dashboard.RecentLimit).Return([]*debtor.Debt{{ID: 1}, {ID: 2}}, nil)
	m.EXPECT().Balances(gomock.Any()).Return(balances, nil)
}

func TestService_Overview(t *testing.T) {
	ctrl := gomock.NewController(t)
	debtors := dashboard.NewMockDebtorSource(ctrl)
	suppliers := dashboard.NewMockSupplierSource(ctrl)

	expectDebtors(debtors, []ranking.Entry{
		{ID: 1, Name: "Awa Diop", Balance: dec("200")},
		{ID: 2, Name: "Moussa Ba", Balance: dec("0")},
		{ID: 3, Name: "Fatou Sall", Balance: dec("50")},
		{ID: 4, Name: "Ibrahima Fall", Balance: dec("-20")},
	})

	suppliers.EXPECT().TotalCredit(gomock.Any()).Return(dec("1000.00"), nil)
	suppliers.EXPECT().Recent(gomock.Any(), dashboard.RecentLimit).Return(nil, nil)
	suppliers.EXPECT().RecentCredits(gomock.Any(), dashboard.RecentLimit).Return([]*supplier.Credit{{ID: 9}}, nil)
	suppliers.EXPECT().Balances(gomock.Any()).Return(nil, nil)

	ov, err := dashboard.NewService(debtors, suppliers).Overview(context.Background())
	require.NoError(t, err)

	assert.True(t, ov.NetBalance.Equal(dec("-500.00")), ov.NetBalance.String())
	assert.Len(t, ov.RecentDebtors, 1)
	assert.Len(t, ov.RecentDebts, 2)
	assert.Len(t, ov.RecentCredits, 1)
	assert.Empty(t, ov.TopSuppliers)

	require.Len(t, ov.TopDebtors, 2)
	assert.Equal(t, "Awa Diop", ov.TopDebtors[0].Name)
	assert.Equal(t, 100, ov.TopDebtors[0].Percent)
	assert.Equal(t, "Fatou Sall", ov.TopDebtors[1].Name)
	assert.Equal(t, 25, ov.TopDebtors[1].Percent)
}

func TestService_Overview_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	debtors := dashboard.NewMockDebtorSource(ctrl)
	suppliers := dashboard.NewMockSupplierSource(ctrl)

	debtors.EXPECT().TotalDebt(gomock.Any()).Return(decimal.Zero, errors.New("db down")).AnyTimes()
	debtors.EXPECT().Recent(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	debtors.EXPECT().RecentDebts(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	debtors.EXPECT().Balances(gomock.Any()).Return(nil, nil).AnyTimes()
	suppliers.EXPECT().TotalCredit(gomock.Any()).Return(decimal.Zero, nil).AnyTimes()
	suppliers.EXPECT().Recent(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	suppliers.EXPECT().RecentCredits(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	suppliers.EXPECT().Balances(gomock.Any()).Return(nil, nil).AnyTimes()

	ov, err := dashboard.NewService(debtors, suppliers).Overview(context.Background())

	assert.ErrorContains(t, err, "loading total debt")
	assert.Nil(t, ov)
}

func TestBars(t *testing.T) {
	bars := dashboard.Bars([]ranking.Entry{
		{ID: 1, Balance: dec("300")},
		{ID: 2, Balance: dec("100")},
		{ID: 3, Balance: dec("1")},
	})

	require.Len(t, bars, 3)
	assert.Equal(t, 100, bars[0].Percent)
	assert.Equal(t, 33, bars[1].Percent)
	assert.Equal(t, 0, bars[2].Percent)

	assert.Empty(t, dashboard.Bars(nil))
}
