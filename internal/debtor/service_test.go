package debtor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ardoise/internal/balance"
	"github.com/MrJamesThe3rd/ardoise/internal/debtor"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    debtor.CreateParams
		setupMock func(m *debtor.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: debtor.CreateParams{FirstName: "Awa", LastName: "Diop", Company: "Acme"},
			setupMock: func(m *debtor.MockRepository) {
				m.EXPECT().
					CreateDebtor(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, d *debtor.Debtor) error {
						d.ID = 42
						d.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name:   "RepoError",
			params: debtor.CreateParams{FirstName: "Awa"},
			setupMock: func(m *debtor.MockRepository) {
				m.EXPECT().
					CreateDebtor(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := debtor.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := debtor.NewService(repo).Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(42), got.ID)
			assert.Equal(t, "Acme (Awa Diop)", got.DisplayName())
		})
	}
}

func TestService_CreateBatch(t *testing.T) {
	params := []debtor.CreateParams{
		{FirstName: "Awa", LastName: "Diop"},
		{FirstName: "Moussa", LastName: "Ba"},
	}

	t.Run("Empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := debtor.NewMockRepository(ctrl)

		got, err := debtor.NewService(repo).CreateBatch(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := debtor.NewMockRepository(ctrl)
		itx := debtor.NewMockImportTx(ctrl)

		repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
		itx.EXPECT().
			CreateDebtors(gomock.Any(), gomock.Len(2)).
			DoAndReturn(func(_ context.Context, ds []*debtor.Debtor) error {
				for i, d := range ds {
					d.ID = int64(i + 1)
				}

				return nil
			})
		itx.EXPECT().Commit().Return(nil)
		itx.EXPECT().Rollback().Return(nil)

		got, err := debtor.NewService(repo).CreateBatch(context.Background(), params)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Moussa Ba", got[1].FullName())
	})

	t.Run("InsertFailsRollsBack", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := debtor.NewMockRepository(ctrl)
		itx := debtor.NewMockImportTx(ctrl)

		repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
		itx.EXPECT().CreateDebtors(gomock.Any(), gomock.Any()).Return(errors.New("duplicate"))
		itx.EXPECT().Rollback().Return(nil)

		got, err := debtor.NewService(repo).CreateBatch(context.Background(), params)

		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := debtor.NewMockRepository(ctrl)

	filter := debtor.ListFilter{Query: "acme"}
	repo.EXPECT().
		ListDebtors(gomock.Any(), filter).
		Return([]*debtor.Summary{
			{Debtor: &debtor.Debtor{ID: 1}, TotalDebt: dec("150.00"), TotalPaid: dec("100.00")},
			{Debtor: &debtor.Debtor{ID: 2}, TotalDebt: decimal.Zero, TotalPaid: decimal.Zero},
		}, nil)

	got, err := debtor.NewService(repo).List(context.Background(), filter)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Remaining.Equal(dec("50.00")))
	assert.True(t, got[1].Remaining.IsZero())
}

func TestService_CreateDebt(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := debtor.NewMockRepository(ctrl)

		owner := &debtor.Debtor{ID: 7, FirstName: "Awa", LastName: "Diop"}
		repo.EXPECT().GetDebtor(gomock.Any(), int64(7)).Return(owner, nil)
		repo.EXPECT().
			CreateDebt(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, debt *debtor.Debt) error {
				debt.ID = 3
				return nil
			})

		got, err := debtor.NewService(repo).CreateDebt(context.Background(), debtor.CreateDebtParams{
			DebtorID:     7,
			Amount:       dec("2500.00"),
			Description:  "Sacs de ciment",
			DateIncurred: date,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(3), got.ID)
		assert.Same(t, owner, got.Debtor)
	})

	t.Run("UnknownDebtor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := debtor.NewMockRepository(ctrl)

		repo.EXPECT().GetDebtor(gomock.Any(), int64(99)).Return(nil, debtor.ErrNotFound)

		_, err := debtor.NewService(repo).CreateDebt(context.Background(), debtor.CreateDebtParams{DebtorID: 99})

		assert.ErrorIs(t, err, debtor.ErrNotFound)
	})
}

func TestService_Statement(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := debtor.NewMockRepository(ctrl)

	d := &debtor.Debtor{ID: 1, FirstName: "Awa", LastName: "Diop"}
	repo.EXPECT().GetDebtor(gomock.Any(), int64(1)).Return(d, nil)
	repo.EXPECT().ListDebts(gomock.Any(), int64(1)).Return([]*debtor.Debt{
		{ID: 10, DebtorID: 1, Amount: dec("100.00")},
		{ID: 11, DebtorID: 1, Amount: dec("50.00")},
		{ID: 12, DebtorID: 1, Amount: dec("40.00")},
		{ID: 13, DebtorID: 1, Amount: dec("20.00")},
	}, nil)
	repo.EXPECT().ListPayments(gomock.Any(), int64(1)).Return([]*debtor.Payment{
		{ID: 1, DebtID: 10, Amount: dec("30.00")},
		{ID: 2, DebtID: 10, Amount: dec("20.00")},
		{ID: 3, DebtID: 11, Amount: dec("50.00")},
		{ID: 4, DebtID: 12, Amount: dec("50.00")},
	}, nil)

	st, err := debtor.NewService(repo).Statement(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, st.Lines, 4)

	type want struct {
		remaining string
		status    balance.Status
	}

	wants := []want{
		{"50.00", balance.StatusOutstanding},
		{"0.00", balance.StatusSettled},
		{"-10.00", balance.StatusSettled},
		{"20.00", balance.StatusOutstanding},
	}

	for i, w := range wants {
		assert.True(t, st.Lines[i].Remaining.Equal(dec(w.remaining)), "line %d remaining %s", i, st.Lines[i].Remaining)
		assert.Equal(t, w.status, st.Lines[i].Status, "line %d", i)
		assert.Same(t, d, st.Lines[i].Debt.Debtor)
	}

	assert.Len(t, st.Lines[0].Payments, 2)
	assert.True(t, st.TotalDebt.Equal(dec("210.00")))
	assert.True(t, st.TotalPaid.Equal(dec("150.00")))
	assert.True(t, st.Remaining.Equal(dec("60.00")))

	outstanding := debtor.OutstandingDebts(st)
	require.Len(t, outstanding, 2)
	assert.Equal(t, int64(10), outstanding[0].Debt.ID)
	assert.Equal(t, int64(13), outstanding[1].Debt.ID)
}

func TestService_Statement_NoDebts(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := debtor.NewMockRepository(ctrl)

	repo.EXPECT().GetDebtor(gomock.Any(), int64(5)).Return(&debtor.Debtor{ID: 5}, nil)
	repo.EXPECT().ListDebts(gomock.Any(), int64(5)).Return(nil, nil)
	repo.EXPECT().ListPayments(gomock.Any(), int64(5)).Return(nil, nil)

	st, err := debtor.NewService(repo).Statement(context.Background(), 5)

	require.NoError(t, err)
	assert.Empty(t, st.Lines)
	assert.True(t, st.TotalDebt.IsZero())
	assert.True(t, st.Remaining.IsZero())
	assert.Empty(t, debtor.OutstandingDebts(st))
}

func TestService_Statement_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := debtor.NewMockRepository(ctrl)

	repo.EXPECT().GetDebtor(gomock.Any(), int64(5)).Return(nil, debtor.ErrNotFound)

	_, err := debtor.NewService(repo).Statement(context.Background(), 5)

	assert.ErrorIs(t, err, debtor.ErrNotFound)
}

func TestService_RecordPayment(t *testing.T) {
	paidOn := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		debtorID  int64
		params    debtor.CreatePaymentParams
		setupMock func(ptx *debtor.MockPaymentTx)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			debtorID: 1,
			params:   debtor.CreatePaymentParams{DebtID: 10, Amount: dec("30.00"), DatePaid: paidOn},
			setupMock: func(ptx *debtor.MockPaymentTx) {
				ptx.EXPECT().LockDebt(gomock.Any(), int64(10)).Return(&debtor.Debt{ID: 10, DebtorID: 1, Amount: dec("100.00")}, nil)
				ptx.EXPECT().PaidOnDebt(gomock.Any(), int64(10)).Return(dec("20.00"), nil)
				ptx.EXPECT().
					CreatePayment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *debtor.Payment) error {
						p.ID = 5
						return nil
					})
				ptx.EXPECT().Commit().Return(nil)
			},
		},
		{
			name:     "OverpaymentAccepted",
			debtorID: 1,
			params:   debtor.CreatePaymentParams{DebtID: 10, Amount: dec("500.00"), DatePaid: paidOn},
			setupMock: func(ptx *debtor.MockPaymentTx) {
				ptx.EXPECT().LockDebt(gomock.Any(), int64(10)).Return(&debtor.Debt{ID: 10, DebtorID: 1, Amount: dec("100.00")}, nil)
				ptx.EXPECT().PaidOnDebt(gomock.Any(), int64(10)).Return(dec("99.99"), nil)
				ptx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
				ptx.EXPECT().Commit().Return(nil)
			},
		},
		{
			name:     "DebtOfAnotherDebtor",
			debtorID: 2,
			params:   debtor.CreatePaymentParams{DebtID: 10, Amount: dec("1.00")},
			setupMock: func(ptx *debtor.MockPaymentTx) {
				ptx.EXPECT().LockDebt(gomock.Any(), int64(10)).Return(&debtor.Debt{ID: 10, DebtorID: 1, Amount: dec("100.00")}, nil)
			},
			wantErr: debtor.ErrDebtNotOwned,
		},
		{
			name:     "UnknownDebt",
			debtorID: 1,
			params:   debtor.CreatePaymentParams{DebtID: 404, Amount: dec("1.00")},
			setupMock: func(ptx *debtor.MockPaymentTx) {
				ptx.EXPECT().LockDebt(gomock.Any(), int64(404)).Return(nil, debtor.ErrNotFound)
			},
			wantErr: debtor.ErrDebtNotOwned,
		},
		{
			name:     "AlreadySettled",
			debtorID: 1,
			params:   debtor.CreatePaymentParams{DebtID: 10, Amount: dec("1.00")},
			setupMock: func(ptx *debtor.MockPaymentTx) {
				ptx.EXPECT().LockDebt(gomock.Any(), int64(10)).Return(&debtor.Debt{ID: 10, DebtorID: 1, Amount: dec("50.00")}, nil)
				ptx.EXPECT().PaidOnDebt(gomock.Any(), int64(10)).Return(dec("50.00"), nil)
			},
			wantErr: debtor.ErrDebtNotOutstanding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := debtor.NewMockRepository(ctrl)
			ptx := debtor.NewMockPaymentTx(ctrl)

			repo.EXPECT().BeginPayment(gomock.Any()).Return(ptx, nil)
			ptx.EXPECT().Rollback().Return(nil)
			tt.setupMock(ptx)

			got, err := debtor.NewService(repo).RecordPayment(context.Background(), tt.debtorID, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.params.DebtID, got.DebtID)
			assert.True(t, got.Amount.Equal(tt.params.Amount))
		})
	}
}

func TestService_Balances(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := debtor.NewMockRepository(ctrl)

	repo.EXPECT().
		ListDebtors(gomock.Any(), debtor.ListFilter{}).
		Return([]*debtor.Summary{
			{Debtor: &debtor.Debtor{ID: 1, FirstName: "Awa", LastName: "Diop", Company: "Acme"}, TotalDebt: dec("80"), TotalPaid: dec("30")},
			{Debtor: &debtor.Debtor{ID: 2, FirstName: "Moussa", LastName: "Ba"}, TotalDebt: dec("10"), TotalPaid: dec("15")},
		}, nil)

	got, err := debtor.NewService(repo).Balances(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Awa Diop", got[0].Name)
	assert.True(t, got[0].Balance.Equal(dec("50")))
	assert.True(t, got[1].Balance.Equal(dec("-5")))
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := debtor.NewMockRepository(ctrl)

	repo.EXPECT().DeleteDebtor(gomock.Any(), int64(3)).Return(debtor.ErrNotFound)

	err := debtor.NewService(repo).Delete(context.Background(), 3)

	assert.ErrorIs(t, err, debtor.ErrNotFound)
}
