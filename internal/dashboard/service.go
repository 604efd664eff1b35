// Package dashboard assembles the home page figures: totals, latest records
// and the largest outstanding balances on each side of the ledger.
package dashboard

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/ardoise/internal/debtor"
	"github.com/MrJamesThe3rd/ardoise/internal/ranking"
	"github.com/MrJamesThe3rd/ardoise/internal/supplier"
)

// RecentLimit is how many records each "latest" panel shows.
const RecentLimit = 5

//go:generate mockgen -source=service.go -destination=source_mock.go -package=dashboard
type DebtorSource interface {
	TotalDebt(ctx context.Context) (decimal.Decimal, error)
	Recent(ctx context.Context, limit int) ([]*debtor.Debtor, error)
	RecentDebts(ctx context.Context, limit int) ([]*debtor.Debt, error)
	Balances(ctx context.Context) ([]ranking.Entry, error)
}

type SupplierSource interface {
	TotalCredit(ctx context.Context) (decimal.Decimal, error)
	Recent(ctx context.Context, limit int) ([]*supplier.Supplier, error)
	RecentCredits(ctx context.Context, limit int) ([]*supplier.Credit, error)
	Balances(ctx context.Context) ([]ranking.Entry, error)
}

// Bar is a ranking entry sized relative to the largest entry of its chart.
type Bar struct {
	ranking.Entry
	Percent int
}

type Overview struct {
	TotalDebt   decimal.Decimal
	TotalCredit decimal.Decimal
	// NetBalance is TotalCredit minus TotalDebt.
	NetBalance decimal.Decimal

	RecentDebtors   []*debtor.Debtor
	RecentSuppliers []*supplier.Supplier
	RecentDebts     []*debtor.Debt
	RecentCredits   []*supplier.Credit

	TopDebtors   []Bar
	TopSuppliers []Bar
}

type Service struct {
	debtors   DebtorSource
	suppliers SupplierSource
}

func NewService(debtors DebtorSource, suppliers SupplierSource) *Service {
	return &Service{debtors: debtors, suppliers: suppliers}
}

// Overview loads every panel concurrently; the first failure cancels the rest.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var (
		ov               Overview
		debtorBalances   []ranking.Entry
		supplierBalances []ranking.Entry
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		ov.TotalDebt, err = s.debtors.TotalDebt(ctx)
		return wrap("total debt", err)
	})
	g.Go(func() (err error) {
		ov.TotalCredit, err = s.suppliers.TotalCredit(ctx)
		return wrap("total credit", err)
	})
	g.Go(func() (err error) {
		ov.RecentDebtors, err = s.debtors.Recent(ctx, RecentLimit)
		return wrap("recent debtors", err)
	})
	g.Go(func() (err error) {
		ov.RecentSuppliers, err = s.suppliers.Recent(ctx, RecentLimit)
		return wrap("recent suppliers", err)
	})
	g.Go(func() (err error) {
		ov.RecentDebts, err = s.debtors.RecentDebts(ctx, RecentLimit)
		return wrap("recent debts", err)
	})
	g.Go(func() (err error) {
		ov.RecentCredits, err = s.suppliers.RecentCredits(ctx, RecentLimit)
		return wrap("recent credits", err)
	})
	g.Go(func() (err error) {
		debtorBalances, err = s.debtors.Balances(ctx)
		return wrap("debtor balances", err)
	})
	g.Go(func() (err error) {
		supplierBalances, err = s.suppliers.Balances(ctx)
		return wrap("supplier balances", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ov.NetBalance = ov.TotalCredit.Sub(ov.TotalDebt)
	ov.TopDebtors = Bars(ranking.Top(debtorBalances, ranking.DefaultLimit))
	ov.TopSuppliers = Bars(ranking.Top(supplierBalances, ranking.DefaultLimit))

	return &ov, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("loading %s: %w", what, err)
	}

	return nil
}

var hundred = decimal.NewFromInt(100)

// Bars sizes ranked entries against the first (largest) one.
func Bars(ranked []ranking.Entry) []Bar {
	bars := make([]Bar, len(ranked))
	if len(ranked) == 0 {
		return bars
	}

	top := ranked[0].Balance

	for i, e := range ranked {
		pct := 0
		if top.IsPositive() {
			pct = int(e.Balance.Mul(hundred).Div(top).Round(0).IntPart())
		}

		bars[i] = Bar{Entry: e, Percent: pct}
	}

	return bars
}
