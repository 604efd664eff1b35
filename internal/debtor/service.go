package debtor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ardoise/internal/balance"
	"github.com/MrJamesThe3rd/ardoise/internal/ranking"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDebtNotOwned       = errors.New("debt does not belong to this debtor")
	ErrDebtNotOutstanding = errors.New("debt is already settled")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=debtor
type Repository interface {
	CreateDebtor(ctx context.Context, d *Debtor) error
	GetDebtor(ctx context.Context, id int64) (*Debtor, error)
	ListDebtors(ctx context.Context, filter ListFilter) ([]*Summary, error)
	RecentDebtors(ctx context.Context, limit int) ([]*Debtor, error)
	DeleteDebtor(ctx context.Context, id int64) error

	CreateDebt(ctx context.Context, debt *Debt) error
	ListDebts(ctx context.Context, debtorID int64) ([]*Debt, error)
	RecentDebts(ctx context.Context, limit int) ([]*Debt, error)
	TotalDebt(ctx context.Context) (decimal.Decimal, error)

	ListPayments(ctx context.Context, debtorID int64) ([]*Payment, error)

	BeginImport(ctx context.Context) (ImportTx, error)
	BeginPayment(ctx context.Context) (PaymentTx, error)
}

type ImportTx interface {
	CreateDebtors(ctx context.Context, debtors []*Debtor) error
	Commit() error
	Rollback() error
}

// PaymentTx holds a row lock on the debt between the balance check and the insert.
type PaymentTx interface {
	LockDebt(ctx context.Context, id int64) (*Debt, error)
	PaidOnDebt(ctx context.Context, id int64) (decimal.Decimal, error)
	CreatePayment(ctx context.Context, p *Payment) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	FirstName string
	LastName  string
	Company   string
	Email     string
	Phone     string
	Address   string
}

type CreateDebtParams struct {
	DebtorID     int64
	Amount       decimal.Decimal
	Description  string
	DateIncurred time.Time
}

type CreatePaymentParams struct {
	DebtID   int64
	Amount   decimal.Decimal
	DatePaid time.Time
	Notes    string
}

// ListFilter narrows a listing. Query matches first name, last name, company
// and phone case-insensitively. A zero Limit means no limit.
type ListFilter struct {
	Query string
	Limit int
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Debtor, error) {
	d := paramsToDebtor(params)
	if err := s.repo.CreateDebtor(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

// CreateBatch creates every debtor or none of them.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Debtor, error) {
	if len(params) == 0 {
		return nil, nil
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	debtors := make([]*Debtor, len(params))
	for i, p := range params {
		debtors[i] = paramsToDebtor(p)
	}

	if err := itx.CreateDebtors(ctx, debtors); err != nil {
		return nil, fmt.Errorf("create debtors: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return debtors, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Debtor, error) {
	return s.repo.GetDebtor(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Summary, error) {
	summaries, err := s.repo.ListDebtors(ctx, filter)
	if err != nil {
		return nil, err
	}

	for _, sum := range summaries {
		sum.Remaining = balance.Outstanding(sum.TotalDebt, sum.TotalPaid)
	}

	return summaries, nil
}

// Delete removes the debtor together with its debts and their payments.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteDebtor(ctx, id)
}

func (s *Service) CreateDebt(ctx context.Context, params CreateDebtParams) (*Debt, error) {
	owner, err := s.repo.GetDebtor(ctx, params.DebtorID)
	if err != nil {
		return nil, err
	}

	debt := &Debt{
		DebtorID:     params.DebtorID,
		Amount:       params.Amount,
		Description:  params.Description,
		DateIncurred: params.DateIncurred,
		Debtor:       owner,
	}
	if err := s.repo.CreateDebt(ctx, debt); err != nil {
		return nil, err
	}

	return debt, nil
}

func (s *Service) Recent(ctx context.Context, limit int) ([]*Debtor, error) {
	return s.repo.RecentDebtors(ctx, limit)
}

// RecentDebts returns the latest debts by date incurred, each with its debtor.
func (s *Service) RecentDebts(ctx context.Context, limit int) ([]*Debt, error) {
	return s.repo.RecentDebts(ctx, limit)
}

// TotalDebt is the sum of every debt amount ever recorded.
func (s *Service) TotalDebt(ctx context.Context) (decimal.Decimal, error) {
	return s.repo.TotalDebt(ctx)
}

func (s *Service) Statement(ctx context.Context, id int64) (*Statement, error) {
	d, err := s.repo.GetDebtor(ctx, id)
	if err != nil {
		return nil, err
	}

	debts, err := s.repo.ListDebts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}

	payments, err := s.repo.ListPayments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}

	return buildStatement(d, debts, payments), nil
}

func buildStatement(d *Debtor, debts []*Debt, payments []*Payment) *Statement {
	byDebt := make(map[int64][]*Payment, len(debts))
	for _, p := range payments {
		byDebt[p.DebtID] = append(byDebt[p.DebtID], p)
	}

	st := &Statement{Debtor: d, Lines: make([]*Line, 0, len(debts))}

	amounts := make([]decimal.Decimal, 0, len(debts))
	calc := make([]balance.Line, 0, len(debts))

	for _, debt := range debts {
		debt.Debtor = d

		paid := make([]decimal.Decimal, 0, len(byDebt[debt.ID]))
		for _, p := range byDebt[debt.ID] {
			paid = append(paid, p.Amount)
		}

		remaining := balance.Remaining(debt.Amount, paid)
		st.Lines = append(st.Lines, &Line{
			Debt:      debt,
			Payments:  byDebt[debt.ID],
			Paid:      balance.Sum(paid),
			Remaining: remaining,
			Status:    balance.StatusOf(remaining),
		})

		amounts = append(amounts, debt.Amount)
		calc = append(calc, balance.Line{Amount: debt.Amount, Payments: paid})
	}

	st.TotalDebt = balance.Sum(amounts)
	st.Remaining = balance.Aggregate(calc)
	st.TotalPaid = st.TotalDebt.Sub(st.Remaining)

	return st
}

// OutstandingDebts returns the lines a payment may still be recorded against.
func OutstandingDebts(st *Statement) []*Line {
	var out []*Line

	for _, l := range st.Lines {
		if l.Remaining.IsPositive() {
			out = append(out, l)
		}
	}

	return out
}

// RecordPayment adds a payment to one of the debtor's debts. The debt must
// belong to debtorID and still have a positive remaining balance; the amount
// itself is not capped.
func (s *Service) RecordPayment(ctx context.Context, debtorID int64, params CreatePaymentParams) (*Payment, error) {
	ptx, err := s.repo.BeginPayment(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin payment: %w", err)
	}
	defer ptx.Rollback()

	debt, err := ptx.LockDebt(ctx, params.DebtID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrDebtNotOwned
		}

		return nil, fmt.Errorf("lock debt: %w", err)
	}

	if debt.DebtorID != debtorID {
		return nil, ErrDebtNotOwned
	}

	paid, err := ptx.PaidOnDebt(ctx, debt.ID)
	if err != nil {
		return nil, fmt.Errorf("sum payments: %w", err)
	}

	if !balance.Outstanding(debt.Amount, paid).IsPositive() {
		return nil, ErrDebtNotOutstanding
	}

	p := &Payment{
		DebtID:   debt.ID,
		Amount:   params.Amount,
		DatePaid: params.DatePaid,
		Notes:    params.Notes,
	}
	if err := ptx.CreatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	if err := ptx.Commit(); err != nil {
		return nil, fmt.Errorf("commit payment: %w", err)
	}

	return p, nil
}

// Balances lists every debtor with its aggregate remaining balance.
func (s *Service) Balances(ctx context.Context) ([]ranking.Entry, error) {
	summaries, err := s.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}

	entries := make([]ranking.Entry, len(summaries))
	for i, sum := range summaries {
		entries[i] = ranking.Entry{
			ID:      sum.Debtor.ID,
			Name:    sum.Debtor.FullName(),
			Balance: sum.Remaining,
		}
	}

	return entries, nil
}

func paramsToDebtor(p CreateParams) *Debtor {
	return &Debtor{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Company:   p.Company,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
	}
}
