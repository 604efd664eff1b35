package supplier

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
	ErrNotFound             = errors.New("not found")
	ErrCreditNotOwned       = errors.New("credit does not belong to this supplier")
	ErrCreditNotOutstanding = errors.New("credit is already settled")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=supplier
type Repository interface {
	CreateSupplier(ctx context.Context, s *Supplier) error
	GetSupplier(ctx context.Context, id int64) (*Supplier, error)
	ListSuppliers(ctx context.Context, filter ListFilter) ([]*Summary, error)
	RecentSuppliers(ctx context.Context, limit int) ([]*Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error

	CreateCredit(ctx context.Context, c *Credit) error
	ListCredits(ctx context.Context, supplierID int64) ([]*Credit, error)
	RecentCredits(ctx context.Context, limit int) ([]*Credit, error)
	TotalCredit(ctx context.Context) (decimal.Decimal, error)

	ListPayments(ctx context.Context, supplierID int64) ([]*Payment, error)

	BeginImport(ctx context.Context) (ImportTx, error)
	BeginPayment(ctx context.Context) (PaymentTx, error)
}

type ImportTx interface {
	CreateSuppliers(ctx context.Context, suppliers []*Supplier) error
	Commit() error
	Rollback() error
}

type PaymentTx interface {
	LockCredit(ctx context.Context, id int64) (*Credit, error)
	PaidOnCredit(ctx context.Context, id int64) (decimal.Decimal, error)
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
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
}

type CreateCreditParams struct {
	SupplierID   int64
	Amount       decimal.Decimal
	Description  string
	DateIncurred time.Time
}

type CreatePaymentParams struct {
	CreditID int64
	Amount   decimal.Decimal
	DatePaid time.Time
	Notes    string
}

// ListFilter narrows a listing. Query matches name, contact person and phone.
type ListFilter struct {
	Query string
	Limit int
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Supplier, error) {
	sup := paramsToSupplier(params)
	if err := s.repo.CreateSupplier(ctx, sup); err != nil {
		return nil, err
	}

	return sup, nil
}

func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Supplier, error) {
	if len(params) == 0 {
		return nil, nil
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	suppliers := make([]*Supplier, len(params))
	for i, p := range params {
		suppliers[i] = paramsToSupplier(p)
	}

	if err := itx.CreateSuppliers(ctx, suppliers); err != nil {
		return nil, fmt.Errorf("create suppliers: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return suppliers, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Supplier, error) {
	return s.repo.GetSupplier(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Summary, error) {
	summaries, err := s.repo.ListSuppliers(ctx, filter)
	if err != nil {
		return nil, err
	}

	for _, sum := range summaries {
		sum.Remaining = balance.Outstanding(sum.TotalCredit, sum.TotalPaid)
	}

	return summaries, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteSupplier(ctx, id)
}

func (s *Service) CreateCredit(ctx context.Context, params CreateCreditParams) (*Credit, error) {
	owner, err := s.repo.GetSupplier(ctx, params.SupplierID)
	if err != nil {
		return nil, err
	}

	c := &Credit{
		SupplierID:   params.SupplierID,
		Amount:       params.Amount,
		Description:  params.Description,
		DateIncurred: params.DateIncurred,
		Supplier:     owner,
	}
	if err := s.repo.CreateCredit(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Recent(ctx context.Context, limit int) ([]*Supplier, error) {
	return s.repo.RecentSuppliers(ctx, limit)
}

func (s *Service) RecentCredits(ctx context.Context, limit int) ([]*Credit, error) {
	return s.repo.RecentCredits(ctx, limit)
}

func (s *Service) TotalCredit(ctx context.Context) (decimal.Decimal, error) {
	return s.repo.TotalCredit(ctx)
}

func (s *Service) Statement(ctx context.Context, id int64) (*Statement, error) {
	sup, err := s.repo.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	credits, err := s.repo.ListCredits(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing credits: %w", err)
	}

	payments, err := s.repo.ListPayments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}

	byCredit := make(map[int64][]*Payment, len(credits))
	for _, p := range payments {
		byCredit[p.CreditID] = append(byCredit[p.CreditID], p)
	}

	st := &Statement{Supplier: sup, Lines: make([]*Line, 0, len(credits))}

	var (
		amounts []decimal.Decimal
		calc    []balance.Line
	)

	for _, c := range credits {
		c.Supplier = sup

		var paid []decimal.Decimal
		for _, p := range byCredit[c.ID] {
			paid = append(paid, p.Amount)
		}

		remaining := balance.Remaining(c.Amount, paid)
		st.Lines = append(st.Lines, &Line{
			Credit:    c,
			Payments:  byCredit[c.ID],
			Paid:      balance.Sum(paid),
			Remaining: remaining,
			Status:    balance.StatusOf(remaining),
		})

		amounts = append(amounts, c.Amount)
		calc = append(calc, balance.Line{Amount: c.Amount, Payments: paid})
	}

	st.TotalCredit = balance.Sum(amounts)
	st.Remaining = balance.Aggregate(calc)
	st.TotalPaid = st.TotalCredit.Sub(st.Remaining)

	return st, nil
}

// OutstandingCredits returns the lines a payment may still be recorded against.
func OutstandingCredits(st *Statement) []*Line {
	var out []*Line

	for _, l := range st.Lines {
		if l.Remaining.IsPositive() {
			out = append(out, l)
		}
	}

	return out
}

// RecordPayment pays part of a credit. The credit row stays locked until the
// payment is committed.
func (s *Service) RecordPayment(ctx context.Context, supplierID int64, params CreatePaymentParams) (*Payment, error) {
	ptx, err := s.repo.BeginPayment(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin payment: %w", err)
	}
	defer ptx.Rollback()

	c, err := ptx.LockCredit(ctx, params.CreditID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrCreditNotOwned
		}

		return nil, fmt.Errorf("lock credit: %w", err)
	}

	if c.SupplierID != supplierID {
		return nil, ErrCreditNotOwned
	}

	paid, err := ptx.PaidOnCredit(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("sum payments: %w", err)
	}

	if !balance.Outstanding(c.Amount, paid).IsPositive() {
		return nil, ErrCreditNotOutstanding
	}

	p := &Payment{
		CreditID: c.ID,
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

func (s *Service) Balances(ctx context.Context) ([]ranking.Entry, error) {
	summaries, err := s.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}

	entries := make([]ranking.Entry, len(summaries))
	for i, sum := range summaries {
		entries[i] = ranking.Entry{
			ID:      sum.Supplier.ID,
			Name:    sum.Supplier.DisplayName(),
			Balance: sum.Remaining,
		}
	}

	return entries, nil
}

func paramsToSupplier(p CreateParams) *Supplier {
	return &Supplier{
		Name:          p.Name,
		ContactPerson: p.ContactPerson,
		Email:         p.Email,
		Phone:         p.Phone,
		Address:       p.Address,
	}
}
