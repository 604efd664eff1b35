package view

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ardoise/internal/balance"
	"github.com/MrJamesThe3rd/ardoise/internal/debtor"
	"github.com/MrJamesThe3rd/ardoise/internal/http/form"
	"github.com/MrJamesThe3rd/ardoise/internal/supplier"
)

// Party is one row of a debtor or supplier listing.
type Party struct {
	ID        int64
	Name      string
	Contact   string
	Phone     string
	Total     decimal.Decimal
	Paid      decimal.Decimal
	Remaining decimal.Decimal
}

// Entry is one debt or credit of an account.
type Entry struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Paid        decimal.Decimal
	Remaining   decimal.Decimal
	Status      balance.Status
}

type Account struct {
	Name      string
	Entries   []Entry
	Total     decimal.Decimal
	Paid      decimal.Decimal
	Remaining decimal.Decimal
}

// PartySource is one side of the ledger as seen by PartyModel.
type PartySource interface {
	Title() string
	List(ctx context.Context, query string) ([]Party, error)
	Account(ctx context.Context, id int64) (*Account, error)
	// NewForm returns a creation form and the function saving its values
	// once completed.
	NewForm() (*huh.Form, func(ctx context.Context) error)
}

type DebtorSource struct {
	svc *debtor.Service
}

func NewDebtorSource(svc *debtor.Service) DebtorSource {
	return DebtorSource{svc: svc}
}

func (s DebtorSource) Title() string { return "Débiteurs" }

func (s DebtorSource) List(ctx context.Context, query string) ([]Party, error) {
	summaries, err := s.svc.List(ctx, debtor.ListFilter{Query: query})
	if err != nil {
		return nil, err
	}

	parties := make([]Party, len(summaries))
	for i, sum := range summaries {
		parties[i] = Party{
			ID:        sum.Debtor.ID,
			Name:      sum.Debtor.FullName(),
			Contact:   sum.Debtor.Company,
			Phone:     sum.Debtor.Phone,
			Total:     sum.TotalDebt,
			Paid:      sum.TotalPaid,
			Remaining: sum.Remaining,
		}
	}

	return parties, nil
}

func (s DebtorSource) Account(ctx context.Context, id int64) (*Account, error) {
	st, err := s.svc.Statement(ctx, id)
	if err != nil {
		return nil, err
	}

	acc := &Account{
		Name:      st.Debtor.DisplayName(),
		Total:     st.TotalDebt,
		Paid:      st.TotalPaid,
		Remaining: st.Remaining,
	}

	for _, l := range st.Lines {
		acc.Entries = append(acc.Entries, Entry{
			Date:        l.Debt.DateIncurred,
			Description: l.Debt.Description,
			Amount:      l.Debt.Amount,
			Paid:        l.Paid,
			Remaining:   l.Remaining,
			Status:      l.Status,
		})
	}

	return acc, nil
}

func (s DebtorSource) NewForm() (*huh.Form, func(ctx context.Context) error) {
	in := &form.DebtorInput{}

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("first_name").Title("Prénom").Value(&in.FirstName).
				Validate(checked(in, "first_name", func(v string) { in.FirstName = v })),
			huh.NewInput().Key("last_name").Title("Nom").Value(&in.LastName).
				Validate(checked(in, "last_name", func(v string) { in.LastName = v })),
			huh.NewInput().Key("company").Title("Entreprise").Value(&in.Company).
				Validate(checked(in, "company", func(v string) { in.Company = v })),
			huh.NewInput().Key("phone").Title("Téléphone").Value(&in.Phone).
				Validate(checked(in, "phone", func(v string) { in.Phone = v })),
			huh.NewInput().Key("email").Title("E-mail").Value(&in.Email).
				Validate(checked(in, "email", func(v string) { in.Email = v })),
		),
	).WithWidth(45).WithShowHelp(false)

	save := func(ctx context.Context) error {
		trim(&in.FirstName, &in.LastName, &in.Company, &in.Phone, &in.Email)

		if err := valid(in); err != nil {
			return err
		}

		_, err := s.svc.Create(ctx, in.Params())

		return err
	}

	return f, save
}

type SupplierSource struct {
	svc *supplier.Service
}

func NewSupplierSource(svc *supplier.Service) SupplierSource {
	return SupplierSource{svc: svc}
}

func (s SupplierSource) Title() string { return "Fournisseurs" }

func (s SupplierSource) List(ctx context.Context, query string) ([]Party, error) {
	summaries, err := s.svc.List(ctx, supplier.ListFilter{Query: query})
	if err != nil {
		return nil, err
	}

	parties := make([]Party, len(summaries))
	for i, sum := range summaries {
		parties[i] = Party{
			ID:        sum.Supplier.ID,
			Name:      sum.Supplier.Name,
			Contact:   sum.Supplier.ContactPerson,
			Phone:     sum.Supplier.Phone,
			Total:     sum.TotalCredit,
			Paid:      sum.TotalPaid,
			Remaining: sum.Remaining,
		}
	}

	return parties, nil
}

func (s SupplierSource) Account(ctx context.Context, id int64) (*Account, error) {
	st, err := s.svc.Statement(ctx, id)
	if err != nil {
		return nil, err
	}

	acc := &Account{
		Name:      st.Supplier.DisplayName(),
		Total:     st.TotalCredit,
		Paid:      st.TotalPaid,
		Remaining: st.Remaining,
	}

	for _, l := range st.Lines {
		acc.Entries = append(acc.Entries, Entry{
			Date:        l.Credit.DateIncurred,
			Description: l.Credit.Description,
			Amount:      l.Credit.Amount,
			Paid:        l.Paid,
			Remaining:   l.Remaining,
			Status:      l.Status,
		})
	}

	return acc, nil
}

func (s SupplierSource) NewForm() (*huh.Form, func(ctx context.Context) error) {
	in := &form.SupplierInput{}

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("name").Title("Nom").Value(&in.Name).
				Validate(checked(in, "name", func(v string) { in.Name = v })),
			huh.NewInput().Key("contact_person").Title("Personne à contacter").Value(&in.ContactPerson).
				Validate(checked(in, "contact_person", func(v string) { in.ContactPerson = v })),
			huh.NewInput().Key("phone").Title("Téléphone").Value(&in.Phone).
				Validate(checked(in, "phone", func(v string) { in.Phone = v })),
			huh.NewInput().Key("email").Title("E-mail").Value(&in.Email).
				Validate(checked(in, "email", func(v string) { in.Email = v })),
		),
	).WithWidth(45).WithShowHelp(false)

	save := func(ctx context.Context) error {
		trim(&in.Name, &in.ContactPerson, &in.Phone, &in.Email)

		if err := valid(in); err != nil {
			return err
		}

		_, err := s.svc.Create(ctx, in.Params())

		return err
	}

	return f, save
}

// checked validates the whole input with the web form rules and reports the
// message of a single field.
func checked(in any, name string, set func(string)) func(string) error {
	return func(v string) error {
		set(strings.TrimSpace(v))

		errs, err := form.Check(in)
		if err != nil {
			return err
		}

		if msg, ok := errs[name]; ok {
			return errors.New(msg)
		}

		return nil
	}
}

func valid(in any) error {
	errs, err := form.Check(in)
	if err != nil {
		return err
	}

	for _, msg := range errs {
		return errors.New(msg)
	}

	return nil
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
