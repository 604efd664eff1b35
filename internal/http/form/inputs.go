package form

import (
	"strconv"
	"time"

	"github.com/MrJamesThe3rd/ardoise/internal/debtor"
	"github.com/MrJamesThe3rd/ardoise/internal/money"
	"github.com/MrJamesThe3rd/ardoise/internal/supplier"
)

// Inputs are only converted after a successful Bind, so the parse errors
// ignored below cannot occur.

type DebtorInput struct {
	FirstName string `form:"first_name" validate:"required,max=100"`
	LastName  string `form:"last_name" validate:"required,max=100"`
	Company   string `form:"company" validate:"max=200"`
	Email     string `form:"email" validate:"omitempty,email,max=254"`
	Phone     string `form:"phone" validate:"max=30"`
	Address   string `form:"address" validate:"max=1000"`
}

func (in DebtorInput) Params() debtor.CreateParams {
	return debtor.CreateParams{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Company:   in.Company,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
	}
}

type DebtInput struct {
	DebtorID     string `form:"debtor" validate:"required,number"`
	Amount       string `form:"amount" validate:"required,amount"`
	Description  string `form:"description" validate:"required,max=1000"`
	DateIncurred string `form:"date_incurred" validate:"required,date"`
}

func (in DebtInput) Params() debtor.CreateDebtParams {
	id, _ := strconv.ParseInt(in.DebtorID, 10, 64)
	amount, _ := money.Parse(in.Amount)
	date, _ := time.Parse(time.DateOnly, in.DateIncurred)

	return debtor.CreateDebtParams{
		DebtorID:     id,
		Amount:       amount,
		Description:  in.Description,
		DateIncurred: date,
	}
}

type PaymentInput struct {
	DebtID   string `form:"debt" validate:"required,number"`
	Amount   string `form:"amount" validate:"required,amount"`
	DatePaid string `form:"date_paid" validate:"required,date"`
	Notes    string `form:"notes" validate:"max=1000"`
}

func (in PaymentInput) Params() debtor.CreatePaymentParams {
	id, _ := strconv.ParseInt(in.DebtID, 10, 64)
	amount, _ := money.Parse(in.Amount)
	date, _ := time.Parse(time.DateOnly, in.DatePaid)

	return debtor.CreatePaymentParams{DebtID: id, Amount: amount, DatePaid: date, Notes: in.Notes}
}

type SupplierInput struct {
	Name          string `form:"name" validate:"required,max=200"`
	ContactPerson string `form:"contact_person" validate:"max=200"`
	Email         string `form:"email" validate:"omitempty,email,max=254"`
	Phone         string `form:"phone" validate:"max=30"`
	Address       string `form:"address" validate:"max=1000"`
}

func (in SupplierInput) Params() supplier.CreateParams {
	return supplier.CreateParams{
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
	}
}

type CreditInput struct {
	SupplierID   string `form:"supplier" validate:"required,number"`
	Amount       string `form:"amount" validate:"required,amount"`
	Description  string `form:"description" validate:"required,max=1000"`
	DateIncurred string `form:"date_incurred" validate:"required,date"`
}

func (in CreditInput) Params() supplier.CreateCreditParams {
	id, _ := strconv.ParseInt(in.SupplierID, 10, 64)
	amount, _ := money.Parse(in.Amount)
	date, _ := time.Parse(time.DateOnly, in.DateIncurred)

	return supplier.CreateCreditParams{
		SupplierID:   id,
		Amount:       amount,
		Description:  in.Description,
		DateIncurred: date,
	}
}

type SupplierPaymentInput struct {
	CreditID string `form:"credit" validate:"required,number"`
	Amount   string `form:"amount" validate:"required,amount"`
	DatePaid string `form:"date_paid" validate:"required,date"`
	Notes    string `form:"notes" validate:"max=1000"`
}

func (in SupplierPaymentInput) Params() supplier.CreatePaymentParams {
	id, _ := strconv.ParseInt(in.CreditID, 10, 64)
	amount, _ := money.Parse(in.Amount)
	date, _ := time.Parse(time.DateOnly, in.DatePaid)

	return supplier.CreatePaymentParams{CreditID: id, Amount: amount, DatePaid: date, Notes: in.Notes}
}
