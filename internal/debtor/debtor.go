package debtor

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ardoise/internal/balance"
)

// Debtor is a person or company owing money to the operator.
type Debtor struct {
	ID        int64
	FirstName string
	LastName  string
	Company   string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d *Debtor) FullName() string {
	return d.FirstName + " " + d.LastName
}

// DisplayName is "Company (First Last)" when a company is set.
func (d *Debtor) DisplayName() string {
	if d.Company != "" {
		return d.Company + " (" + d.FullName() + ")"
	}

	return d.FullName()
}

// Debt is a single amount owed by a debtor.
type Debt struct {
	ID           int64
	DebtorID     int64
	Amount       decimal.Decimal
	Description  string
	DateIncurred time.Time
	Debtor       *Debtor // Loaded via JOIN
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Payment reduces the remaining balance of a debt.
type Payment struct {
	ID        int64
	DebtID    int64
	Amount    decimal.Decimal
	DatePaid  time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary is a debtor decorated with its aggregate sums, as shown in listings.
type Summary struct {
	Debtor    *Debtor
	TotalDebt decimal.Decimal
	TotalPaid decimal.Decimal
	Remaining decimal.Decimal
}

// Line is one debt of a statement with the payments made against it.
type Line struct {
	Debt      *Debt
	Payments  []*Payment
	Paid      decimal.Decimal
	Remaining decimal.Decimal
	Status    balance.Status
}

// Statement is the full account of a debtor.
type Statement struct {
	Debtor    *Debtor
	Lines     []*Line
	TotalDebt decimal.Decimal
	TotalPaid decimal.Decimal
	Remaining decimal.Decimal
}
