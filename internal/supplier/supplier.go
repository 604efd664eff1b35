package supplier

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ardoise/internal/balance"
)

// Supplier is a person or company the operator owes money to.
type Supplier struct {
	ID            int64
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s *Supplier) DisplayName() string {
	return s.Name
}

// Credit is a single amount owed to a supplier.
type Credit struct {
	ID           int64
	SupplierID   int64
	Amount       decimal.Decimal
	Description  string
	DateIncurred time.Time
	Supplier     *Supplier // Loaded via JOIN
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Payment is money paid to a supplier against one credit.
type Payment struct {
	ID        int64
	CreditID  int64
	Amount    decimal.Decimal
	DatePaid  time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Summary struct {
	Supplier    *Supplier
	TotalCredit decimal.Decimal
	TotalPaid   decimal.Decimal
	Remaining   decimal.Decimal
}

type Line struct {
	Credit    *Credit
	Payments  []*Payment
	Paid      decimal.Decimal
	Remaining decimal.Decimal
	Status    balance.Status
}

type Statement struct {
	Supplier    *Supplier
	Lines       []*Line
	TotalCredit decimal.Decimal
	TotalPaid   decimal.Decimal
	Remaining   decimal.Decimal
}
