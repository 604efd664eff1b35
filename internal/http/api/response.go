package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ardoise/internal/balance"
	"github.com/MrJamesThe3rd/ardoise/internal/dashboard"
	"github.com/MrJamesThe3rd/ardoise/internal/debtor"
	"github.com/MrJamesThe3rd/ardoise/internal/money"
	"github.com/MrJamesThe3rd/ardoise/internal/supplier"
)

// amountResponse carries the exact value as a fixed-point string next to
// its display form.
type amountResponse struct {
	Value   string `json:"value"`
	Display string `json:"display"`
}

func (h *Handler) amount(d decimal.Decimal) amountResponse {
	return amountResponse{Value: d.StringFixed(money.Places), Display: h.money.Format(d)}
}

type debtorResponse struct {
	ID          int64      `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Company     string     `json:"company,omitempty"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	DisplayName string     `json:"display_name"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func toDebtor(d *debtor.Debtor) debtorResponse {
	resp := debtorResponse{
		ID:          d.ID,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Company:     d.Company,
		Email:       d.Email,
		Phone:       d.Phone,
		Address:     d.Address,
		DisplayName: d.DisplayName(),
		CreatedAt:   d.CreatedAt,
	}

	if !d.UpdatedAt.IsZero() {
		resp.UpdatedAt = &d.UpdatedAt
	}

	return resp
}

type debtorSummaryResponse struct {
	debtorResponse
	TotalDebt amountResponse `json:"total_debt"`
	TotalPaid amountResponse `json:"total_paid"`
	Remaining amountResponse `json:"remaining"`
}

func (h *Handler) toDebtorSummary(s *debtor.Summary) debtorSummaryResponse {
	return debtorSummaryResponse{
		debtorResponse: toDebtor(s.Debtor),
		TotalDebt:      h.amount(s.TotalDebt),
		TotalPaid:      h.amount(s.TotalPaid),
		Remaining:      h.amount(s.Remaining),
	}
}

type paymentResponse struct {
	ID       int64          `json:"id"`
	Amount   amountResponse `json:"amount"`
	DatePaid string         `json:"date_paid"`
	Notes    string         `json:"notes,omitempty"`
}

type lineResponse struct {
	ID           int64             `json:"id"`
	Description  string            `json:"description"`
	DateIncurred string            `json:"date_incurred"`
	Amount       amountResponse    `json:"amount"`
	Paid         amountResponse    `json:"paid"`
	Remaining    amountResponse    `json:"remaining"`
	Status       balance.Status    `json:"status"`
	Payments     []paymentResponse `json:"payments"`
}

type debtorStatementResponse struct {
	Debtor    debtorResponse `json:"debtor"`
	Debts     []lineResponse `json:"debts"`
	TotalDebt amountResponse `json:"total_debt"`
	TotalPaid amountResponse `json:"total_paid"`
	Remaining amountResponse `json:"remaining"`
}

func (h *Handler) toDebtorStatement(st *debtor.Statement) debtorStatementResponse {
	resp := debtorStatementResponse{
		Debtor:    toDebtor(st.Debtor),
		Debts:     make([]lineResponse, len(st.Lines)),
		TotalDebt: h.amount(st.TotalDebt),
		TotalPaid: h.amount(st.TotalPaid),
		Remaining: h.amount(st.Remaining),
	}

	for i, l := range st.Lines {
		payments := make([]paymentResponse, len(l.Payments))
		for j, p := range l.Payments {
			payments[j] = paymentResponse{
				ID:       p.ID,
				Amount:   h.amount(p.Amount),
				DatePaid: p.DatePaid.Format(time.DateOnly),
				Notes:    p.Notes,
			}
		}

		resp.Debts[i] = lineResponse{
			ID:           l.Debt.ID,
			Description:  l.Debt.Description,
			DateIncurred: l.Debt.DateIncurred.Format(time.DateOnly),
			Amount:       h.amount(l.Debt.Amount),
			Paid:         h.amount(l.Paid),
			Remaining:    h.amount(l.Remaining),
			Status:       l.Status,
			Payments:     payments,
		}
	}

	return resp
}

type supplierResponse struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	ContactPerson string     `json:"contact_person,omitempty"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Address       string     `json:"address,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func toSupplier(s *supplier.Supplier) supplierResponse {
	resp := supplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		CreatedAt:     s.CreatedAt,
	}

	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = &s.UpdatedAt
	}

	return resp
}

type supplierSummaryResponse struct {
	supplierResponse
	TotalCredit amountResponse `json:"total_credit"`
	TotalPaid   amountResponse `json:"total_paid"`
	Remaining   amountResponse `json:"remaining"`
}

func (h *Handler) toSupplierSummary(s *supplier.Summary) supplierSummaryResponse {
	return supplierSummaryResponse{
		supplierResponse: toSupplier(s.Supplier),
		TotalCredit:      h.amount(s.TotalCredit),
		TotalPaid:        h.amount(s.TotalPaid),
		Remaining:        h.amount(s.Remaining),
	}
}

type supplierStatementResponse struct {
	Supplier    supplierResponse `json:"supplier"`
	Credits     []lineResponse   `json:"credits"`
	TotalCredit amountResponse   `json:"total_credit"`
	TotalPaid   amountResponse   `json:"total_paid"`
	Remaining   amountResponse   `json:"remaining"`
}

func (h *Handler) toSupplierStatement(st *supplier.Statement) supplierStatementResponse {
	resp := supplierStatementResponse{
		Supplier:    toSupplier(st.Supplier),
		Credits:     make([]lineResponse, len(st.Lines)),
		TotalCredit: h.amount(st.TotalCredit),
		TotalPaid:   h.amount(st.TotalPaid),
		Remaining:   h.amount(st.Remaining),
	}

	for i, l := range st.Lines {
		payments := make([]paymentResponse, len(l.Payments))
		for j, p := range l.Payments {
			payments[j] = paymentResponse{
				ID:       p.ID,
				Amount:   h.amount(p.Amount),
				DatePaid: p.DatePaid.Format(time.DateOnly),
				Notes:    p.Notes,
			}
		}

		resp.Credits[i] = lineResponse{
			ID:           l.Credit.ID,
			Description:  l.Credit.Description,
			DateIncurred: l.Credit.DateIncurred.Format(time.DateOnly),
			Amount:       h.amount(l.Credit.Amount),
			Paid:         h.amount(l.Paid),
			Remaining:    h.amount(l.Remaining),
			Status:       l.Status,
			Payments:     payments,
		}
	}

	return resp
}

// chartResponse is ready for a bar chart: Labels[i] pairs with Data[i].
type chartResponse struct {
	Labels []string `json:"labels"`
	Data   []string `json:"data"`
	IDs    []int64  `json:"ids"`
}

func toChart(bars []dashboard.Bar) chartResponse {
	c := chartResponse{
		Labels: make([]string, len(bars)),
		Data:   make([]string, len(bars)),
		IDs:    make([]int64, len(bars)),
	}

	for i, b := range bars {
		c.Labels[i] = b.Name
		c.Data[i] = b.Balance.StringFixed(money.Places)
		c.IDs[i] = b.ID
	}

	return c
}

type recentEntryResponse struct {
	ID           int64          `json:"id"`
	PartyID      int64          `json:"party_id"`
	Party        string         `json:"party"`
	Description  string         `json:"description"`
	DateIncurred string         `json:"date_incurred"`
	Amount       amountResponse `json:"amount"`
}

type overviewResponse struct {
	TotalDebt       amountResponse        `json:"total_debt"`
	TotalCredit     amountResponse        `json:"total_credit"`
	NetBalance      amountResponse        `json:"net_balance"`
	RecentDebtors   []debtorResponse      `json:"recent_debtors"`
	RecentSuppliers []supplierResponse    `json:"recent_suppliers"`
	RecentDebts     []recentEntryResponse `json:"recent_debts"`
	RecentCredits   []recentEntryResponse `json:"recent_credits"`
	TopDebtors      chartResponse         `json:"top_debtors"`
	TopSuppliers    chartResponse         `json:"top_suppliers"`
}

func (h *Handler) toOverview(ov *dashboard.Overview) overviewResponse {
	resp := overviewResponse{
		TotalDebt:       h.amount(ov.TotalDebt),
		TotalCredit:     h.amount(ov.TotalCredit),
		NetBalance:      h.amount(ov.NetBalance),
		RecentDebtors:   make([]debtorResponse, len(ov.RecentDebtors)),
		RecentSuppliers: make([]supplierResponse, len(ov.RecentSuppliers)),
		RecentDebts:     make([]recentEntryResponse, len(ov.RecentDebts)),
		RecentCredits:   make([]recentEntryResponse, len(ov.RecentCredits)),
		TopDebtors:      toChart(ov.TopDebtors),
		TopSuppliers:    toChart(ov.TopSuppliers),
	}

	for i, d := range ov.RecentDebtors {
		resp.RecentDebtors[i] = toDebtor(d)
	}

	for i, s := range ov.RecentSuppliers {
		resp.RecentSuppliers[i] = toSupplier(s)
	}

	for i, d := range ov.RecentDebts {
		e := recentEntryResponse{
			ID:           d.ID,
			PartyID:      d.DebtorID,
			Description:  d.Description,
			DateIncurred: d.DateIncurred.Format(time.DateOnly),
			Amount:       h.amount(d.Amount),
		}
		if d.Debtor != nil {
			e.Party = d.Debtor.DisplayName()
		}

		resp.RecentDebts[i] = e
	}

	for i, c := range ov.RecentCredits {
		e := recentEntryResponse{
			ID:           c.ID,
			PartyID:      c.SupplierID,
			Description:  c.Description,
			DateIncurred: c.DateIncurred.Format(time.DateOnly),
			Amount:       h.amount(c.Amount),
		}
		if c.Supplier != nil {
			e.Party = c.Supplier.Name
		}

		resp.RecentCredits[i] = e
	}

	return resp
}
