// Package statement renders a debtor or supplier account statement as PDF.
package statement

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ardoise/internal/balance"
	"github.com/MrJamesThe3rd/ardoise/internal/debtor"
	"github.com/MrJamesThe3rd/ardoise/internal/money"
	"github.com/MrJamesThe3rd/ardoise/internal/supplier"
)

// Document is the side-independent content of a statement.
type Document struct {
	Title     string
	Party     string
	Details   []string
	Total     decimal.Decimal
	Paid      decimal.Decimal
	Remaining decimal.Decimal
	Rows      []Row
}

type Row struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Paid        decimal.Decimal
	Remaining   decimal.Decimal
	Status      balance.Status
}

func FromDebtor(st *debtor.Statement) *Document {
	d := st.Debtor
	doc := &Document{
		Title:     "Relevé de compte débiteur",
		Party:     d.DisplayName(),
		Details:   contact(d.Email, d.Phone, d.Address),
		Total:     st.TotalDebt,
		Paid:      st.TotalPaid,
		Remaining: st.Remaining,
	}

	for _, l := range st.Lines {
		doc.Rows = append(doc.Rows, Row{
			Date:        l.Debt.DateIncurred,
			Description: l.Debt.Description,
			Amount:      l.Debt.Amount,
			Paid:        l.Paid,
			Remaining:   l.Remaining,
			Status:      l.Status,
		})
	}

	return doc
}

func FromSupplier(st *supplier.Statement) *Document {
	s := st.Supplier

	details := contact(s.Email, s.Phone, s.Address)
	if s.ContactPerson != "" {
		details = append([]string{"Contact : " + s.ContactPerson}, details...)
	}

	doc := &Document{
		Title:     "Relevé de compte fournisseur",
		Party:     s.DisplayName(),
		Details:   details,
		Total:     st.TotalCredit,
		Paid:      st.TotalPaid,
		Remaining: st.Remaining,
	}

	for _, l := range st.Lines {
		doc.Rows = append(doc.Rows, Row{
			Date:        l.Credit.DateIncurred,
			Description: l.Credit.Description,
			Amount:      l.Credit.Amount,
			Paid:        l.Paid,
			Remaining:   l.Remaining,
			Status:      l.Status,
		})
	}

	return doc
}

func contact(email, phone, address string) []string {
	var out []string

	if email != "" {
		out = append(out, "E-mail : "+email)
	}

	if phone != "" {
		out = append(out, "Téléphone : "+phone)
	}

	if address != "" {
		out = append(out, strings.ReplaceAll(address, "\n", ", "))
	}

	return out
}

// Renderer lays documents out on A4 pages.
type Renderer struct {
	appName string
	money   *money.Formatter
	now     func() time.Time
}

func NewRenderer(appName string, f *money.Formatter) *Renderer {
	return &Renderer{appName: appName, money: f, now: time.Now}
}

var columns = []struct {
	title string
	width float64
	align string
}{
	{"Date", 22, "C"},
	{"Description", 60, "L"},
	{"Montant", 28, "R"},
	{"Payé", 28, "R"},
	{"Reste", 28, "R"},
	{"Statut", 16, "C"},
}

// pageBottom is the Y position after which a new page is started.
const pageBottom = 270

// spaces outside cp1252 produced by locale number formatting.
var spaces = strings.NewReplacer("\u202f", " ", "\u00a0", " ")

func (r *Renderer) Render(w io.Writer, doc *Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title+" - "+doc.Party, true)
	pdf.SetCreator(r.appName, true)
	pdf.SetMargins(14, 14, 14)
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(spaces.Replace(s)) }
	amount := func(d decimal.Decimal) string { return text(r.money.Number(d)) }

	generated := r.now()
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		footer := fmt.Sprintf("%s - %s - page %d/{nb}", r.appName, generated.Format("02/01/2006 15:04"), pdf.PageNo())
		pdf.CellFormat(0, 10, text(footer), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(20, 20, 20)
	pdf.Cell(0, 10, text(doc.Title))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, text(doc.Party))
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)

	for _, line := range doc.Details {
		pdf.Cell(0, 6, text(line))
		pdf.Ln(5)
	}

	pdf.Ln(6)

	currency := r.money.Currency()
	sumW := 182.0 / 3

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(sumW, 10, text("Total ("+currency+")"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW, 10, text("Payé ("+currency+")"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW, 10, text("Reste ("+currency+")"), "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW, 10, amount(doc.Total), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW, 10, amount(doc.Paid), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW, 10, amount(doc.Remaining), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(245, 245, 245)

		for i, c := range columns {
			ln := 0
			if i == len(columns)-1 {
				ln = 1
			}

			pdf.CellFormat(c.width, 8, text(c.title), "1", ln, "C", true, 0, "")
		}

		pdf.SetFont("Helvetica", "", 9)
	}

	header()

	if len(doc.Rows) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 8, text("Aucune opération enregistrée."), "1", 1, "C", false, 0, "")
	}

	for _, row := range doc.Rows {
		if pdf.GetY() > pageBottom {
			pdf.AddPage()
			header()
		}

		cells := []string{
			row.Date.Format("02/01/2006"),
			truncate(row.Description, 40),
			amount(row.Amount),
			amount(row.Paid),
			amount(row.Remaining),
			row.Status.Label(),
		}

		for i, c := range columns {
			ln := 0
			if i == len(columns)-1 {
				ln = 1
			}

			pdf.CellFormat(c.width, 8, text(cells[i]), "1", ln, c.align, false, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}

	return nil
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n-1]) + "…"
}
