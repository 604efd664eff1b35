package statement_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/ardoise/internal/balance"
	"github.com/MrJamesThe3rd/ardoise/internal/debtor"
	"github.com/MrJamesThe3rd/ardoise/internal/money"
	"github.com/MrJamesThe3rd/ardoise/internal/statement"
	"github.com/MrJamesThe3rd/ardoise/internal/supplier"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFromDebtor(t *testing.T) {
	st := &debtor.Statement{
		Debtor: &debtor.Debtor{FirstName: "Awa", LastName: "Diop", Company: "Acme", Phone: "77 123 45 67"},
		Lines: []*debtor.Line{
			{
				Debt:      &debtor.Debt{Amount: dec("100"), Description: "Riz", DateIncurred: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
				Paid:      dec("40"),
				Remaining: dec("60"),
				Status:    balance.StatusOutstanding,
			},
		},
		TotalDebt: dec("100"),
		TotalPaid: dec("40"),
		Remaining: dec("60"),
	}

	doc := statement.FromDebtor(st)

	assert.Equal(t, "Acme (Awa Diop)", doc.Party)
	assert.Equal(t, []string{"Téléphone : 77 123 45 67"}, doc.Details)
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "Riz", doc.Rows[0].Description)
	assert.True(t, doc.Remaining.Equal(dec("60")))
}

func TestFromSupplier(t *testing.T) {
	doc := statement.FromSupplier(&supplier.Statement{
		Supplier: &supplier.Supplier{Name: "Sotrac", ContactPerson: "M. Ndiaye", Email: "contact@sotrac.sn"},
	})

	assert.Equal(t, "Sotrac", doc.Party)
	assert.Equal(t, []string{"Contact : M. Ndiaye", "E-mail : contact@sotrac.sn"}, doc.Details)
	assert.Empty(t, doc.Rows)
}

func TestRenderer_Render(t *testing.T) {
	r := statement.NewRenderer("Ardoise", money.NewFormatter(language.French, "FCFA"))

	doc := &statement.Document{
		Title:     "Relevé de compte débiteur",
		Party:     "Awa Diop",
		Total:     dec("1234567.5"),
		Paid:      dec("0"),
		Remaining: dec("1234567.5"),
	}

	for i := 0; i < 60; i++ {
		doc.Rows = append(doc.Rows, statement.Row{
			Date:        time.Date(2025, 1, 1+i%28, 0, 0, 0, 0, time.UTC),
			Description: "Livraison de ciment, fer à béton et gravier pour le chantier numéro 12",
			Amount:      dec("20576.13"),
			Remaining:   dec("20576.13"),
			Status:      balance.StatusOutstanding,
		})
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, doc))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "%%EOF")
}

func TestRenderer_RenderEmpty(t *testing.T) {
	r := statement.NewRenderer("Ardoise", money.NewFormatter(language.English, ""))

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, &statement.Document{Title: "Statement", Party: "Nobody"}))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
