package debtor_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/ardoise/internal/debtor"
	debtorHandler "github.com/MrJamesThe3rd/ardoise/internal/http/debtor"
	"github.com/MrJamesThe3rd/ardoise/internal/http/render"
	"github.com/MrJamesThe3rd/ardoise/internal/importer"
	"github.com/MrJamesThe3rd/ardoise/internal/metrics"
	"github.com/MrJamesThe3rd/ardoise/internal/money"
	"github.com/MrJamesThe3rd/ardoise/internal/statement"
	"github.com/MrJamesThe3rd/ardoise/web"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newRouter(t *testing.T, repo *debtor.MockRepository) http.Handler {
	t.Helper()

	fm := money.NewFormatter(language.French, "FCFA")

	pages, err := render.New(web.TemplatesFS, "Ardoise", fm)
	require.NoError(t, err)

	svc := debtor.NewService(repo)
	h := debtorHandler.NewHandler(
		svc,
		importer.NewService(svc, nil),
		statement.NewRenderer("Ardoise", fm),
		pages,
		fm,
		metrics.New(),
	)

	r := chi.NewRouter()
	r.Route("/debiteurs", h.Routes)
	r.Route("/dettes", h.DebtRoutes)

	return r
}

func postForm(target string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return r
}

var awa = &debtor.Debtor{ID: 1, FirstName: "Awa", LastName: "Diop", Company: "ACME", CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)}

func expectStatement(repo *debtor.MockRepository, debts []*debtor.Debt, payments []*debtor.Payment) {
	repo.EXPECT().GetDebtor(gomock.Any(), awa.ID).Return(awa, nil)
	repo.EXPECT().ListDebts(gomock.Any(), awa.ID).Return(debts, nil)
	repo.EXPECT().ListPayments(gomock.Any(), awa.ID).Return(payments, nil)
}

func debts() []*debtor.Debt {
	return []*debtor.Debt{
		{ID: 10, DebtorID: 1, Amount: dec("100.00"), Description: "Sacs de riz", DateIncurred: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 11, DebtorID: 1, Amount: dec("50.00"), Description: "Huile", DateIncurred: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
	}
}

func payments() []*debtor.Payment {
	return []*debtor.Payment{
		{ID: 1, DebtID: 10, Amount: dec("30.00")},
		{ID: 2, DebtID: 11, Amount: dec("50.00")},
	}
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := debtor.NewMockRepository(ctrl)

	repo.EXPECT().
		ListDebtors(gomock.Any(), debtor.ListFilter{Query: "acme"}).
		Return([]*debtor.Summary{{Debtor: awa, TotalDebt: dec("150.00"), TotalPaid: dec("50.00")}}, nil)

	rec := httptest.NewRecorder()
	newRouter(t, repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debiteurs/?q=acme", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Awa Diop")
	assert.Contains(t, rec.Body.String(), "100,00 FCFA")
	assert.Contains(t, rec.Body.String(), `value="acme"`)
}

func TestHandler_Detail(t *testing.T) {
	type testCase struct {
		name      string
		path      string
		setupMock func(repo *debtor.MockRepository)
		status    int
		contains  []string
	}

	tests := []testCase{
		{
			name: "OnlyOutstandingDebtsOffered",
			path: "/debiteurs/1/",
			setupMock: func(repo *debtor.MockRepository) {
				expectStatement(repo, debts(), payments())
			},
			status:   http.StatusOK,
			contains: []string{"Sacs de riz", "En cours", "Soldé", `<option value="10"`},
		},
		{
			name: "UnknownDebtor",
			path: "/debiteurs/99/",
			setupMock: func(repo *debtor.MockRepository) {
				repo.EXPECT().GetDebtor(gomock.Any(), int64(99)).Return(nil, debtor.ErrNotFound)
			},
			status: http.StatusNotFound,
		},
		{
			name:      "NonNumericID",
			path:      "/debiteurs/abc/",
			setupMock: func(*debtor.MockRepository) {},
			status:    http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := debtor.NewMockRepository(ctrl)
			tt.setupMock(repo)

			rec := httptest.NewRecorder()
			newRouter(t, repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)

			for _, s := range tt.contains {
				assert.Contains(t, rec.Body.String(), s)
			}

			if tt.status == http.StatusOK {
				assert.NotContains(t, rec.Body.String(), `<option value="11"`)
			}
		})
	}
}

func TestHandler_Pay(t *testing.T) {
	type testCase struct {
		name      string
		values    url.Values
		setupMock func(repo *debtor.MockRepository, ptx *debtor.MockPaymentTx)
		status    int
		contains  string
	}

	tests := []testCase{
		{
			name:   "Success",
			values: url.Values{"debt": {"10"}, "amount": {"80"}, "date_paid": {"2025-03-01"}, "notes": {"espèces"}},
			setupMock: func(repo *debtor.MockRepository, ptx *debtor.MockPaymentTx) {
				repo.EXPECT().BeginPayment(gomock.Any()).Return(ptx, nil)
				ptx.EXPECT().LockDebt(gomock.Any(), int64(10)).Return(debts()[0], nil)
				ptx.EXPECT().PaidOnDebt(gomock.Any(), int64(10)).Return(dec("30.00"), nil)
				ptx.EXPECT().
					CreatePayment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *debtor.Payment) error {
						assert.True(t, p.Amount.Equal(dec("80")))
						assert.Equal(t, "espèces", p.Notes)
						return nil
					})
				ptx.EXPECT().Commit().Return(nil)
				ptx.EXPECT().Rollback().Return(nil)
			},
			status: http.StatusSeeOther,
		},
		{
			name:      "SettledDebtNotSelectable",
			values:    url.Values{"debt": {"11"}, "amount": {"5"}, "date_paid": {"2025-03-01"}},
			setupMock: func(*debtor.MockRepository, *debtor.MockPaymentTx) {},
			status:    http.StatusUnprocessableEntity,
			contains:  "Sélectionnez un choix valide",
		},
		{
			name:      "InvalidAmount",
			values:    url.Values{"debt": {"10"}, "amount": {"dix"}, "date_paid": {"2025-03-01"}},
			setupMock: func(*debtor.MockRepository, *debtor.MockPaymentTx) {},
			status:    http.StatusUnprocessableEntity,
			contains:  "Saisissez un nombre.",
		},
		{
			name:   "SettledConcurrently",
			values: url.Values{"debt": {"10"}, "amount": {"5"}, "date_paid": {"2025-03-01"}},
			setupMock: func(repo *debtor.MockRepository, ptx *debtor.MockPaymentTx) {
				repo.EXPECT().BeginPayment(gomock.Any()).Return(ptx, nil)
				ptx.EXPECT().LockDebt(gomock.Any(), int64(10)).Return(debts()[0], nil)
				ptx.EXPECT().PaidOnDebt(gomock.Any(), int64(10)).Return(dec("100.00"), nil)
				ptx.EXPECT().Rollback().Return(nil)
			},
			status:   http.StatusUnprocessableEntity,
			contains: "Sélectionnez un choix valide",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := debtor.NewMockRepository(ctrl)
			ptx := debtor.NewMockPaymentTx(ctrl)

			expectStatement(repo, debts(), payments())
			tt.setupMock(repo, ptx)

			rec := httptest.NewRecorder()
			newRouter(t, repo).ServeHTTP(rec, postForm("/debiteurs/1/", tt.values))

			assert.Equal(t, tt.status, rec.Code)

			if tt.status == http.StatusSeeOther {
				assert.Equal(t, "/debiteurs/1/", rec.Header().Get("Location"))
			}

			if tt.contains != "" {
				assert.Contains(t, rec.Body.String(), tt.contains)
			}
		})
	}
}

func TestHandler_CreateDebtor(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := debtor.NewMockRepository(ctrl)

		repo.EXPECT().
			CreateDebtor(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, d *debtor.Debtor) error {
				assert.Equal(t, "Awa", d.FirstName)
				assert.Equal(t, "ACME", d.Company)
				d.ID = 7

				return nil
			})

		rec := httptest.NewRecorder()
		newRouter(t, repo).ServeHTTP(rec, postForm("/debiteurs/ajouter/", url.Values{
			"first_name": {"Awa"},
			"last_name":  {"Diop"},
			"company":    {"ACME"},
		}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/debiteurs/", rec.Header().Get("Location"))
	})

	t.Run("MissingName", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := debtor.NewMockRepository(ctrl)

		rec := httptest.NewRecorder()
		newRouter(t, repo).ServeHTTP(rec, postForm("/debiteurs/ajouter/", url.Values{"first_name": {"Awa"}}))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Ce champ est obligatoire.")
		assert.Contains(t, rec.Body.String(), `value="Awa"`)
	})
}

func TestHandler_CreateDebt(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := debtor.NewMockRepository(ctrl)

	repo.EXPECT().ListDebtors(gomock.Any(), debtor.ListFilter{}).Return([]*debtor.Summary{{Debtor: awa}}, nil)
	repo.EXPECT().GetDebtor(gomock.Any(), awa.ID).Return(awa, nil)
	repo.EXPECT().
		CreateDebt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d *debtor.Debt) error {
			assert.True(t, d.Amount.Equal(dec("1250.50")))
			assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), d.DateIncurred)
			d.ID = 3

			return nil
		})

	rec := httptest.NewRecorder()
	newRouter(t, repo).ServeHTTP(rec, postForm("/dettes/ajouter/", url.Values{
		"debtor":        {"1"},
		"amount":        {"1 250,50"},
		"description":   {"Ciment"},
		"date_incurred": {"2025-03-04"},
	}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestHandler_NewDebtPreselectsDebtor(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := debtor.NewMockRepository(ctrl)

	repo.EXPECT().ListDebtors(gomock.Any(), debtor.ListFilter{}).Return([]*debtor.Summary{{Debtor: awa}}, nil)

	rec := httptest.NewRecorder()
	newRouter(t, repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dettes/ajouter/?debiteur=1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<option value="1" selected>`)
}

func TestHandler_StatementPDF(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := debtor.NewMockRepository(ctrl)

	expectStatement(repo, debts(), payments())

	rec := httptest.NewRecorder()
	newRouter(t, repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debiteurs/1/releve.pdf", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func multipartCSV(t *testing.T, target, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "contacts.csv")
	require.NoError(t, err)

	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, target, &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	return r
}

func TestHandler_Import(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := debtor.NewMockRepository(ctrl)
		itx := debtor.NewMockImportTx(ctrl)

		repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
		itx.EXPECT().CreateDebtors(gomock.Any(), gomock.Len(2)).Return(nil)
		itx.EXPECT().Commit().Return(nil)
		itx.EXPECT().Rollback().Return(nil)

		rec := httptest.NewRecorder()
		newRouter(t, repo).ServeHTTP(rec, multipartCSV(t, "/debiteurs/importer/", "Prénom;Nom\nAwa;Diop\nMoussa;Ba\n"))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("MissingColumn", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := debtor.NewMockRepository(ctrl)

		rec := httptest.NewRecorder()
		newRouter(t, repo).ServeHTTP(rec, multipartCSV(t, "/debiteurs/importer/", "Prénom\nAwa\n"))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Fichier refusé")
	})
}
