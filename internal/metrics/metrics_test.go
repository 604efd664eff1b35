package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ardoise/internal/metrics"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/debiteurs/{id}/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/debiteurs/1/", "/debiteurs/2/"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP http_requests_total HTTP requests by route pattern, method and status code.
# TYPE http_requests_total counter
http_requests_total{method="GET",route="/debiteurs/{id}/",status="404"} 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "http_requests_total"))
}

func TestRecordCreated(t *testing.T) {
	m := metrics.New()

	m.RecordCreated(metrics.KindDebtor, 3)
	m.RecordCreated(metrics.KindDebtor, 0)
	m.RecordPayment(metrics.SideSupplier)

	var nilMetrics *metrics.Metrics
	nilMetrics.RecordCreated(metrics.KindDebt, 1)
	nilMetrics.RecordPayment(metrics.SideDebtor)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `ledger_records_created_total{kind="debtor"} 3`)
	assert.Contains(t, body, `ledger_payments_recorded_total{side="supplier"} 1`)
}
