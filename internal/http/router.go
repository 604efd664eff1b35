package http

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/ardoise/internal/http/api"
	"github.com/MrJamesThe3rd/ardoise/internal/http/dashboard"
	"github.com/MrJamesThe3rd/ardoise/internal/http/debtor"
	"github.com/MrJamesThe3rd/ardoise/internal/http/supplier"
	"github.com/MrJamesThe3rd/ardoise/internal/metrics"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	AllowedOrigins []string
	Static         fs.FS
	Metrics        *metrics.Metrics
	DB             Pinger
}

func New(
	opts Options,
	dashboardH *dashboard.Handler,
	debtorH *debtor.Handler,
	supplierH *supplier.Handler,
	apiV1 *api.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RealIP)
	router.Use(requestID)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)
	router.Use(opts.Metrics.Middleware)

	router.Get("/healthz", health(opts.DB))
	router.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())

	router.Group(func(r chi.Router) {
		r.Use(securityHeaders)

		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(opts.Static))))

		dashboardH.Routes(r)
		r.Route("/debiteurs", debtorH.Routes)
		r.Route("/dettes", debtorH.DebtRoutes)
		r.Route("/fournisseurs", supplierH.Routes)
		r.Route("/credits", supplierH.CreditRoutes)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
			ExposedHeaders: []string{requestIDHeader},
			MaxAge:         300,
		}))
		r.Use(middleware.SetHeader("X-Content-Type-Options", "nosniff"))

		apiV1.Routes(r)
	})

	return router
}

func health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			slog.ErrorContext(r.Context(), "health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)

			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}
