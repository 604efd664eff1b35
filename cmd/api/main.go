package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/ardoise/internal/config"
	"github.com/MrJamesThe3rd/ardoise/internal/dashboard"
	"github.com/MrJamesThe3rd/ardoise/internal/database"
	"github.com/MrJamesThe3rd/ardoise/internal/debtor"
	debtorStore "github.com/MrJamesThe3rd/ardoise/internal/debtor/store"
	ardoiseHttp "github.com/MrJamesThe3rd/ardoise/internal/http"
	apiHandler "github.com/MrJamesThe3rd/ardoise/internal/http/api"
	dashboardHandler "github.com/MrJamesThe3rd/ardoise/internal/http/dashboard"
	debtorHandler "github.com/MrJamesThe3rd/ardoise/internal/http/debtor"
	"github.com/MrJamesThe3rd/ardoise/internal/http/render"
	supplierHandler "github.com/MrJamesThe3rd/ardoise/internal/http/supplier"
	"github.com/MrJamesThe3rd/ardoise/internal/importer"
	"github.com/MrJamesThe3rd/ardoise/internal/logging"
	"github.com/MrJamesThe3rd/ardoise/internal/metrics"
	"github.com/MrJamesThe3rd/ardoise/internal/money"
	"github.com/MrJamesThe3rd/ardoise/internal/statement"
	"github.com/MrJamesThe3rd/ardoise/internal/supplier"
	supplierStore "github.com/MrJamesThe3rd/ardoise/internal/supplier/store"
	"github.com/MrJamesThe3rd/ardoise/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if err := database.Migrate(cfg.ConnectionString()); err != nil {
		return err
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	lang, err := language.Parse(cfg.App.Locale)
	if err != nil {
		slog.Warn("unknown locale, using French", "locale", cfg.App.Locale)
		lang = language.French
	}

	fmtr := money.NewFormatter(lang, cfg.App.Currency)

	pages, err := render.New(web.TemplatesFS, cfg.App.Name, fmtr)
	if err != nil {
		return err
	}

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("opening static assets: %w", err)
	}

	var (
		debtorService    = debtor.NewService(debtorStore.New(db))
		supplierService  = supplier.NewService(supplierStore.New(db))
		dashboardService = dashboard.NewService(debtorService, supplierService)
		importService    = importer.NewService(debtorService, supplierService)
		pdf              = statement.NewRenderer(cfg.App.Name, fmtr)
		m                = metrics.New()
	)

	var (
		dashboardH = dashboardHandler.NewHandler(dashboardService, pages)
		debtorH    = debtorHandler.NewHandler(debtorService, importService, pdf, pages, fmtr, m)
		supplierH  = supplierHandler.NewHandler(supplierService, importService, pdf, pages, fmtr, m)
		apiH       = apiHandler.NewHandler(debtorService, supplierService, dashboardService, fmtr)
	)

	router := ardoiseHttp.New(ardoiseHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Static:         static,
		Metrics:        m,
		DB:             db,
	}, dashboardH, debtorH, supplierH, apiH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	return nil
}
