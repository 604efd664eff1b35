package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/ardoise/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/ardoise/internal/config"
	"github.com/MrJamesThe3rd/ardoise/internal/dashboard"
	"github.com/MrJamesThe3rd/ardoise/internal/database"
	"github.com/MrJamesThe3rd/ardoise/internal/debtor"
	debtorStore "github.com/MrJamesThe3rd/ardoise/internal/debtor/store"
	"github.com/MrJamesThe3rd/ardoise/internal/logging"
	"github.com/MrJamesThe3rd/ardoise/internal/money"
	"github.com/MrJamesThe3rd/ardoise/internal/supplier"
	supplierStore "github.com/MrJamesThe3rd/ardoise/internal/supplier/store"
)

type model struct {
	appName string
	fmtr    *money.Formatter

	dashboardService *dashboard.Service
	debtors          view.DebtorSource
	suppliers        view.SupplierSource

	currentView View

	dashboardView view.DashboardModel
	debtorView    view.PartyModel
	supplierView  view.PartyModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewDebtors   View = 2
	ViewSuppliers View = 3
)

func initialModel() model {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Keep the terminal for the UI.
	logging.Setup("warn", cfg.Log.Format)

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	lang, err := language.Parse(cfg.App.Locale)
	if err != nil {
		lang = language.French
	}

	var (
		fmtr             = money.NewFormatter(lang, cfg.App.Currency)
		debtorService    = debtor.NewService(debtorStore.New(db))
		supplierService  = supplier.NewService(supplierStore.New(db))
		dashboardService = dashboard.NewService(debtorService, supplierService)
	)

	return model{
		appName:          cfg.App.Name,
		fmtr:             fmtr,
		dashboardService: dashboardService,
		debtors:          view.NewDebtorSource(debtorService),
		suppliers:        view.NewSupplierSource(supplierService),
		currentView:      ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.dashboardService, m.fmtr)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewDebtors
				m.debtorView = view.NewPartyModel(m.debtors, m.fmtr)

				return m, m.debtorView.Init()
			case "3":
				m.currentView = ViewSuppliers
				m.supplierView = view.NewPartyModel(m.suppliers, m.fmtr)

				return m, m.supplierView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewDebtors:
		var newModel tea.Model
		newModel, cmd = m.debtorView.Update(msg)
		m.debtorView = newModel.(view.PartyModel)
	case ViewSuppliers:
		var newModel tea.Model
		newModel, cmd = m.supplierView.Update(msg)
		m.supplierView = newModel.(view.PartyModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Tableau de bord\n" +
				"2. Débiteurs\n" +
				"3. Fournisseurs\n\n" +
				"q. Quitter",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewDebtors:
		return m.debtorView.View()
	case ViewSuppliers:
		return m.supplierView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
