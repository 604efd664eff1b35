package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ardoise/internal/dashboard"
	"github.com/MrJamesThe3rd/ardoise/internal/money"
)

const barWidth = 30

type DashboardModel struct {
	CommonModel
	svc  *dashboard.Service
	fmtr *money.Formatter

	overview *dashboard.Overview
	loading  bool
	err      error
	spinner  spinner.Model
}

func NewDashboardModel(svc *dashboard.Service, fmtr *money.Formatter) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return DashboardModel{svc: svc, fmtr: fmtr, loading: true, spinner: s}
}

func (m DashboardModel) Title() string     { return "Tableau de bord" }
func (m DashboardModel) ShortHelp() string { return "Esc: retour | r: actualiser" }

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewMsg:
		m.loading = false
		m.overview, m.err = msg.overview, msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, Back
		case "r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m DashboardModel) View() string {
	pad := lipgloss.NewStyle().Padding(1)

	if m.loading {
		return pad.Render(m.spinner.View() + " Chargement...")
	}

	if m.err != nil {
		return pad.Render(fmt.Sprintf("Erreur : %v", m.err))
	}

	ov := m.overview

	totals := lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("Total des dettes", m.fmtr.Format(ov.TotalDebt)),
		m.card("Total des crédits", m.fmtr.Format(ov.TotalCredit)),
		m.card("Solde net", m.fmtr.Format(ov.NetBalance)),
	)

	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		m.chart("Top 5 débiteurs", ov.TopDebtors, "203"),
		m.chart("Top 5 fournisseurs", ov.TopSuppliers, "78"),
	)

	return pad.Render(lipgloss.JoinVertical(lipgloss.Left,
		activeStyle(m.Title()), "", totals, "", charts, "", faint(m.ShortHelp()),
	))
}

func (m DashboardModel) card(label, value string) string {
	return lipgloss.NewStyle().
		Padding(0, 2).
		MarginRight(1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(faint(label) + "\n" + lipgloss.NewStyle().Bold(true).Render(value))
}

func (m DashboardModel) chart(title string, bars []dashboard.Bar, color string) string {
	var b strings.Builder

	b.WriteString(title + "\n\n")

	if len(bars) == 0 {
		b.WriteString(faint("Aucun solde en cours"))
	}

	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(color))

	for _, bar := range bars {
		n := max(bar.Percent, 0) * barWidth / 100
		if n == 0 && bar.Balance.IsPositive() {
			n = 1
		}

		fmt.Fprintf(&b, "%-20.20s %s%s %s\n",
			bar.Name,
			fill.Render(strings.Repeat("█", n)),
			strings.Repeat(" ", barWidth-n),
			m.fmtr.Format(bar.Balance),
		)
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		MarginRight(1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(b.String())
}

type overviewMsg struct {
	overview *dashboard.Overview
	err      error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ov, err := m.svc.Overview(ctx)

		return overviewMsg{overview: ov, err: err}
	}
}
