package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ardoise/internal/money"
)

type partyState int

const (
	partyStateBrowse partyState = iota
	partyStateSearch
	partyStateCreate
	partyStateAccount
)

// PartyModel lists debtors or suppliers with their balances.
type PartyModel struct {
	CommonModel
	source PartySource
	fmtr   *money.Formatter

	state   partyState
	table   table.Model
	parties []Party
	search  textinput.Model
	query   string

	form *huh.Form
	save func(ctx context.Context) error

	account      *Account
	accountTable table.Model

	loading bool
	err     error
	status  string
}

func NewPartyModel(source PartySource, fmtr *money.Formatter) PartyModel {
	search := textinput.New()
	search.Placeholder = "nom, entreprise ou téléphone"
	search.Prompt = "/ "
	search.CharLimit = 100

	return PartyModel{
		source: source,
		fmtr:   fmtr,
		table: newTable([]table.Column{
			{Title: "Nom", Width: 26},
			{Title: "Contact", Width: 20},
			{Title: "Téléphone", Width: 15},
			{Title: "Total", Width: 14},
			{Title: "Payé", Width: 14},
			{Title: "Reste", Width: 14},
		}, 15),
		accountTable: newTable([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Description", Width: 30},
			{Title: "Montant", Width: 14},
			{Title: "Payé", Width: 14},
			{Title: "Reste", Width: 14},
			{Title: "Statut", Width: 9},
		}, 15),
		search:  search,
		loading: true,
	}
}

func (m PartyModel) Title() string { return m.source.Title() }

func (m PartyModel) ShortHelp() string {
	switch m.state {
	case partyStateSearch:
		return "Entrée: rechercher | Esc: annuler"
	case partyStateCreate:
		return "Naviguer dans le formulaire | Esc: annuler"
	case partyStateAccount:
		return "Esc: retour à la liste"
	}

	return "Esc: retour | /: rechercher | n: ajouter | Entrée: relevé | r: actualiser"
}

func (m PartyModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PartyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case partiesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.parties = msg.parties
		m.refreshTable()

		return m, nil

	case accountMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Erreur : %v", msg.err)
			return m, nil
		}

		m.account = msg.account
		m.refreshAccount()
		m.state = partyStateAccount
		m.table.Blur()
		m.accountTable.Focus()

		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Erreur à l'enregistrement : %v", msg.err)
		} else {
			m.status = "Enregistré."
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))
		m.accountTable.SetHeight(max(msg.Height-14, 5))

		return m, nil
	}

	switch m.state {
	case partyStateSearch:
		return m.updateSearch(msg)
	case partyStateCreate:
		return m.updateCreate(msg)
	case partyStateAccount:
		return m.updateAccount(msg)
	}

	return m.updateBrowse(msg)
}

func (m PartyModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			if m.query != "" {
				m.query = ""
				m.search.SetValue("")

				return m, m.loadCmd()
			}

			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "/":
			m.state = partyStateSearch
			m.table.Blur()
			cmd := m.search.Focus()

			return m, cmd
		case "n":
			m.form, m.save = m.source.NewForm()
			m.state = partyStateCreate
			m.status = ""
			m.table.Blur()

			return m, m.form.Init()
		case "enter":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.parties) {
				return m, nil
			}

			return m, m.accountCmd(m.parties[idx].ID)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PartyModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue(m.query)
			m.search.Blur()
			m.state = partyStateBrowse
			m.table.Focus()

			return m, nil
		case tea.KeyEnter:
			m.query = m.search.Value()
			m.search.Blur()
			m.state = partyStateBrowse
			m.table.Focus()
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m PartyModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		save := m.saveCmd()
		m.closeForm()

		return m, save
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}

	return m, cmd
}

func (m PartyModel) updateAccount(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = partyStateBrowse
		m.account = nil
		m.accountTable.Blur()
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.accountTable, cmd = m.accountTable.Update(msg)

	return m, cmd
}

func (m *PartyModel) closeForm() {
	m.form = nil
	m.save = nil
	m.state = partyStateBrowse
	m.table.Focus()
}

func (m PartyModel) View() string {
	pad := lipgloss.NewStyle().Padding(1)

	if m.loading {
		return pad.Render("Chargement...")
	}

	if m.err != nil {
		return pad.Render(fmt.Sprintf("Erreur : %v", m.err))
	}

	if m.state == partyStateAccount && m.account != nil {
		return pad.Render(m.accountView())
	}

	header := activeStyle(m.Title())
	if m.query != "" {
		header += faint(fmt.Sprintf("  recherche : %q", m.query))
	}

	parts := []string{header}
	if m.state == partyStateSearch {
		parts = append(parts, m.search.View())
	}

	if len(m.parties) == 0 {
		parts = append(parts, "", faint("Aucun résultat."))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, append(parts, boxed(m.table.View()))...)

	if m.state == partyStateCreate && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Ajouter\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faint(m.status) + "\n" + content
	}

	return pad.Render(content + "\n" + faint(m.ShortHelp()))
}

func (m PartyModel) accountView() string {
	acc := m.account

	totals := fmt.Sprintf("Total : %s   Payé : %s   Reste : %s",
		m.fmtr.Format(acc.Total), m.fmtr.Format(acc.Paid), m.fmtr.Format(acc.Remaining))

	body := boxed(m.accountTable.View())
	if len(acc.Entries) == 0 {
		body = faint("Aucune opération enregistrée.")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		activeStyle(acc.Name), "", body, "", totals, "", faint(m.ShortHelp()),
	)
}

func (m *PartyModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.parties))
	for _, p := range m.parties {
		rows = append(rows, table.Row{
			p.Name,
			p.Contact,
			p.Phone,
			m.fmtr.Number(p.Total),
			m.fmtr.Number(p.Paid),
			m.fmtr.Number(p.Remaining),
		})
	}

	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *PartyModel) refreshAccount() {
	rows := make([]table.Row, 0, len(m.account.Entries))
	for _, e := range m.account.Entries {
		rows = append(rows, table.Row{
			FormatDate(e.Date),
			e.Description,
			m.fmtr.Number(e.Amount),
			m.fmtr.Number(e.Paid),
			m.fmtr.Number(e.Remaining),
			e.Status.Label(),
		})
	}

	m.accountTable.SetRows(rows)
	m.accountTable.SetCursor(0)
}

// Messages

type partiesMsg struct {
	parties []Party
	err     error
}

func (m PartyModel) loadCmd() tea.Cmd {
	source, query := m.source, m.query

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		parties, err := source.List(ctx, query)

		return partiesMsg{parties: parties, err: err}
	}
}

type accountMsg struct {
	account *Account
	err     error
}

func (m PartyModel) accountCmd(id int64) tea.Cmd {
	source := m.source

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		acc, err := source.Account(ctx, id)

		return accountMsg{account: acc, err: err}
	}
}

type savedMsg struct {
	err error
}

func (m PartyModel) saveCmd() tea.Cmd {
	save := m.save
	if save == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return savedMsg{err: save(ctx)}
	}
}
