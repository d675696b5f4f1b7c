package view

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/cashflow/internal/amount"
	"github.com/MrJamesThe3rd/cashflow/internal/app"
	"github.com/MrJamesThe3rd/cashflow/internal/matching"
	"github.com/MrJamesThe3rd/cashflow/internal/summary"
	"github.com/MrJamesThe3rd/cashflow/internal/transaction"
)

type ledgerState int

const (
	ledgerStateBrowse ledgerState = iota
	ledgerStateForm
)

var (
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type LedgerModel struct {
	CommonModel
	ledger          *app.State
	matchingService *matching.Service
	formatter       *amount.Formatter

	state ledgerState
	table table.Model
	txs   []*transaction.Transaction
	sum   summary.Summary

	form    *huh.Form
	fields  *txFields
	editing *transaction.Transaction
	status  string
}

func NewLedgerModel(ledger *app.State, matchSvc *matching.Service, formatter *amount.Formatter) LedgerModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Category", Width: 16},
		{Title: "Amount", Width: 14},
		{Title: "Description", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := LedgerModel{
		ledger:          ledger,
		matchingService: matchSvc,
		formatter:       formatter,
		table:           t,
	}
	m.refresh()

	return m
}

func (m LedgerModel) Title() string { return "Ledger" }

func (m LedgerModel) ShortHelp() string {
	if m.state == ledgerStateForm {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | e: edit | x: delete | f: category filter"
}

func (m LedgerModel) Init() tea.Cmd {
	return nil
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerChangedMsg:
		m.status = msg.status
		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil
	}

	switch m.state {
	case ledgerStateBrowse:
		return m.updateBrowse(msg)
	case ledgerStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m LedgerModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.status = ""
			m.refresh()

			return m, nil
		case "a":
			return m.openForm(nil)
		case "e", "enter":
			tx := m.selected()
			if tx == nil {
				return m, nil
			}

			return m.openForm(tx)
		case "x":
			tx := m.selected()
			if tx == nil {
				return m, nil
			}

			return m, m.deleteCmd(tx.ID)
		case "f":
			m.ledger.SelectCategoryFilter(nextFilter(m.ledger.Categories(), m.ledger.SelectedCategory()))
			m.status = ""
			m.refresh()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

// nextFilter cycles "all" -> each category -> "all". A selection that is no
// longer registered goes back to "all".
func nextFilter(categories []string, current string) string {
	options := append([]string{""}, categories...)

	idx := slices.Index(options, current)

	return options[(idx+1)%len(options)]
}

func (m LedgerModel) openForm(tx *transaction.Transaction) (tea.Model, tea.Cmd) {
	m.editing = tx
	m.fields = newTxFields(tx, time.Now())
	m.form = newTxForm(m.fields, m.ledger.Categories(), m.suggest)
	m.state = ledgerStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m LedgerModel) suggest(description string) string {
	ctx, cancel := StoreCtx()
	defer cancel()

	category, err := m.matchingService.Suggest(ctx, description)
	if err != nil {
		return ""
	}

	return category
}

func (m LedgerModel) closeForm() LedgerModel {
	m.state = ledgerStateBrowse
	m.form = nil
	m.fields = nil
	m.editing = nil
	m.table.Focus()

	return m
}

func (m LedgerModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m.closeForm(), nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	save := m.saveCmd(m.fields, m.editing)

	return m.closeForm(), save
}

func (m LedgerModel) View() string {
	header := fmt.Sprintf("Filter: [f] %s", activeStyle(filterLabel(m.ledger.SelectedCategory())))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.summaryView(),
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == ledgerStateForm && m.form != nil {
		title := "Add Transaction"
		if m.editing != nil {
			title = "Edit Transaction"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m LedgerModel) summaryView() string {
	income, expense, balance := m.sum.Formatted(m.formatter)

	balanceStyle := incomeStyle
	if m.sum.Balance < 0 {
		balanceStyle = expenseStyle
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		MarginBottom(1).
		Render(fmt.Sprintf(
			"Income: %s  |  Expense: %s  |  Balance: %s",
			incomeStyle.Render(income),
			expenseStyle.Render(expense),
			balanceStyle.Bold(true).Render(balance),
		))
}

func filterLabel(category string) string {
	if category == "" {
		return "All"
	}

	return category
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m LedgerModel) selected() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	return m.txs[idx]
}

func (m *LedgerModel) refresh() {
	m.txs, m.sum = m.ledger.View()

	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		amt := m.formatter.Format(tx.Amount)
		if tx.Type == transaction.TypeExpense {
			amt = "-" + amt
		}

		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Type),
			tx.Category,
			amt,
			tx.Description,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Messages

type ledgerChangedMsg struct {
	status string
}

func (m LedgerModel) saveCmd(fields *txFields, editing *transaction.Transaction) tea.Cmd {
	ledger := m.ledger

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if editing == nil {
			params, err := fields.params()
			if err != nil {
				return ledgerChangedMsg{status: fmt.Sprintf("Error: %v", err)}
			}

			ledger.AddTransaction(ctx, params)

			return ledgerChangedMsg{status: "Added."}
		}

		if err := fields.apply(editing); err != nil {
			return ledgerChangedMsg{status: fmt.Sprintf("Error: %v", err)}
		}

		ledger.EditTransaction(ctx, editing)

		return ledgerChangedMsg{status: "Saved."}
	}
}

func (m LedgerModel) deleteCmd(id string) tea.Cmd {
	ledger := m.ledger

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		ledger.DeleteTransaction(ctx, id)

		return ledgerChangedMsg{status: "Deleted."}
	}
}
