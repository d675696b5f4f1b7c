package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/cashflow/internal/app"
)

type categoriesState int

const (
	categoriesStateList categoriesState = iota
	categoriesStateAdding
)

// categoryItem wraps a label to implement list.Item.
type categoryItem struct {
	label string
	count int
}

func (i categoryItem) Title() string { return i.label }

func (i categoryItem) Description() string {
	if i.count == 1 {
		return "1 transaction"
	}

	return fmt.Sprintf("%d transactions", i.count)
}

func (i categoryItem) FilterValue() string { return i.label }

type CategoriesModel struct {
	CommonModel
	ledger *app.State

	state  categoriesState
	list   list.Model
	form   *huh.Form
	label  *string
	status string
}

func NewCategoriesModel(ledger *app.State) CategoriesModel {
	l := list.New([]list.Item{}, categoryItemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	m := CategoriesModel{
		ledger: ledger,
		list:   l,
	}
	m.refreshListItems()

	return m
}

func (m CategoriesModel) Title() string { return "Manage Categories" }

func (m CategoriesModel) ShortHelp() string {
	if m.state == categoriesStateAdding {
		return "Esc: cancel | Enter: add"
	}

	return "Esc: back | a: add | x: delete | /: filter"
}

func (m CategoriesModel) Init() tea.Cmd {
	return nil
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case categoriesChangedMsg:
		m.status = msg.status
		m.refreshListItems()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)

		return m, nil
	}

	switch m.state {
	case categoriesStateList:
		return m.updateList(msg)
	case categoriesStateAdding:
		return m.updateAdding(msg)
	}

	return m, nil
}

func (m CategoriesModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				break // let the list clear the filter
			}

			return m, Back
		case "a":
			return m.startAdding()
		case "x":
			selected, ok := m.list.SelectedItem().(categoryItem)
			if !ok {
				return m, nil
			}

			return m, m.deleteCmd(selected.label)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m CategoriesModel) startAdding() (tea.Model, tea.Cmd) {
	m.label = new(string)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("label").
				Title("New category").
				Value(m.label).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("label cannot be empty")
					}

					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = categoriesStateAdding

	return m, m.form.Init()
}

func (m CategoriesModel) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = categoriesStateList
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	label := strings.TrimSpace(*m.label)
	m.state = categoriesStateList
	m.form = nil

	return m, m.addCmd(label)
}

func (m CategoriesModel) View() string {
	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	if m.state == categoriesStateAdding && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.form.View())
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())
}

func (m *CategoriesModel) refreshListItems() {
	counts := make(map[string]int)
	for _, tx := range m.ledger.AllTransactions() {
		counts[tx.Category]++
	}

	labels := m.ledger.Categories()

	items := make([]list.Item, len(labels))
	for i, l := range labels {
		items[i] = categoryItem{label: l, count: counts[l]}
	}

	m.list.SetItems(items)
}

// Messages

type categoriesChangedMsg struct {
	status string
}

func (m CategoriesModel) addCmd(label string) tea.Cmd {
	ledger := m.ledger

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if !ledger.AddCategory(ctx, label) {
			return categoriesChangedMsg{status: fmt.Sprintf("%q already exists.", label)}
		}

		return categoriesChangedMsg{status: fmt.Sprintf("Added %q.", label)}
	}
}

// deleteCmd keeps transactions tagged with label; they stay reachable through
// the ledger filter.
func (m CategoriesModel) deleteCmd(label string) tea.Cmd {
	ledger := m.ledger

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		ledger.DeleteCategory(ctx, label)

		return categoriesChangedMsg{status: fmt.Sprintf("Deleted %q.", label)}
	}
}

// categoryItemDelegate renders items in the list.
type categoryItemDelegate struct{}

func (d categoryItemDelegate) Height() int                             { return 2 }
func (d categoryItemDelegate) Spacing() int                            { return 0 }
func (d categoryItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d categoryItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(categoryItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
