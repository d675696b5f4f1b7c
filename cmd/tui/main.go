package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/cashflow/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/cashflow/internal/amount"
	"github.com/MrJamesThe3rd/cashflow/internal/app"
	"github.com/MrJamesThe3rd/cashflow/internal/config"
	"github.com/MrJamesThe3rd/cashflow/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/cashflow/internal/matching/store"
	"github.com/MrJamesThe3rd/cashflow/internal/persist"
	"github.com/MrJamesThe3rd/cashflow/internal/slot/store"
)

type model struct {
	appName         string
	ledger          *app.State
	matchingService *matching.Service
	formatter       *amount.Formatter

	currentView View
	size        tea.WindowSizeMsg

	ledgerView     view.LedgerModel
	categoriesView view.CategoriesModel
	backupView     view.BackupModel
}

type View int

const (
	ViewMenu       View = 0
	ViewLedger     View = 1
	ViewCategories View = 2
	ViewBackup     View = 3
)

func initialModel(cfg *config.Config, ledger *app.State) model {
	formatter := amount.NewFormatter(cfg.App.Locale)
	matchSvc := matching.NewService(matchingStore.New(ledger))

	return model{
		appName:         cfg.App.Name,
		ledger:          ledger,
		matchingService: matchSvc,
		formatter:       formatter,
		currentView:     ViewMenu,
		ledgerView:      view.NewLedgerModel(ledger, matchSvc, formatter),
		categoriesView:  view.NewCategoriesModel(ledger),
		backupView:      view.NewBackupModel(ledger),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// enter rebuilds a screen so it reflects the current state and replays the
// last window size to it.
func (m model) enter(v View) (tea.Model, tea.Cmd) {
	m.currentView = v

	switch v {
	case ViewLedger:
		m.ledgerView = view.NewLedgerModel(m.ledger, m.matchingService, m.formatter)
	case ViewCategories:
		m.categoriesView = view.NewCategoriesModel(m.ledger)
	case ViewBackup:
		m.backupView = view.NewBackupModel(m.ledger)
	}

	if m.size.Width == 0 {
		return m, nil
	}

	size := m.size

	return m, func() tea.Msg { return size }
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.enter(ViewLedger)
			case "2":
				return m.enter(ViewCategories)
			case "3":
				return m.enter(ViewBackup)
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewCategories:
		var newModel tea.Model
		newModel, cmd = m.categoriesView.Update(msg)
		m.categoriesView = newModel.(view.CategoriesModel)
	case ViewBackup:
		var newModel tea.Model
		newModel, cmd = m.backupView.Update(msg)
		m.backupView = newModel.(view.BackupModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		sum := m.ledger.Summary()
		_, _, balance := sum.Formatted(m.formatter)

		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"Balance: " + balance + "\n\n" +
				"1. Ledger\n" +
				"2. Categories\n" +
				"3. Backup\n\n" +
				"q. Quit",
		)
	case ViewLedger:
		return view.Frame(m.ledgerView)
	case ViewCategories:
		return view.Frame(m.categoriesView)
	case ViewBackup:
		return view.Frame(m.backupView)
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slots, closeStore, err := store.Open(cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}

	ledger := app.New(context.Background(), persist.New(slots, cfg.Store.Categories))

	p := tea.NewProgram(initialModel(cfg, ledger), tea.WithAltScreen())

	_, runErr := p.Run()

	if err := closeStore(); err != nil {
		slog.Error("failed to close store", "error", err)
	}

	if runErr != nil {
		slog.Error("failed to run TUI", "error", runErr)
		os.Exit(1)
	}
}
