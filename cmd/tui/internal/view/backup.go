package view

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/cashflow/internal/app"
	"github.com/MrJamesThe3rd/cashflow/internal/backup"
)

type backupState int

const (
	backupStateAction backupState = iota
	backupStatePath
	backupStateFilePick
	backupStateRunning
	backupStateResult
)

var backupActions = []string{"Export to file", "Restore from file"}

type BackupModel struct {
	CommonModel
	ledger *app.State

	state        backupState
	actionCursor int
	form         *huh.Form
	path         *string
	filePicker   filepicker.Model
	spinner      spinner.Model

	result string
	err    error
}

func NewBackupModel(ledger *app.State) BackupModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".json"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return BackupModel{
		ledger:     ledger,
		filePicker: fp,
		spinner:    s,
	}
}

func (m BackupModel) Title() string { return "Backup" }

func (m BackupModel) ShortHelp() string {
	switch m.state {
	case backupStateRunning:
		return "Working..."
	case backupStateResult:
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: select"
}

func (m BackupModel) Init() tea.Cmd {
	return nil
}

func (m BackupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(backupResultMsg); ok {
		m.state = backupStateResult
		m.result = result.body
		m.err = result.err

		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.handleEsc()
	}

	switch m.state {
	case backupStateAction:
		return m.updateAction(msg)
	case backupStatePath:
		return m.updatePath(msg)
	case backupStateFilePick:
		return m.updateFilePick(msg)
	case backupStateRunning:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m BackupModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case backupStatePath, backupStateFilePick:
		m.state = backupStateAction
		m.form = nil

		return m, nil
	case backupStateRunning:
		return m, nil
	}

	return m, Back
}

func (m BackupModel) updateAction(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyUp:
		if m.actionCursor > 0 {
			m.actionCursor--
		}
	case tea.KeyDown:
		if m.actionCursor < len(backupActions)-1 {
			m.actionCursor++
		}
	case tea.KeyEnter:
		if m.actionCursor == 0 {
			m.path = new(fmt.Sprintf("./cashflow-%s.json", time.Now().Format(time.DateOnly)))
			m.form = huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Key("path").
						Title("Output file").
						Description("Directory will be created if it doesn't exist").
						Value(m.path),
				),
			).WithWidth(50).WithShowHelp(false)
			m.state = backupStatePath

			return m, m.form.Init()
		}

		m.state = backupStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m BackupModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = backupStateRunning

	return m, tea.Batch(m.spinner.Tick, m.exportCmd(*m.path))
}

func (m BackupModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = backupStateRunning
		return m, tea.Batch(m.spinner.Tick, m.restoreCmd(path))
	}

	return m, cmd
}

func (m BackupModel) View() string {
	switch m.state {
	case backupStateAction:
		s := "Backup:\n\n"

		for i, action := range backupActions {
			cursor := " "
			if i == m.actionCursor {
				cursor = ">"
			}

			s += fmt.Sprintf("%s %s\n", cursor, action)
		}

		return lipgloss.NewStyle().Padding(1).Render(s)

	case backupStatePath:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case backupStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render("Select backup file:\n\n" + m.filePicker.View())

	case backupStateRunning:
		return lipgloss.NewStyle().Padding(1).Render(m.spinner.View() + " Working...")

	case backupStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
			)
		}

		header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")).Render("Done!")

		return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", m.result))
	}

	return ""
}

type backupResultMsg struct {
	body string
	err  error
}

func (m BackupModel) exportCmd(path string) tea.Cmd {
	snap := m.ledger.Snapshot()

	return func() tea.Msg {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return backupResultMsg{err: fmt.Errorf("creating directory: %w", err)}
		}

		f, err := os.Create(path)
		if err != nil {
			return backupResultMsg{err: fmt.Errorf("creating file: %w", err)}
		}
		defer f.Close()

		if err := backup.Export(f, snap); err != nil {
			return backupResultMsg{err: err}
		}

		return backupResultMsg{body: fmt.Sprintf(
			"Wrote %d transactions and %d categories to %s",
			len(snap.Transactions), len(snap.Categories), path,
		)}
	}
}

func (m BackupModel) restoreCmd(path string) tea.Cmd {
	ledger := m.ledger

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return backupResultMsg{err: fmt.Errorf("opening file: %w", err)}
		}
		defer f.Close()

		snap, err := backup.Import(f)
		if err != nil {
			return backupResultMsg{err: err}
		}

		ctx, cancel := StoreCtx()
		defer cancel()

		res := ledger.Restore(ctx, snap)

		return backupResultMsg{body: fmt.Sprintf(
			"Restored %d transactions and %d categories from %s",
			res.Transactions, res.Categories, path,
		)}
	}
}
