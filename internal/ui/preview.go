// Package ui provides the optional interactive rename preview.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todo-rename/internal/renamer"
)

// ErrNotTTY is returned when the preview is started without a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

// BatchFunc runs a rename batch. The preview calls it once in dry-run form
// to build the plan and once for real when the user confirms.
type BatchFunc func(ctx context.Context) (*renamer.Summary, error)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginLeft(1)

	targetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginLeft(1).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			MarginLeft(1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			MarginLeft(1)

	countsStyle = lipgloss.NewStyle().
			Bold(true).
			MarginLeft(1).
			MarginBottom(1)
)

type phase int

const (
	phasePlanning phase = iota
	phaseReady
	phaseApplying
	phaseDone
	phaseCancelled
)

type planMsg struct {
	summary *renamer.Summary
	err     error
}

type appliedMsg struct {
	summary *renamer.Summary
	err     error
}

type previewModel struct {
	ctx    context.Context
	target string
	plan   BatchFunc
	apply  BatchFunc

	table   table.Model
	phase   phase
	planned *renamer.Summary
	applied *renamer.Summary
	err     error
}

func newPreviewModel(ctx context.Context, target string, plan, apply BatchFunc) *previewModel {
	columns := []table.Column{
		{Title: "Status", Width: 12},
		{Title: "File", Width: 32},
		{Title: "New name", Width: 32},
		{Title: "Note", Width: 30},
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
		Bold(true).
		Foreground(lipgloss.Color("12"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return &previewModel{
		ctx:    ctx,
		target: target,
		plan:   plan,
		apply:  apply,
		table:  t,
	}
}

func (m *previewModel) Init() tea.Cmd {
	return m.runPlan()
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		if h := msg.Height - 10; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case planMsg:
		m.err = msg.err
		m.planned = msg.summary
		m.phase = phaseReady
		m.table.SetRows(rowsFor(msg.summary))
		return m, nil

	case appliedMsg:
		m.err = msg.err
		m.applied = msg.summary
		m.phase = phaseDone
		m.table.SetRows(rowsFor(msg.summary))
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *previewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		if m.phase != phaseDone {
			m.phase = phaseCancelled
		}
		return m, tea.Quit
	}

	switch m.phase {
	case phaseDone:
		return m, tea.Quit
	case phaseApplying, phasePlanning:
		return m, nil
	}

	switch key {
	case "q", "esc", "n":
		m.phase = phaseCancelled
		return m, tea.Quit
	case "y", "enter":
		if !m.canApply() {
			return m, nil
		}
		m.phase = phaseApplying
		return m, m.runApply()
	case "r":
		m.phase = phasePlanning
		return m, m.runPlan()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *previewModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("todo-rename preview"))
	b.WriteString(" ")
	b.WriteString(targetStyle.Render(m.target))
	b.WriteString("\n\n")

	switch m.phase {
	case phasePlanning:
		b.WriteString(countsStyle.Render("Scanning..."))
		b.WriteString("\n")
		return b.String()
	case phaseCancelled:
		b.WriteString(countsStyle.Render("Cancelled, nothing renamed."))
		b.WriteString("\n")
		return b.String()
	}

	shown := m.planned
	if m.phase == phaseDone {
		shown = m.applied
	}
	b.WriteString(countsStyle.Render(countsLine(shown, m.phase == phaseDone)))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	case m.phase == phaseDone && m.applied != nil && m.applied.Failed == 0:
		b.WriteString(successStyle.Render("Done."))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m *previewModel) helpLine() string {
	switch m.phase {
	case phaseApplying:
		return "renaming..."
	case phaseDone:
		return "press any key to exit"
	}
	if !m.canApply() {
		return "↑/↓: navigate • r: rescan • q/esc: quit"
	}
	return "↑/↓: navigate • y/enter: apply • r: rescan • q/esc: cancel"
}

// canApply reports whether the current plan has renames to perform.
func (m *previewModel) canApply() bool {
	return m.err == nil && m.planned != nil && len(m.planned.Planned()) > 0
}

func (m *previewModel) runPlan() tea.Cmd {
	ctx, plan := m.ctx, m.plan
	return func() tea.Msg {
		summary, err := plan(ctx)
		return planMsg{summary: summary, err: err}
	}
}

func (m *previewModel) runApply() tea.Cmd {
	ctx, apply := m.ctx, m.apply
	return func() tea.Msg {
		summary, err := apply(ctx)
		return appliedMsg{summary: summary, err: err}
	}
}

func countsLine(s *renamer.Summary, applied bool) string {
	if s == nil {
		return "No files."
	}
	verb := "to rename"
	if applied {
		verb = "renamed"
	}
	return fmt.Sprintf("%d %s • %d skipped • %d failed", s.Renamed, verb, s.Skipped, s.Failed)
}

func rowsFor(s *renamer.Summary) []table.Row {
	if s == nil {
		return nil
	}
	rows := make([]table.Row, 0, len(s.Results))
	for _, r := range s.Results {
		status := r.Status.String()
		if r.Status == renamer.StatusRenamed && r.DryRun {
			status = "rename"
		}
		target := ""
		if r.Target != "" && r.Status != renamer.StatusSkipped {
			target = filepath.Base(r.Target)
		}
		note := ""
		if r.Reason != renamer.ReasonNone {
			note = r.Reason.Description()
		}
		rows = append(rows, table.Row{status, filepath.Base(r.Path), target, note})
	}
	return rows
}

// RunPreview shows the dry-run plan for target and applies it when the
// user confirms. It returns the applied summary, or nil if the user
// cancelled.
func RunPreview(ctx context.Context, target string, plan, apply BatchFunc) (*renamer.Summary, error) {
	if !IsTTY(os.Stdout) {
		return nil, ErrNotTTY
	}

	program := tea.NewProgram(
		newPreviewModel(ctx, target, plan, apply),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	final, err := program.Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(*previewModel)
	if !ok {
		return nil, nil
	}
	if m.applied != nil {
		return m.applied, m.err
	}
	return nil, m.err
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
