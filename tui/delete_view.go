// ABOUTME: Delete confirmation view for TUI
// ABOUTME: Confirms and deletes customers or deals; customer deletes cascade to children
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// deleteTarget is the record awaiting confirmation.
type deleteTarget struct {
	kind     string // "customer" or "deal"
	id       int64
	name     string
	returnTo ViewMode
}

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("9")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

func (m Model) renderConfirmDeleteView() string {
	if m.pending == nil {
		return "Nothing to delete"
	}
	p := m.pending

	title := warningStyle.Render("⚠  DELETE CONFIRMATION  ⚠")
	message := fmt.Sprintf("Are you sure you want to delete this %s?", p.kind)
	entityInfo := fmt.Sprintf("\n%s: %s\n", strings.ToUpper(p.kind), p.name)
	warning := "\nThis action cannot be undone!"
	if p.kind == "customer" {
		warning = "\nIts contacts, deals, and activities are deleted too.\nThis action cannot be undone!"
	}

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		confirmButtonStyle.Render("Yes, Delete (y)"),
		cancelButtonStyle.Render("Cancel (n/esc)"),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		message,
		entityInfo,
		warning,
		"",
		buttons,
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		confirmBoxStyle.Render(content),
	)
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.pending == nil {
			m.viewMode = ViewList
			return m, nil
		}
		target := *m.pending
		m.pending = nil
		return m, m.performDelete(target)
	case "n", "N", "esc":
		if m.pending != nil {
			m.viewMode = m.pending.returnTo
		} else {
			m.viewMode = ViewList
		}
		m.pending = nil
	}

	return m, nil
}

func (m Model) performDelete(target deleteTarget) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		var err error
		switch target.kind {
		case "customer":
			err = store.Customers.Delete(ctx, target.id)
		case "deal":
			err = store.Deals.Delete(ctx, target.id)
		default:
			err = fmt.Errorf("unknown record type %q", target.kind)
		}
		if err != nil {
			return errMsg{err}
		}
		return deletedMsg{name: target.name}
	}
}
