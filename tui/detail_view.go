// ABOUTME: Detail view for the TUI
// ABOUTME: Shows a customer with contacts, deals, recent activities, and health score
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	detailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginTop(1)
)

const detailActivityLimit = 5

func (m Model) renderDetailView() string {
	if m.detail == nil {
		return "No customer selected"
	}
	c := m.detail

	var s strings.Builder
	s.WriteString(titleStyle.Render(strings.ToUpper(c.Name)))
	s.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		s.WriteString(labelStyle.Render(label+": ") + value + "\n")
	}
	field("Company", c.Company)
	field("Email", c.Email)
	field("Phone", c.Phone)
	field("Industry", c.Industry)
	field("Status", c.Status)
	field("Location", strings.Join(nonEmpty(c.City, c.State, c.Country), ", "))

	if m.health != nil {
		s.WriteString(labelStyle.Render("Health: ") + fmt.Sprintf("%d/100", m.health.HealthScore) + "\n")
		for _, f := range m.health.Factors {
			s.WriteString(fmt.Sprintf("  +%d %s\n", f.Points, f.Factor))
		}
	}

	s.WriteString(sectionStyle.Render(fmt.Sprintf("Contacts (%d)", len(c.Contacts))))
	s.WriteString("\n")
	for _, ct := range c.Contacts {
		line := "  • " + ct.FullName()
		if ct.Position != "" {
			line += " (" + ct.Position + ")"
		}
		s.WriteString(line + "\n")
	}

	s.WriteString(sectionStyle.Render(fmt.Sprintf("Deals (%d)", len(c.Deals))))
	s.WriteString("\n")
	for _, d := range c.Deals {
		s.WriteString(fmt.Sprintf("  • %s [%s] $%s %d%%\n",
			d.Title, d.Stage, humanize.CommafWithDigits(d.Value, 0), d.Probability))
	}

	s.WriteString(sectionStyle.Render(fmt.Sprintf("Activities (%d)", len(c.Activities))))
	s.WriteString("\n")
	for i, a := range c.Activities {
		if i == detailActivityLimit {
			s.WriteString(fmt.Sprintf("  … %d more\n", len(c.Activities)-detailActivityLimit))
			break
		}
		s.WriteString(fmt.Sprintf("  • %s: %s (%s)\n", a.Type, a.Subject, a.Status))
	}

	var out strings.Builder
	out.WriteString(detailBoxStyle.Render(s.String()))
	out.WriteString("\n")
	if m.err != nil {
		out.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}
	out.WriteString(helpStyle.Render("esc: back • d: delete customer • q: quit"))
	return out.String()
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.viewMode = ViewList
		m.detail = nil
		m.health = nil
		return m, m.loadList()
	case "d":
		if m.detail != nil {
			m.pending = &deleteTarget{kind: "customer", id: m.detail.ID, name: m.detail.Name, returnTo: ViewDetail}
			m.viewMode = ViewConfirmDelete
		}
	}
	return m, nil
}
