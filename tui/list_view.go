// ABOUTME: List view for the TUI
// ABOUTME: Tabbed customer and deal tables with selection and navigation keys
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("SALES CRM"))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n\n")
	}

	s.WriteString(m.table.View())
	s.WriteString("\n")

	if m.statusMessage != "" {
		s.WriteString("\n" + m.statusMessage + "\n")
	}

	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"Customers", "Deals"}
	var rendered []string

	for i, tab := range tabs {
		if EntityType(i) == m.entityType {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) columns() []table.Column {
	if m.entityType == EntityDeals {
		return []table.Column{
			{Title: "Title", Width: 30},
			{Title: "Customer", Width: 22},
			{Title: "Stage", Width: 14},
			{Title: "Value", Width: 12},
			{Title: "Prob", Width: 5},
		}
	}
	return []table.Column{
		{Title: "Name", Width: 26},
		{Title: "Company", Width: 22},
		{Title: "Industry", Width: 14},
		{Title: "Status", Width: 10},
	}
}

// refreshRows rebuilds the table rows from the loaded records. Columns are
// swapped with the rows cleared so the table never renders a row that is
// wider than its columns.
func (m *Model) refreshRows() {
	var rows []table.Row
	switch m.entityType {
	case EntityCustomers:
		for _, c := range m.customers {
			rows = append(rows, table.Row{c.Name, c.Company, c.Industry, c.Status})
		}
	case EntityDeals:
		for _, d := range m.deals {
			rows = append(rows, table.Row{
				d.Title,
				d.CustomerName,
				d.Stage,
				"$" + humanize.CommafWithDigits(d.Value, 0),
				strconv.Itoa(d.Probability) + "%",
			})
		}
	}

	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.table.SetRows(rows)

	// SetCursor on an empty table leaves the cursor at -1.
	switch c := m.table.Cursor(); {
	case len(rows) == 0:
	case c < 0:
		m.table.SetCursor(0)
	case c >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m Model) renderListHelp() string {
	return helpStyle.Render("↑/↓: navigate • tab: switch view • enter: open customer • d: delete • r: refresh • q: quit")
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.entityType = (m.entityType + 1) % entityCount
		m.statusMessage = ""
		m.table.SetCursor(0)
		m.customers = nil
		m.deals = nil
		m.refreshRows()
		return m, m.loadList()

	case "r":
		m.statusMessage = ""
		return m, m.loadList()

	case "enter":
		if id, ok := m.selectedCustomerID(); ok {
			return m, m.loadDetail(id)
		}
		return m, nil

	case "d":
		if target, ok := m.selectedTarget(); ok {
			m.pending = &target
			m.viewMode = ViewConfirmDelete
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selectedCustomerID returns the customer behind the highlighted row. On the
// deals tab that is the deal's customer.
func (m Model) selectedCustomerID() (int64, bool) {
	i := m.table.Cursor()
	switch m.entityType {
	case EntityCustomers:
		if i >= 0 && i < len(m.customers) {
			return m.customers[i].ID, true
		}
	case EntityDeals:
		if i >= 0 && i < len(m.deals) {
			return m.deals[i].CustomerID, true
		}
	}
	return 0, false
}

func (m Model) selectedTarget() (deleteTarget, bool) {
	i := m.table.Cursor()
	switch m.entityType {
	case EntityCustomers:
		if i >= 0 && i < len(m.customers) {
			c := m.customers[i]
			return deleteTarget{kind: "customer", id: c.ID, name: c.Name, returnTo: ViewList}, true
		}
	case EntityDeals:
		if i >= 0 && i < len(m.deals) {
			d := m.deals[i]
			return deleteTarget{kind: "deal", id: d.ID, name: d.Title, returnTo: ViewList}, true
		}
	}
	return deleteTarget{}, false
}
