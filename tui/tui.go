// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Interactive customer and deal browser with detail and delete views
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/salescrm/analytics"
	"github.com/harperreed/salescrm/db"
	"github.com/harperreed/salescrm/models"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewConfirmDelete
)

// EntityType represents the list being browsed
type EntityType int

const (
	EntityCustomers EntityType = iota
	EntityDeals
	entityCount
)

// Messages produced by the load and delete commands.
type (
	customersLoadedMsg struct{ customers []models.Customer }
	dealsLoadedMsg     struct{ deals []models.DealWithCustomer }
	detailLoadedMsg    struct {
		detail *models.CustomerDetail
		health *analytics.CustomerHealth
	}
	deletedMsg struct{ name string }
	errMsg     struct{ err error }
)

// Model is the main bubbletea model
type Model struct {
	ctx       context.Context
	store     *db.Store
	analytics *analytics.Service

	viewMode   ViewMode
	entityType EntityType
	table      table.Model

	customers []models.Customer
	deals     []models.DealWithCustomer

	detail *models.CustomerDetail
	health *analytics.CustomerHealth

	pending *deleteTarget

	statusMessage string
	width         int
	height        int
	err           error
}

// NewModel creates a new TUI model. ctx bounds every store query.
func NewModel(ctx context.Context, store *db.Store) Model {
	t := table.New(table.WithFocused(true), table.WithHeight(14))
	t.SetStyles(tableStyles())

	m := Model{
		ctx:        ctx,
		store:      store,
		analytics:  analytics.NewService(store),
		viewMode:   ViewList,
		entityType: EntityCustomers,
		table:      t,
		width:      80,
		height:     24,
	}
	m.table.SetColumns(m.columns())
	return m
}

func (m Model) Init() tea.Cmd {
	return m.loadList()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-10, 3))
		return m, nil
	case customersLoadedMsg:
		m.customers = msg.customers
		m.err = nil
		m.refreshRows()
		return m, nil
	case dealsLoadedMsg:
		m.deals = msg.deals
		m.err = nil
		m.refreshRows()
		return m, nil
	case detailLoadedMsg:
		m.detail = msg.detail
		m.health = msg.health
		m.err = nil
		m.viewMode = ViewDetail
		return m, nil
	case deletedMsg:
		m.statusMessage = "Deleted " + msg.name
		m.detail = nil
		m.health = nil
		m.viewMode = ViewList
		return m, m.loadList()
	case errMsg:
		m.err = msg.err
		if m.viewMode == ViewConfirmDelete {
			m.viewMode = ViewList
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.viewMode != ViewConfirmDelete {
			return m, tea.Quit
		}
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}

	return m, nil
}

func (m Model) loadList() tea.Cmd {
	ctx, store, entity := m.ctx, m.store, m.entityType
	return func() tea.Msg {
		if entity == EntityDeals {
			deals, err := store.Deals.ListWithCustomer(ctx)
			if err != nil {
				return errMsg{err}
			}
			return dealsLoadedMsg{deals}
		}
		customers, err := store.Customers.List(ctx)
		if err != nil {
			return errMsg{err}
		}
		return customersLoadedMsg{customers}
	}
}

func (m Model) loadDetail(customerID int64) tea.Cmd {
	ctx, store, svc := m.ctx, m.store, m.analytics
	return func() tea.Msg {
		detail, err := store.Customers.GetDetail(ctx, customerID)
		if err != nil {
			return errMsg{err}
		}
		health, err := svc.CustomerHealth(ctx, customerID)
		if err != nil {
			return errMsg{err}
		}
		return detailLoadedMsg{detail: detail, health: health}
	}
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	return s
}
