package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/invoicer/internal/accounting"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/search"
)

// CustomerSelectedMsg is emitted when a customer row is chosen.
type CustomerSelectedMsg struct {
	Customer invoice.Customer
}

type CustomersModel struct {
	CommonModel
	invoiceService *invoice.Service

	input   textinput.Model
	table   table.Model
	index   *search.Index[invoice.Customer]
	results []invoice.Customer

	loading bool
	err     error
}

func NewCustomersModel(svc *invoice.Service) CustomersModel {
	ti := textinput.New()
	ti.Placeholder = "name, email or tax number"
	ti.Prompt = "Search: "
	ti.Focus()

	columns := []table.Column{
		{Title: "", Width: 3},
		{Title: "Name", Width: 30},
		{Title: "Email", Width: 30},
		{Title: "Tax Number", Width: 20},
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

	return CustomersModel{
		invoiceService: svc,
		input:          ti,
		table:          t,
		loading:        true,
	}
}

func (m CustomersModel) Title() string { return "Customers" }

func (m CustomersModel) ShortHelp() string {
	return "Type to search | ↑/↓: move | Enter: statement | Esc: back"
}

func (m CustomersModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCustomersCmd())
}

func (m CustomersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCustomersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.index = search.New(msg.customers,
			func(c invoice.Customer) any { return c.Name },
			func(c invoice.Customer) any { return c.Email },
			func(c invoice.Customer) any { return c.TaxRegistrationNumber },
		)
		m.refreshTable()
		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		case tea.KeyEnter:
			i := m.table.Cursor()
			if i < 0 || i >= len(m.results) {
				return m, nil
			}
			c := m.results[i]
			return m, func() tea.Msg { return CustomerSelectedMsg{Customer: c} }
		}
	}

	prev := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.refreshTable()
	}

	return m, cmd
}

func (m *CustomersModel) refreshTable() {
	if m.index == nil {
		return
	}

	m.results = m.index.Search(m.input.Value())

	rows := make([]table.Row, 0, len(m.results))
	for _, c := range m.results {
		rows = append(rows, table.Row{
			accounting.NameInitials(c.Name),
			c.Name,
			deref(c.Email),
			deref(c.TaxRegistrationNumber),
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (m CustomersModel) View() string {
	if m.err != nil {
		return pad.Render(renderError(m.err))
	}

	if m.loading {
		return pad.Render("Loading customers...")
	}

	count := mutedStyle.Render(fmt.Sprintf("%d of %d customers", len(m.results), m.index.Len()))

	return pad.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.input.View(),
		"",
		m.table.View(),
		"",
		count,
		mutedStyle.Render(m.ShortHelp()),
	))
}

type loadCustomersMsg struct {
	customers []invoice.Customer
	err       error
}

func (m CustomersModel) loadCustomersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		customers, err := m.invoiceService.Customers(ctx, false)
		return loadCustomersMsg{customers: customers, err: err}
	}
}
