package view

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/invoicer/internal/accounting"
	"github.com/MrJamesThe3rd/invoicer/internal/datefmt"
	"github.com/MrJamesThe3rd/invoicer/internal/export"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/statement"
)

type statementState int

const (
	statementStateTimeframe statementState = iota
	statementStateOptions
	statementStateLoading
	statementStateView
	statementStatePath
	statementStateExporting
)

type StatementModel struct {
	CommonModel
	exportService *export.Service
	dates         datefmt.Formatter
	clock         datefmt.Clock
	currency      accounting.Currency

	customer invoice.Customer
	state    statementState
	err      error

	timeframePicker TimeframePicker
	start, end      string

	form      *huh.Form
	spinner   spinner.Model
	statement *statement.Statement
	status    string
}

func NewStatementModel(
	svc *export.Service,
	dates datefmt.Formatter,
	clock datefmt.Clock,
	currency accounting.Currency,
	customer invoice.Customer,
) StatementModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return StatementModel{
		exportService:   svc,
		dates:           dates,
		clock:           clock,
		currency:        currency,
		customer:        customer,
		state:           statementStateTimeframe,
		timeframePicker: NewTimeframePicker(clock, datefmt.ThisMonth),
		spinner:         s,
	}
}

func (m StatementModel) Title() string { return "Statement: " + m.customer.Name }

func (m StatementModel) ShortHelp() string {
	switch m.state {
	case statementStateView:
		return "e: export | r: change range | Esc: back"
	case statementStateLoading, statementStateExporting:
		return "Working..."
	}
	return "Esc: back | Enter: confirm"
}

func (m StatementModel) Init() tea.Cmd {
	return nil
}

func (m StatementModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tfMsg, ok := msg.(TimeframeSelectedMsg); ok {
		m.start, m.end = tfMsg.Start, tfMsg.End
		m.form = buildOverrideForm()
		m.state = statementStateOptions
		return m, m.form.Init()
	}

	switch m.state {
	case statementStateTimeframe:
		return m.updateTimeframe(msg)
	case statementStateOptions:
		return m.updateOptions(msg)
	case statementStateLoading:
		return m.updateLoading(msg)
	case statementStateView:
		return m.updateView(msg)
	case statementStatePath:
		return m.updatePath(msg)
	case statementStateExporting:
		return m.updateExporting(msg)
	}

	return m, nil
}

func (m StatementModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)
	return m, cmd
}

func (m StatementModel) updateOptions(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = statementStateTimeframe
		m.timeframePicker.Reset()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	req := statement.Request{
		CustomerID: m.customer.ID,
		StartDate:  m.start,
		EndDate:    m.end,
	}
	if v := strings.TrimSpace(m.form.GetString("override")); v != "" {
		// Validated by the form.
		paid, _ := strconv.ParseFloat(v, 64)
		req.PaidAmountOverride = &paid
	}

	m.state = statementStateLoading
	m.err = nil
	return m, tea.Batch(m.spinner.Tick, m.generateCmd(req))
}

func (m StatementModel) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(statementResultMsg); ok {
		m.state = statementStateView
		m.err = result.err
		m.statement = result.statement
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m StatementModel) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "r":
		m.state = statementStateTimeframe
		m.timeframePicker.Reset()
		return m, nil
	case "e":
		if m.statement == nil {
			return m, nil
		}
		m.form = buildPathForm()
		m.state = statementStatePath
		return m, m.form.Init()
	}

	return m, nil
}

func (m StatementModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = statementStateView
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	dir := m.form.GetString("path")
	if dir == "" {
		dir = "./exports"
	}

	m.state = statementStateExporting
	return m, tea.Batch(m.spinner.Tick, m.exportCmd(m.statement, dir))
}

func (m StatementModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = statementStateView
		if result.err != nil {
			m.status = renderError(result.err)
		} else {
			m.status = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render("Saved " + result.path)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func buildOverrideForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("override").
				Title("Paid Amount").
				Description("Leave empty to use the recorded payments").
				Placeholder("0.00").
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return nil
					}
					if _, err := strconv.ParseFloat(s, 64); err != nil {
						return fmt.Errorf("not a number")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports"),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m StatementModel) View() string {
	switch m.state {
	case statementStateTimeframe:
		return pad.Render(m.timeframePicker.View())
	case statementStateOptions, statementStatePath:
		return pad.Render(m.form.View())
	case statementStateLoading:
		return pad.Render(fmt.Sprintf("%s Loading statement...", m.spinner.View()))
	case statementStateExporting:
		return pad.Render(fmt.Sprintf("%s Writing archive...", m.spinner.View()))
	case statementStateView:
		return m.viewStatement()
	}

	return ""
}

func (m StatementModel) viewStatement() string {
	if m.err != nil {
		return pad.Render(renderError(m.err))
	}

	st := m.statement

	lines := []string{
		headerStyle.Render(fmt.Sprintf("%s  %s", accounting.NameInitials(st.Customer.Name), st.Customer.Name)),
		mutedStyle.Render(fmt.Sprintf("%s · generated %s", m.dates.Range(st.StartDate, st.EndDate), m.dates.Today(m.clock))),
		"",
	}

	if st.InvoiceCount() == 0 {
		lines = append(lines, mutedStyle.Render("No invoices in this range."))
	}

	for _, group := range st.InvoicesByDate {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(m.dates.Date(group[0].Date)))

		for _, inv := range group {
			sum := accounting.SummarizeInvoice(inv)
			status := RenderBadge(accounting.BadgeFor(inv.PaymentStatus), string(inv.PaymentStatus))
			lines = append(lines, fmt.Sprintf("  %-12s %14s  paid %14s  %s",
				inv.Number, m.currency.Format(sum.Total()), m.currency.Format(sum.PaidAmount), status))
		}
	}

	sum := statement.Summarize(*st)
	paid := st.EffectivePaidAmount()

	lines = append(lines,
		"",
		fmt.Sprintf("Subtotal:  %s", m.currency.Format(sum.Subtotal)),
		fmt.Sprintf("Sales Tax: %s", m.currency.Format(sum.SalesTaxAmount)),
		fmt.Sprintf("Total:     %s", m.currency.Format(sum.Total())),
		fmt.Sprintf("Paid:      %s", m.currency.Format(paid)),
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Balance:   %s", m.currency.Format(accounting.Round2(sum.Total()-paid)))),
	)

	if m.status != "" {
		lines = append(lines, "", m.status)
	}

	lines = append(lines, "", mutedStyle.Render(m.ShortHelp()))

	return pad.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

type statementResultMsg struct {
	statement *statement.Statement
	err       error
}

func (m StatementModel) generateCmd(req statement.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		st, err := m.exportService.Export(ctx, req)
		return statementResultMsg{statement: st, err: err}
	}
}

type exportResultMsg struct {
	path string
	err  error
}

func (m StatementModel) exportCmd(st *statement.Statement, dir string) tea.Cmd {
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportResultMsg{err: fmt.Errorf("creating directory: %w", err)}
		}

		slug := strings.ToLower(accounting.NameInitials(st.Customer.Name))
		if slug == "" {
			slug = "customer"
		}

		name := fmt.Sprintf("statement-%s-%s-%s.zip", slug, st.StartDate, st.EndDate)
		path := filepath.Join(dir, name)

		f, err := os.Create(path)
		if err != nil {
			return exportResultMsg{err: fmt.Errorf("creating archive: %w", err)}
		}
		defer f.Close()

		if err := m.exportService.WriteArchive(f, st); err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{path: path}
	}
}
