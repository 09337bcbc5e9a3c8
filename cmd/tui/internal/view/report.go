package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/invoicer/internal/accounting"
	"github.com/MrJamesThe3rd/invoicer/internal/datefmt"
	"github.com/MrJamesThe3rd/invoicer/internal/report"
)

type reportState int

const (
	reportStateTimeframe reportState = iota
	reportStateLoading
	reportStateResult
)

type ReportModel struct {
	CommonModel
	reportService *report.Service
	dates         datefmt.Formatter
	currency      accounting.Currency

	state           reportState
	timeframePicker TimeframePicker
	spinner         spinner.Model

	report *report.ActivityReport
	err    error
}

func NewReportModel(svc *report.Service, dates datefmt.Formatter, clock datefmt.Clock, currency accounting.Currency) ReportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ReportModel{
		reportService:   svc,
		dates:           dates,
		currency:        currency,
		state:           reportStateTimeframe,
		timeframePicker: NewTimeframePicker(clock, datefmt.ThisMonth),
		spinner:         s,
	}
}

func (m ReportModel) Title() string { return "Activity Report" }

func (m ReportModel) ShortHelp() string {
	if m.state == reportStateResult {
		return "r: change range | Esc: back"
	}
	return "Esc: back | Enter: confirm"
}

func (m ReportModel) Init() tea.Cmd {
	return nil
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.state = reportStateLoading
		return m, tea.Batch(m.spinner.Tick, m.generateCmd(msg.Start, msg.End))

	case reportResultMsg:
		m.state = reportStateResult
		m.report, m.err = msg.report, msg.err
		return m, nil
	}

	switch m.state {
	case reportStateTimeframe:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
				return m, Back
			}
		}

		var cmd tea.Cmd
		m.timeframePicker, cmd = m.timeframePicker.Update(msg)
		return m, cmd

	case reportStateLoading:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case reportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "r":
				m.state = reportStateTimeframe
				m.timeframePicker.Reset()
			}
		}
	}

	return m, nil
}

func (m ReportModel) View() string {
	switch m.state {
	case reportStateTimeframe:
		return pad.Render(m.timeframePicker.View())
	case reportStateLoading:
		return pad.Render(fmt.Sprintf("%s Building report...", m.spinner.View()))
	case reportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ReportModel) viewResult() string {
	if m.err != nil {
		return pad.Render(renderError(m.err))
	}

	r := m.report

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Activity · "+m.dates.Range(r.StartDate, r.EndDate)) + "\n\n")
	sb.WriteString(fmt.Sprintf("Sales:     %s\n", m.currency.Format(r.Subtotal)))
	sb.WriteString(fmt.Sprintf("Sales Tax: %s\n\n", m.currency.Format(r.SalesTaxAmount)))

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Products") + "\n")
	for _, p := range r.ProductInsights {
		sb.WriteString(fmt.Sprintf("  %-28s %-16s %10s  %14s\n",
			p.ProductName, p.CategoryName, accounting.FormatNumber(p.Quantity), m.currency.Format(p.Subtotal)))
	}

	sb.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Customers") + "\n")
	for _, c := range r.CustomerInsights {
		sb.WriteString(fmt.Sprintf("  %-3s %-28s %14s\n",
			accounting.NameInitials(c.CustomerName), c.CustomerName, m.currency.Format(c.Subtotal)))
	}

	sb.WriteString("\n" + mutedStyle.Render(m.ShortHelp()))

	return pad.Render(sb.String())
}

type reportResultMsg struct {
	report *report.ActivityReport
	err    error
}

func (m ReportModel) generateCmd(start, end string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		r, err := m.reportService.Generate(ctx, start, end)
		return reportResultMsg{report: r, err: err}
	}
}
