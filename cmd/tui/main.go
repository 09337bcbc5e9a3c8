package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/invoicer/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/invoicer/internal/accounting"
	"github.com/MrJamesThe3rd/invoicer/internal/config"
	"github.com/MrJamesThe3rd/invoicer/internal/database"
	"github.com/MrJamesThe3rd/invoicer/internal/datefmt"
	"github.com/MrJamesThe3rd/invoicer/internal/export"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/invoicer/internal/invoice/store"
	"github.com/MrJamesThe3rd/invoicer/internal/report"
	"github.com/MrJamesThe3rd/invoicer/internal/statement"
)

type model struct {
	appName        string
	invoiceService *invoice.Service
	exportService  *export.Service
	reportService  *report.Service
	dates          datefmt.Formatter
	clock          datefmt.Clock
	currency       accounting.Currency

	currentView View

	customersView view.CustomersModel
	statementView view.StatementModel
	reportView    view.ReportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewCustomers View = 1
	ViewStatement View = 2
	ViewReport    View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString(), cfg.Server.Timeout)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	repo := invoiceStore.New(db)
	dates := datefmt.New(datefmt.English)

	return model{
		appName:        cfg.App.Name,
		invoiceService: invoice.NewService(repo),
		exportService:  export.NewService(statement.NewService(repo), dates, accounting.Currency{Code: cfg.App.Currency}),
		reportService:  report.NewService(repo),
		dates:          dates,
		clock:          datefmt.SystemClock{},
		currency:       accounting.Currency{Code: cfg.App.Currency},
		currentView:    ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewCustomers
				m.customersView = view.NewCustomersModel(m.invoiceService)

				return m, m.customersView.Init()
			case "2":
				m.currentView = ViewReport
				m.reportView = view.NewReportModel(m.reportService, m.dates, m.clock, m.currency)

				return m, m.reportView.Init()
			}
		}
	case view.CustomerSelectedMsg:
		m.currentView = ViewStatement
		m.statementView = view.NewStatementModel(m.exportService, m.dates, m.clock, m.currency, msg.Customer)

		return m, m.statementView.Init()
	case view.BackMsg:
		// Statements return to the customer list they were opened from.
		if m.currentView == ViewStatement {
			m.currentView = ViewCustomers
			return m, nil
		}

		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewCustomers:
		var newModel tea.Model
		newModel, cmd = m.customersView.Update(msg)
		m.customersView = newModel.(view.CustomersModel)
	case ViewStatement:
		var newModel tea.Model
		newModel, cmd = m.statementView.Update(msg)
		m.statementView = newModel.(view.StatementModel)
	case ViewReport:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Customers & Statements\n" +
				"2. Activity Report\n\n" +
				"q. Quit",
		)
	case ViewCustomers:
		return m.customersView.View()
	case ViewStatement:
		return m.statementView.View()
	case ViewReport:
		return m.reportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
