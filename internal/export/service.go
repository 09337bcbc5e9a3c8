package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/invoicer/internal/accounting"
	"github.com/MrJamesThe3rd/invoicer/internal/datefmt"
	"github.com/MrJamesThe3rd/invoicer/internal/statement"
)

var csvHeader = []string{"date", "invoice_number", "subtotal", "sales_tax", "total", "paid"}

// Service renders customer statements as CSV, plain text and zip bundles.
type Service struct {
	statements *statement.Service
	dates      datefmt.Formatter
	currency   accounting.Currency
}

// NewService creates a new export Service.
func NewService(statements *statement.Service, dates datefmt.Formatter, currency accounting.Currency) *Service {
	return &Service{
		statements: statements,
		dates:      dates,
		currency:   currency,
	}
}

// Export generates the statement to be exported.
func (s *Service) Export(ctx context.Context, req statement.Request) (*statement.Statement, error) {
	st, err := s.statements.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generating statement: %w", err)
	}

	return st, nil
}

// WriteCSV writes one row per invoice in group order followed by a totals row.
// Amounts are plain two-decimal numbers.
func (s *Service) WriteCSV(w io.Writer, st *statement.Statement) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, inv := range st.Invoices() {
		sum := accounting.SummarizeInvoice(inv)

		row := []string{inv.Date, inv.Number, amount(sum.Subtotal), amount(sum.SalesTaxAmount), amount(sum.Total()), amount(sum.PaidAmount)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing invoice %s: %w", inv.Number, err)
		}
	}

	sum := statement.Summarize(*st)

	if err := cw.Write([]string{"total", "", amount(sum.Subtotal), amount(sum.SalesTaxAmount), amount(sum.Total()), amount(st.EffectivePaidAmount())}); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}

	cw.Flush()

	return cw.Error()
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Summary creates a plain-text statement suitable for an email body.
func (s *Service) Summary(st *statement.Statement) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s | %s\n", st.Customer.Name, s.dates.Range(st.StartDate, st.EndDate)))

	for _, inv := range st.Invoices() {
		sum := accounting.SummarizeInvoice(inv)

		sb.WriteString(fmt.Sprintf("* %s | %s | %s | paid %s\n",
			s.dates.Date(inv.Date), inv.Number, s.currency.Format(sum.Total()), s.currency.Format(sum.PaidAmount)))
	}

	sum := statement.Summarize(*st)
	paid := st.EffectivePaidAmount()

	sb.WriteString(fmt.Sprintf("Total: %s | Paid: %s | Balance: %s\n",
		s.currency.Format(sum.Total()), s.currency.Format(paid), s.currency.Format(accounting.Round2(sum.Total()-paid))))

	return sb.String()
}

// WriteArchive writes a zip holding statement.csv and summary.txt.
func (s *Service) WriteArchive(w io.Writer, st *statement.Statement) error {
	zw := zip.NewWriter(w)

	f, err := zw.Create("statement.csv")
	if err != nil {
		return fmt.Errorf("creating statement.csv: %w", err)
	}

	if err := s.WriteCSV(f, st); err != nil {
		return err
	}

	f, err = zw.Create("summary.txt")
	if err != nil {
		return fmt.Errorf("creating summary.txt: %w", err)
	}

	if _, err := io.WriteString(f, s.Summary(st)); err != nil {
		return fmt.Errorf("writing summary.txt: %w", err)
	}

	return zw.Close()
}
