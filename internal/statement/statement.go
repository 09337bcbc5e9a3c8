package statement

import (
	"github.com/MrJamesThe3rd/invoicer/internal/accounting"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
)

// Statement is a customer's invoices over a date range, grouped by invoice date.
// It is built on demand and never stored.
type Statement struct {
	Customer           invoice.Customer
	StartDate          string
	EndDate            string
	PaidAmountOverride *float64
	InvoicesByDate     [][]invoice.Invoice
}

// GroupByDate partitions invoices into runs sharing the same Date string.
// Groups appear in the order their date is first seen, and each group keeps the
// input order. Nothing is filtered or sorted.
func GroupByDate(invoices []invoice.Invoice) [][]invoice.Invoice {
	groups := make([][]invoice.Invoice, 0)
	index := make(map[string]int)

	for _, inv := range invoices {
		i, ok := index[inv.Date]
		if !ok {
			i = len(groups)
			index[inv.Date] = i
			groups = append(groups, nil)
		}

		groups[i] = append(groups[i], inv)
	}

	return groups
}

// Summarize totals every invoice in the statement.
// Subtotal and tax are sums of per-line rounded figures, paid is the raw sum of paid
// amounts, and each is rounded once at the end.
func Summarize(s Statement) accounting.Summary {
	var t accounting.Totals

	for _, group := range s.InvoicesByDate {
		for _, inv := range group {
			t.AddInvoice(inv)
		}
	}

	return t.Summary()
}

// EffectivePaidAmount is the paid figure shown on the statement: the override when
// one was given, otherwise the summarized paid amount.
func (s Statement) EffectivePaidAmount() float64 {
	if s.PaidAmountOverride != nil {
		return *s.PaidAmountOverride
	}

	return Summarize(s).PaidAmount
}

func (s Statement) InvoiceCount() int {
	n := 0
	for _, group := range s.InvoicesByDate {
		n += len(group)
	}

	return n
}

// Invoices returns the statement's invoices in group order.
func (s Statement) Invoices() []invoice.Invoice {
	invoices := make([]invoice.Invoice, 0, s.InvoiceCount())
	for _, group := range s.InvoicesByDate {
		invoices = append(invoices, group...)
	}

	return invoices
}
