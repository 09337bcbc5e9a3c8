package accounting

import "github.com/MrJamesThe3rd/invoicer/internal/invoice"

// LineSubtotal returns quantity * unit price, rounded.
func LineSubtotal(li invoice.LineItem) float64 {
	return Round2(li.Quantity * li.UnitPrice)
}

// LineTax returns the line's sales tax, rounded. A line without tax yields 0.
func LineTax(li invoice.LineItem) float64 {
	if li.SalesTax == nil {
		return 0
	}

	return Round2(li.Quantity * li.UnitPrice * li.SalesTax.Rate)
}

// Summary is the set of derived figures shown for an invoice or a statement.
type Summary struct {
	Subtotal       float64
	SalesTaxAmount float64
	PaidAmount     float64
}

// Total is the subtotal plus tax.
func (s Summary) Total() float64 {
	return Round2(s.Subtotal + s.SalesTaxAmount)
}

// Balance is what remains to be paid. It is negative for overpaid invoices.
func (s Summary) Balance() float64 {
	return Round2(s.Total() - s.PaidAmount)
}

// Totals accumulates figures across any number of invoices.
// Line figures are added already rounded; paid amounts are added raw.
// Nothing is rounded until Summary is called.
type Totals struct {
	subtotal float64
	salesTax float64
	paid     float64
}

// AddLine adds one line's rounded subtotal and tax.
func (t *Totals) AddLine(li invoice.LineItem) {
	t.subtotal += LineSubtotal(li)
	t.salesTax += LineTax(li)
}

// AddInvoice adds every line of inv and its paid amount.
func (t *Totals) AddInvoice(inv invoice.Invoice) {
	for _, li := range inv.LineItems {
		t.AddLine(li)
	}

	t.paid += inv.PaidAmount
}

// Summary rounds the accumulated sums.
func (t Totals) Summary() Summary {
	return Summary{
		Subtotal:       Round2(t.subtotal),
		SalesTaxAmount: Round2(t.salesTax),
		PaidAmount:     Round2(t.paid),
	}
}

// SummarizeInvoice computes the subtotal, tax and paid figures of a single invoice.
// Void invoices are not special-cased.
func SummarizeInvoice(inv invoice.Invoice) Summary {
	var t Totals

	t.AddInvoice(inv)

	return t.Summary()
}

// InvoiceSubtotal is SummarizeInvoice(inv).Subtotal.
func InvoiceSubtotal(inv invoice.Invoice) float64 {
	return SummarizeInvoice(inv).Subtotal
}

// InvoiceSalesTax is SummarizeInvoice(inv).SalesTaxAmount.
func InvoiceSalesTax(inv invoice.Invoice) float64 {
	return SummarizeInvoice(inv).SalesTaxAmount
}
