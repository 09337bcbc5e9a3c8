package statement

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/accounting"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/statement"
)

type customerResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Initials string    `json:"initials"`
}

type invoiceResponse struct {
	ID             uuid.UUID             `json:"id"`
	Number         string                `json:"number"`
	Subtotal       float64               `json:"subtotal"`
	SalesTaxAmount float64               `json:"sales_tax_amount"`
	Total          float64               `json:"total"`
	PaidAmount     float64               `json:"paid_amount"`
	PaymentStatus  invoice.PaymentStatus `json:"payment_status"`
	Badge          accounting.Badge      `json:"badge"`
}

type groupResponse struct {
	Date      string            `json:"date"`
	DateLabel string            `json:"date_label"`
	Invoices  []invoiceResponse `json:"invoices"`
}

type summaryResponse struct {
	Subtotal       float64 `json:"subtotal"`
	SalesTaxAmount float64 `json:"sales_tax_amount"`
	Total          float64 `json:"total"`
	PaidAmount     float64 `json:"paid_amount"`
	Balance        float64 `json:"balance"`
	TotalLabel     string  `json:"total_label"`
	PaidLabel      string  `json:"paid_label"`
	BalanceLabel   string  `json:"balance_label"`
}

type statementResponse struct {
	Customer     customerResponse `json:"customer"`
	StartDate    string           `json:"start_date"`
	EndDate      string           `json:"end_date"`
	RangeLabel   string           `json:"range_label"`
	GeneratedOn  string           `json:"generated_on"`
	InvoiceCount int              `json:"invoice_count"`
	Groups       []groupResponse  `json:"groups"`
	Summary      summaryResponse  `json:"summary"`
}

func (h *Handler) toResponse(st *statement.Statement) statementResponse {
	groups := make([]groupResponse, len(st.InvoicesByDate))

	for i, group := range st.InvoicesByDate {
		invoices := make([]invoiceResponse, len(group))

		for j, inv := range group {
			sum := accounting.SummarizeInvoice(inv)
			invoices[j] = invoiceResponse{
				ID:             inv.ID,
				Number:         inv.Number,
				Subtotal:       sum.Subtotal,
				SalesTaxAmount: sum.SalesTaxAmount,
				Total:          sum.Total(),
				PaidAmount:     sum.PaidAmount,
				PaymentStatus:  inv.PaymentStatus,
				Badge:          accounting.BadgeFor(inv.PaymentStatus),
			}
		}

		groups[i] = groupResponse{
			Date:      group[0].Date,
			DateLabel: h.dates.Date(group[0].Date),
			Invoices:  invoices,
		}
	}

	sum := statement.Summarize(*st)
	paid := st.EffectivePaidAmount()
	balance := accounting.Round2(sum.Total() - paid)

	return statementResponse{
		Customer: customerResponse{
			ID:       st.Customer.ID,
			Name:     st.Customer.Name,
			Initials: accounting.NameInitials(st.Customer.Name),
		},
		StartDate:    st.StartDate,
		EndDate:      st.EndDate,
		RangeLabel:   h.dates.Range(st.StartDate, st.EndDate),
		GeneratedOn:  h.dates.Today(h.clock),
		InvoiceCount: st.InvoiceCount(),
		Groups:       groups,
		Summary: summaryResponse{
			Subtotal:       sum.Subtotal,
			SalesTaxAmount: sum.SalesTaxAmount,
			Total:          sum.Total(),
			PaidAmount:     paid,
			Balance:        balance,
			TotalLabel:     h.currency.Format(sum.Total()),
			PaidLabel:      h.currency.Format(paid),
			BalanceLabel:   h.currency.Format(balance),
		},
	}
}
