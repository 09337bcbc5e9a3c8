package invoice

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/accounting"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
)

type lineItemResponse struct {
	ID             uuid.UUID `json:"id"`
	ProductName    string    `json:"product_name"`
	Quantity       float64   `json:"quantity"`
	UnitPrice      float64   `json:"unit_price"`
	Subtotal       float64   `json:"subtotal"`
	SalesTaxAmount float64   `json:"sales_tax_amount"`
	SalesTaxLabel  string    `json:"sales_tax_label"`
}

type summaryResponse struct {
	ID             uuid.UUID             `json:"id"`
	Number         string                `json:"number"`
	Date           string                `json:"date"`
	DateLabel      string                `json:"date_label"`
	CustomerName   string                `json:"customer_name"`
	PaymentStatus  invoice.PaymentStatus `json:"payment_status"`
	Badge          accounting.Badge      `json:"badge"`
	IsVoid         bool                  `json:"is_void"`
	LineItems      []lineItemResponse    `json:"line_items"`
	Subtotal       float64               `json:"subtotal"`
	SalesTaxAmount float64               `json:"sales_tax_amount"`
	Total          float64               `json:"total"`
	PaidAmount     float64               `json:"paid_amount"`
	Balance        float64               `json:"balance"`
	Formatted      formattedTotals       `json:"formatted"`
}

type formattedTotals struct {
	Subtotal       string `json:"subtotal"`
	SalesTaxAmount string `json:"sales_tax_amount"`
	Total          string `json:"total"`
	PaidAmount     string `json:"paid_amount"`
	Balance        string `json:"balance"`
}

func (h *Handler) toSummaryResponse(inv *invoice.Invoice) summaryResponse {
	sum := accounting.SummarizeInvoice(*inv)

	items := make([]lineItemResponse, len(inv.LineItems))
	for i, li := range inv.LineItems {
		items[i] = lineItemResponse{
			ID:             li.ID,
			ProductName:    li.Product.Name,
			Quantity:       li.Quantity,
			UnitPrice:      li.UnitPrice,
			Subtotal:       accounting.LineSubtotal(li),
			SalesTaxAmount: accounting.LineTax(li),
			SalesTaxLabel:  accounting.SalesTaxLabel(li.SalesTax, accounting.LabelName, ""),
		}
	}

	return summaryResponse{
		ID:             inv.ID,
		Number:         inv.Number,
		Date:           inv.Date,
		DateLabel:      h.dates.Date(inv.Date),
		CustomerName:   inv.Customer.Name,
		PaymentStatus:  inv.PaymentStatus,
		Badge:          accounting.BadgeFor(inv.PaymentStatus),
		IsVoid:         inv.IsVoid,
		LineItems:      items,
		Subtotal:       sum.Subtotal,
		SalesTaxAmount: sum.SalesTaxAmount,
		Total:          sum.Total(),
		PaidAmount:     sum.PaidAmount,
		Balance:        sum.Balance(),
		Formatted: formattedTotals{
			Subtotal:       h.currency.Format(sum.Subtotal),
			SalesTaxAmount: h.currency.Format(sum.SalesTaxAmount),
			Total:          h.currency.Format(sum.Total()),
			PaidAmount:     h.currency.Format(sum.PaidAmount),
			Balance:        h.currency.Format(sum.Balance()),
		},
	}
}
