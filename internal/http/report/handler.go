package report

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/accounting"
	"github.com/MrJamesThe3rd/invoicer/internal/datefmt"
	"github.com/MrJamesThe3rd/invoicer/internal/http/query"
	"github.com/MrJamesThe3rd/invoicer/internal/report"
)

type Handler struct {
	svc      *report.Service
	dates    datefmt.Formatter
	currency accounting.Currency
}

func NewHandler(svc *report.Service, dates datefmt.Formatter, currency accounting.Currency) *Handler {
	return &Handler{svc: svc, dates: dates, currency: currency}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

type productInsightResponse struct {
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	CategoryName   string    `json:"product_category_name"`
	Quantity       float64   `json:"quantity"`
	Subtotal       float64   `json:"subtotal"`
	SalesTaxAmount float64   `json:"sales_tax_amount"`
}

type productOrderedResponse struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
}

type customerInsightResponse struct {
	CustomerID      uuid.UUID                `json:"customer_id"`
	CustomerName    string                   `json:"customer_name"`
	CustomerImage   *string                  `json:"customer_image_url"`
	ProductsOrdered []productOrderedResponse `json:"products_ordered"`
	Subtotal        float64                  `json:"subtotal"`
	SalesTaxAmount  float64                  `json:"sales_tax_amount"`
}

type reportResponse struct {
	StartDate        string                    `json:"start_date"`
	EndDate          string                    `json:"end_date"`
	RangeLabel       string                    `json:"range_label"`
	Subtotal         float64                   `json:"subtotal"`
	SalesTaxAmount   float64                   `json:"sales_tax_amount"`
	Expense          float64                   `json:"expense"`
	SubtotalLabel    string                    `json:"subtotal_label"`
	SalesTaxLabel    string                    `json:"sales_tax_label"`
	ProductInsights  []productInsightResponse  `json:"product_insights"`
	CustomerInsights []customerInsightResponse `json:"customer_insights"`
}

func (h *Handler) toResponse(r *report.ActivityReport) reportResponse {
	products := make([]productInsightResponse, len(r.ProductInsights))
	for i, p := range r.ProductInsights {
		products[i] = productInsightResponse(p)
	}

	customers := make([]customerInsightResponse, len(r.CustomerInsights))
	for i, c := range r.CustomerInsights {
		ordered := make([]productOrderedResponse, len(c.ProductsOrdered))
		for j, o := range c.ProductsOrdered {
			ordered[j] = productOrderedResponse(o)
		}

		customers[i] = customerInsightResponse{
			CustomerID:      c.CustomerID,
			CustomerName:    c.CustomerName,
			CustomerImage:   c.CustomerImage,
			ProductsOrdered: ordered,
			Subtotal:        c.Subtotal,
			SalesTaxAmount:  c.SalesTaxAmount,
		}
	}

	return reportResponse{
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		RangeLabel:       h.dates.Range(r.StartDate, r.EndDate),
		Subtotal:         r.Subtotal,
		SalesTaxAmount:   r.SalesTaxAmount,
		Expense:          r.Expense,
		SubtotalLabel:    h.currency.Format(r.Subtotal),
		SalesTaxLabel:    h.currency.Format(r.SalesTaxAmount),
		ProductInsights:  products,
		CustomerInsights: customers,
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	dr, err := query.Range(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rep, err := h.svc.Generate(r.Context(), dr.StartDate, dr.EndDate)
	if err != nil {
		slog.Error("failed to generate activity report", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.toResponse(rep)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
