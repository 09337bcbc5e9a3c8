package customer

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/accounting"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/search"
)

type Handler struct {
	svc      *invoice.Service
	currency accounting.Currency
}

func NewHandler(svc *invoice.Service, currency accounting.Currency) *Handler {
	return &Handler{svc: svc, currency: currency}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.search)
	r.Get("/{id}/pricing", h.pricing)
}

// Index builds a search index over customer name, email and tax registration number.
func Index(customers []invoice.Customer) *search.Index[invoice.Customer] {
	return search.New(customers,
		func(c invoice.Customer) any { return c.Name },
		func(c invoice.Customer) any { return c.Email },
		func(c invoice.Customer) any { return c.TaxRegistrationNumber },
	)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	includeArchived, _ := strconv.ParseBool(r.URL.Query().Get("include_archived"))

	customers, err := h.svc.Customers(r.Context(), includeArchived)
	if err != nil {
		slog.Error("failed to list customers", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	matches := Index(customers).Search(r.URL.Query().Get("q"))

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(matches)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) pricing(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Customer(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to get customer", "error", err, "customer_id", id)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	products, err := h.svc.Products(r.Context(), false)
	if err != nil {
		slog.Error("failed to list products", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	taxes, err := h.svc.SalesTaxes(r.Context())
	if err != nil {
		slog.Error("failed to list sales taxes", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.toPricingList(c, products, taxes)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
