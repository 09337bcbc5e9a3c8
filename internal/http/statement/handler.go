package statement

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/invoicer/internal/accounting"
	"github.com/MrJamesThe3rd/invoicer/internal/datefmt"
	"github.com/MrJamesThe3rd/invoicer/internal/http/query"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/statement"
)

type Handler struct {
	svc      *statement.Service
	dates    datefmt.Formatter
	clock    datefmt.Clock
	currency accounting.Currency
}

func NewHandler(svc *statement.Service, dates datefmt.Formatter, clock datefmt.Clock, currency accounting.Currency) *Handler {
	return &Handler{svc: svc, dates: dates, clock: clock, currency: currency}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	req, err := query.Statement(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st, err := h.svc.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to generate statement", "error", err, "customer_id", req.CustomerID)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.toResponse(st)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
