package invoice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/accounting"
	"github.com/MrJamesThe3rd/invoicer/internal/datefmt"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
)

type Handler struct {
	svc      *invoice.Service
	dates    datefmt.Formatter
	currency accounting.Currency
}

func NewHandler(svc *invoice.Service, dates datefmt.Formatter, currency accounting.Currency) *Handler {
	return &Handler{svc: svc, dates: dates, currency: currency}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{id}/summary", h.summary)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to get invoice", "error", err, "invoice_id", id)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.toSummaryResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
