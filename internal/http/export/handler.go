package export

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/invoicer/internal/export"
	"github.com/MrJamesThe3rd/invoicer/internal/http/query"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/statement"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/export.csv", h.csv)
	r.Get("/export.zip", h.archive)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*statement.Statement, bool) {
	req, err := query.Statement(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	st, err := h.svc.Export(r.Context(), req)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return nil, false
		}

		slog.Error("failed to export statement", "error", err, "customer_id", req.CustomerID)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	return st, true
}

func filename(st *statement.Statement, ext string) string {
	return fmt.Sprintf("statement_%s_%s.%s", st.StartDate, st.EndDate, ext)
}

func (h *Handler) csv(w http.ResponseWriter, r *http.Request) {
	st, ok := h.load(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.svc.WriteCSV(&buf, st); err != nil {
		slog.Error("failed to write csv", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename(st, "csv")))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func (h *Handler) archive(w http.ResponseWriter, r *http.Request) {
	st, ok := h.load(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename(st, "zip")))

	if err := h.svc.WriteArchive(w, st); err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}
