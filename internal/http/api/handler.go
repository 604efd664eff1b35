// Package api serves the ledger as JSON under /api/v1.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ardoise/internal/dashboard"
	"github.com/MrJamesThe3rd/ardoise/internal/debtor"
	"github.com/MrJamesThe3rd/ardoise/internal/money"
	"github.com/MrJamesThe3rd/ardoise/internal/supplier"
)

type Handler struct {
	debtors   *debtor.Service
	suppliers *supplier.Service
	dashboard *dashboard.Service
	money     *money.Formatter
}

func NewHandler(debtors *debtor.Service, suppliers *supplier.Service, dash *dashboard.Service, fmtr *money.Formatter) *Handler {
	return &Handler{debtors: debtors, suppliers: suppliers, dashboard: dash, money: fmtr}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/debiteurs", func(r chi.Router) {
		r.Get("/", h.listDebtors)
		r.Get("/{id}", h.getDebtor)
		r.Delete("/{id}", h.deleteDebtor)
	})

	r.Route("/fournisseurs", func(r chi.Router) {
		r.Get("/", h.listSuppliers)
		r.Get("/{id}", h.getSupplier)
		r.Delete("/{id}", h.deleteSupplier)
	})

	r.Get("/dashboard", h.overview)
}

func (h *Handler) listDebtors(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.debtors.List(r.Context(), debtor.ListFilter{Query: r.URL.Query().Get("q")})
	if err != nil {
		internalError(w, r, "failed to list debtors", err)
		return
	}

	resp := make([]debtorSummaryResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = h.toDebtorSummary(s)
	}

	writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) getDebtor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	st, err := h.debtors.Statement(r.Context(), id)
	if err != nil {
		if errors.Is(err, debtor.ErrNotFound) {
			http.Error(w, "debtor not found", http.StatusNotFound)
			return
		}

		internalError(w, r, "failed to load debtor", err)

		return
	}

	writeJSON(w, r, http.StatusOK, h.toDebtorStatement(st))
}

func (h *Handler) deleteDebtor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.debtors.Delete(r.Context(), id); err != nil {
		if errors.Is(err, debtor.ErrNotFound) {
			http.Error(w, "debtor not found", http.StatusNotFound)
			return
		}

		internalError(w, r, "failed to delete debtor", err)

		return
	}

	slog.InfoContext(r.Context(), "debtor deleted", "debtor_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.suppliers.List(r.Context(), supplier.ListFilter{Query: r.URL.Query().Get("q")})
	if err != nil {
		internalError(w, r, "failed to list suppliers", err)
		return
	}

	resp := make([]supplierSummaryResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = h.toSupplierSummary(s)
	}

	writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) getSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	st, err := h.suppliers.Statement(r.Context(), id)
	if err != nil {
		if errors.Is(err, supplier.ErrNotFound) {
			http.Error(w, "supplier not found", http.StatusNotFound)
			return
		}

		internalError(w, r, "failed to load supplier", err)

		return
	}

	writeJSON(w, r, http.StatusOK, h.toSupplierStatement(st))
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.suppliers.Delete(r.Context(), id); err != nil {
		if errors.Is(err, supplier.ErrNotFound) {
			http.Error(w, "supplier not found", http.StatusNotFound)
			return
		}

		internalError(w, r, "failed to delete supplier", err)

		return
	}

	slog.InfoContext(r.Context(), "supplier deleted", "supplier_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.dashboard.Overview(r.Context())
	if err != nil {
		internalError(w, r, "failed to load dashboard", err)
		return
	}

	writeJSON(w, r, http.StatusOK, h.toOverview(ov))
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}

	return id, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

func internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.ErrorContext(r.Context(), msg, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
