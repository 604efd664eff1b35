package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ardoise/internal/dashboard"
	"github.com/MrJamesThe3rd/ardoise/internal/http/render"
)

type Handler struct {
	svc   *dashboard.Service
	pages *render.Renderer
}

func NewHandler(svc *dashboard.Service, pages *render.Renderer) *Handler {
	return &Handler{svc: svc, pages: pages}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.show)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	ov, err := h.svc.Overview(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load dashboard", "error", err)
		h.pages.Error(w, r, http.StatusInternalServerError, "Une erreur interne est survenue.")

		return
	}

	h.pages.HTML(w, r, http.StatusOK, "dashboard", "dashboard", ov)
}
