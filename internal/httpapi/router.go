package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// NewRouter mounts the report API.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "ok")
	})
	r.Route("/reports", func(rt chi.Router) {
		rt.Post("/", h.CreateReport)
		rt.Get("/", h.ListReports)
		rt.Get("/{id}", h.GetReport)
		rt.Get("/{id}/export/{format}", h.ExportReport)
	})
	return r
}
