package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// version stays open so health checks work without the capture token
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getAppVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/notes/", h.createNote)
		r.Get("/api/notes/", h.listNotes)
		r.Get("/api/notes/{id}", h.getNote)
		r.Get("/api/actions/", h.listActions)
		r.Post("/api/actions/{id}/done", h.completeAction)
		r.Post("/api/sync/", h.runSync)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
