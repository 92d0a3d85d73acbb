package survey

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns survey router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Post("/answer", h.Submit)
	return r
}
