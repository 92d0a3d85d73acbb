package question

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns question router. The next-question endpoint is public;
// optionalAuth attaches the user id when a token is present.
func (h *Handler) Routes(optionalAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.With(optionalAuth).Get("/next", h.Next)
	return r
}
