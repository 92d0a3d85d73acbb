package payout

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the user-facing payout router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.List)
	r.Post("/withdraw", h.Withdraw)
	return r
}

// AdminRoutes returns the operator router for settling payouts
func (h *Handler) AdminRoutes(authMiddleware, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(adminOnly)
	r.Post("/users/{userID}/payouts/{payoutID}/complete", h.Complete)
	return r
}
