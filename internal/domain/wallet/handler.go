package wallet

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/coinquest/coinquest-api/internal/middleware"
	"github.com/coinquest/coinquest-api/internal/pkg/response"
)

type Handler struct {
	svc      *Service
	settings Settings
}

func NewHandler(svc *Service, settings Settings) *Handler {
	return &Handler{svc: svc, settings: settings}
}

// Get returns the derived wallet view: available and pending balances, the
// full transaction history newest-first, and the display settings.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	bal, err := h.svc.GetBalance(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, walletResponse{
		Balance:      bal.Available,
		Pending:      bal.Pending,
		Transactions: bal.Transactions,
		Settings:     h.settings,
	})
}
