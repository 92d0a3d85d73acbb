package payout

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/coinquest/coinquest-api/internal/domain/wallet"
	"github.com/coinquest/coinquest-api/internal/middleware"
	"github.com/coinquest/coinquest-api/internal/pkg/response"
	"github.com/coinquest/coinquest-api/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Withdraw handles a payout request.
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req withdrawRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	pr, err := h.svc.RequestPayout(r.Context(), userID, req.Coins, req.MTNMobile)
	if err != nil {
		switch {
		case errors.Is(err, ErrBelowMinimum):
			response.Error(w, http.StatusBadRequest, "BELOW_MINIMUM", "Amount is below the minimum withdrawal")
		case errors.Is(err, ErrInsufficientBalance):
			response.Error(w, http.StatusBadRequest, "INSUFFICIENT_BALANCE", "Insufficient balance")
		case errors.Is(err, ErrMissingPaymentInfo):
			response.Error(w, http.StatusBadRequest, "MISSING_PAYMENT_INFO", "MTN mobile number required")
		case errors.Is(err, ErrDailyLimitReached):
			response.Error(w, http.StatusBadRequest, "DAILY_LIMIT_REACHED", "Only one withdrawal per day is allowed")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, withdrawResponse{Request: pr})
}

// List returns the caller's payout history.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	payouts, err := h.svc.ListPayouts(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, listPayoutsResponse{Requests: payouts})
}

// Complete marks a pending payout as settled. Admin-only: this is the
// operator action standing in for the mobile-money transfer batch.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "invalid user id")
		return
	}
	payoutID, err := uuid.Parse(chi.URLParam(r, "payoutID"))
	if err != nil {
		response.BadRequest(w, "invalid payout id")
		return
	}

	if err := h.svc.CompletePayout(r.Context(), userID, payoutID); err != nil {
		if errors.Is(err, wallet.ErrPayoutNotFound) {
			response.NotFound(w, "payout request not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}
