package survey

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

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

// Submit handles an answer submission and returns the new available balance.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req submitAnswerRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		response.BadRequest(w, "invalid questionId")
		return
	}

	var meta *AnswerMeta
	if req.ClientTs != nil || req.ExplanationReadAt != nil {
		meta = &AnswerMeta{ClientTs: req.ClientTs, ExplanationReadAt: req.ExplanationReadAt}
	}

	balance, err := h.svc.SubmitAnswer(r.Context(), userID, questionID, req.Answer, meta)
	if err != nil {
		switch {
		case errors.Is(err, ErrQuestionNotServed):
			response.Error(w, http.StatusBadRequest, "QUESTION_NOT_SERVED", "Question not served or expired")
		case errors.Is(err, ErrTooFast):
			response.Error(w, http.StatusTooManyRequests, "TOO_FAST", "Too fast. Please read the explanation before confirming.")
		case errors.Is(err, ErrRateLimited):
			response.Error(w, http.StatusTooManyRequests, "RATE_LIMITED", "Rate limit exceeded. Try again later.")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, submitAnswerResponse{OK: true, Balance: balance})
}
