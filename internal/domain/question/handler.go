package question

import (
	"net/http"

	"github.com/coinquest/coinquest-api/internal/middleware"
	"github.com/coinquest/coinquest-api/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

// nextQuestionView is the served shape: status and catalog bookkeeping stay
// server-side.
type nextQuestionView struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Explanation string `json:"explanation"`
	Metadata    *Meta  `json:"metadata,omitempty"`
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List returns the servable catalog.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	pool, err := h.svc.ActiveQuestions(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	views := make([]nextQuestionView, 0, len(pool))
	for _, q := range pool {
		views = append(views, nextQuestionView{
			ID:          q.ID.String(),
			Text:        q.Text,
			Explanation: q.Explanation,
			Metadata:    q.Metadata,
		})
	}
	response.OK(w, map[string]interface{}{"questions": views})
}

// Next serves the next question. Works for guests too; only authenticated
// users get their serve cursor stamped.
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	q, err := h.svc.NextQuestion(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}
	if q == nil {
		response.OK(w, map[string]interface{}{"question": nil})
		return
	}

	response.OK(w, map[string]interface{}{"question": nextQuestionView{
		ID:          q.ID.String(),
		Text:        q.Text,
		Explanation: q.Explanation,
		Metadata:    q.Metadata,
	}})
}
