package survey

import "encoding/json"

type submitAnswerRequest struct {
	QuestionID        string          `json:"questionId" validate:"required,uuid"`
	Answer            json.RawMessage `json:"answer"`
	ClientTs          *int64          `json:"clientTs"`
	ExplanationReadAt *int64          `json:"explanationReadAt"`
}

type submitAnswerResponse struct {
	OK      bool  `json:"ok"`
	Balance int64 `json:"balance"`
}
