package survey

import "errors"

var (
	// ErrQuestionNotServed rejects answers to a question that was never
	// served, or whose serve state was superseded or already consumed.
	ErrQuestionNotServed = errors.New("question not served or expired")

	// ErrTooFast rejects submissions arriving before the minimum dwell time.
	ErrTooFast = errors.New("submitted too fast")

	// ErrRateLimited rejects submissions past the hourly answer cap.
	ErrRateLimited = errors.New("answer rate limit exceeded")
)
