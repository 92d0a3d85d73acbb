package payout

import "errors"

var (
	ErrBelowMinimum        = errors.New("amount below minimum withdrawal")
	ErrInsufficientBalance = errors.New("insufficient available balance")
	ErrMissingPaymentInfo  = errors.New("missing or malformed mobile number")
	ErrDailyLimitReached   = errors.New("daily withdrawal limit reached")
)
