package wallet

import "errors"

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrPayoutNotFound = errors.New("payout request not found")
)
