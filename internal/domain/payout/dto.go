package payout

import "github.com/coinquest/coinquest-api/internal/domain/wallet"

type withdrawRequest struct {
	Coins     int64  `json:"coins" validate:"required,gt=0"`
	MTNMobile string `json:"mtn_mobile"`
}

type withdrawResponse struct {
	Request *wallet.PayoutRequest `json:"request"`
}

type listPayoutsResponse struct {
	Requests []wallet.PayoutRequest `json:"requests"`
}
