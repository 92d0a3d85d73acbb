package wallet

// Settings is the process-wide display configuration exposed to the UI.
// coin_to_currency is display-only; ledger math is coin-denominated.
type Settings struct {
	CoinToCurrency   int64 `json:"coin_to_currency"`
	MinWithdrawCoins int64 `json:"min_withdraw_coins"`
}

type walletResponse struct {
	Balance      int64         `json:"balance"`
	Pending      int64         `json:"pending"`
	Transactions []Transaction `json:"transactions"`
	Settings     Settings      `json:"settings"`
}
