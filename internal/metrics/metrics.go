package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnswersAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "answers_accepted_total",
			Help: "Total accepted survey answers",
		},
	)
	AnswersRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "answers_rejected_total",
			Help: "Total rejected survey answers",
		},
		[]string{"reason"}, // not_served|too_fast|rate_limited
	)

	PayoutsRequested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payouts_requested_total",
			Help: "Total accepted payout requests",
		},
	)
	PayoutsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payouts_rejected_total",
			Help: "Total rejected payout requests",
		},
		[]string{"reason"}, // below_minimum|insufficient_balance|missing_payment_info|daily_limit
	)
	PayoutsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payouts_completed_total",
			Help: "Total payouts marked completed",
		},
	)

	CoinsCredited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coins_credited_total",
			Help: "Total coins credited to wallets",
		},
	)
)

// Handler serves the /metrics endpoint
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(AnswersAccepted)
	prometheus.MustRegister(AnswersRejected)
	prometheus.MustRegister(PayoutsRequested)
	prometheus.MustRegister(PayoutsRejected)
	prometheus.MustRegister(PayoutsCompleted)
	prometheus.MustRegister(CoinsCredited)
}
