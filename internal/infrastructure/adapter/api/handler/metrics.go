package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smm",
			Name:      "orders_total",
			Help:      "Order attempts by result",
		},
		[]string{"result"},
	)

	paymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smm",
			Name:      "payments_total",
			Help:      "Payment submissions and reviews by action and result",
		},
		[]string{"action", "result"},
	)

	bonusClaimsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smm",
			Name:      "bonus_claims_total",
			Help:      "Bonus claim attempts by result",
		},
		[]string{"result"},
	)
)

// outcome labels a request result for the business counters
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if statusFor(err) >= 500 {
		return "error"
	}
	return "rejected"
}
