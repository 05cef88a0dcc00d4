package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		paymentsTotal,
		paymentsRevenueTotal,
		refundsTotal,
		trialRejectionsTotal,
	)
}

var (
	paymentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_total",
			Help: "Charges by outcome (succeeded/failed).",
		},
		[]string{"outcome"},
	)

	paymentsRevenueTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_revenue_total",
			Help: "The total monetary value of successful charges, labeled by currency.",
		},
		[]string{"currency"},
	)

	refundsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "refunds_total",
			Help: "Refunds issued (validation charges and below-threshold orders).",
		},
	)

	trialRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trial_rejections_total",
			Help: "Checkouts rejected because the card already consumed its trial.",
		},
	)
)

func IncPayment(outcome string) {
	paymentsTotal.WithLabelValues(norm(outcome)).Inc()
}

func AddPaymentRevenue(currency string, amount int64) {
	paymentsRevenueTotal.WithLabelValues(norm(currency)).Add(float64(amount))
}

func IncRefund() { refundsTotal.Inc() }

func IncTrialRejection() { trialRejectionsTotal.Inc() }
