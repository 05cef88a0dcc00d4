package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		ordersDispatchedTotal,
		dispatchFailuresTotal,
		webhookEventsTotal,
	)
}

var (
	ordersDispatchedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_dispatched_total",
			Help: "Orders accepted by the upstream provider, labeled by platform.",
		},
		[]string{"platform"},
	)

	dispatchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_dispatch_failures_total",
			Help: "Dispatch attempts that failed, labeled by reason.",
		},
		[]string{"reason"},
	)

	webhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Processor webhook deliveries, labeled by outcome (promoted/duplicate/ignored/invalid).",
		},
		[]string{"outcome"},
	)
)

func IncOrderDispatched(platform string) {
	ordersDispatchedTotal.WithLabelValues(norm(platform)).Inc()
}

func IncDispatchFailure(reason string) {
	dispatchFailuresTotal.WithLabelValues(norm(reason)).Inc()
}

func IncWebhookEvent(outcome string) {
	webhookEventsTotal.WithLabelValues(norm(outcome)).Inc()
}
