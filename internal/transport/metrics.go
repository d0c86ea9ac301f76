package transport

import "github.com/prometheus/client_golang/prometheus"

var (
	busSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "maumau_client_bus_sessions",
			Help: "Current number of live broker sessions.",
		},
	)
	busSubscriptions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "maumau_client_bus_subscriptions",
			Help: "Current number of active topic subscriptions.",
		},
	)
	busMessagesReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "maumau_client_bus_messages_received_total",
			Help: "Total messages received on subscribed topics.",
		},
	)
	busMessagesPublished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "maumau_client_bus_messages_published_total",
			Help: "Total messages published to the broker.",
		},
	)
)

func init() {
	prometheus.MustRegister(busSessions, busSubscriptions, busMessagesReceived, busMessagesPublished)
}

func incSessions() {
	busSessions.Inc()
}

func decSessions() {
	busSessions.Dec()
}

func incSubscriptions() {
	busSubscriptions.Inc()
}

func decSubscriptions() {
	busSubscriptions.Dec()
}

func addReceived(count int) {
	busMessagesReceived.Add(float64(count))
}

func addPublished(count int) {
	busMessagesPublished.Add(float64(count))
}
