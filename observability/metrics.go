package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Refresh outcomes recorded by the request pipeline.
const (
	RefreshSucceeded = "succeeded"
	RefreshFailed    = "failed"
	RefreshShared    = "shared"
)

// ClientMetrics counts what the request pipeline does on the wire.
type ClientMetrics struct {
	requestsTotal *prometheus.CounterVec
	refreshTotal  *prometheus.CounterVec
	retriesTotal  prometheus.Counter
}

// NewClientMetrics registers the client collectors on reg.
// A nil registerer keeps the collectors unregistered, which is what tests usually want.
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	m := &ClientMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chat_client_requests_total",
				Help: "Total number of HTTP requests sent to the chat service.",
			},
			[]string{"method", "status"},
		),
		refreshTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chat_client_token_refresh_total",
				Help: "Access token refresh attempts by outcome.",
			},
			[]string{"outcome"},
		),
		retriesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "chat_client_request_retries_total",
				Help: "Requests re-issued after an authorization failure.",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.requestsTotal, m.refreshTotal, m.retriesTotal)
	}
	return m
}

// ObserveRequest records one round trip. Status 0 means no response was received.
func (m *ClientMetrics) ObserveRequest(method string, status int) {
	m.requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (m *ClientMetrics) ObserveRefresh(outcome string) {
	m.refreshTotal.WithLabelValues(outcome).Inc()
}

func (m *ClientMetrics) ObserveRetry() {
	m.retriesTotal.Inc()
}

// RefreshCount returns how many refreshes ended with outcome.
func (m *ClientMetrics) RefreshCount(outcome string) float64 {
	return counterValue(m.refreshTotal.WithLabelValues(outcome))
}

func (m *ClientMetrics) RetryCount() float64 {
	return counterValue(m.retriesTotal)
}
