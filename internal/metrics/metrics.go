package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "dogfood_"

var (
	registerOnce sync.Once

	agentRequests *prometheus.CounterVec
	agentLatency  *prometheus.HistogramVec

	foodLogsCreated prometheus.Counter
)

// Init registers the service metrics with the default registry.
func Init() {
	registerOnce.Do(func() {
		agentRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "agent_requests_total",
				Help: "Total suggestion agent requests by result",
			},
			[]string{"result"},
		)
		agentLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "agent_latency_seconds",
				Help:    "Suggestion agent round-trip latency in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
			},
			[]string{"result"},
		)
		foodLogsCreated = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "food_logs_created_total",
			Help: "Total food log rows created",
		})

		prometheus.MustRegister(agentRequests, agentLatency, foodLogsCreated)
	})
}

// ObserveAgentRequest records one agent round-trip. result is "success" or
// the failure kind.
func ObserveAgentRequest(result string, duration time.Duration) {
	if result == "" {
		result = "success"
	}
	if agentRequests != nil {
		agentRequests.WithLabelValues(result).Inc()
	}
	if agentLatency != nil {
		agentLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

func IncFoodLogCreated() {
	if foodLogsCreated != nil {
		foodLogsCreated.Inc()
	}
}
