package mistral

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK         = "ok"
	outcomeFallback   = "fallback"
	outcomeHTTPError  = "http_error"
	outcomeParseError = "parse_error"
	outcomeTransport  = "transport_error"
)

var (
	generateTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mistralbridge",
			Subsystem: "client",
			Name:      "generate_total",
			Help:      "Total number of generate calls by outcome",
		},
		[]string{"outcome"},
	)

	generateDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mistralbridge",
			Subsystem: "client",
			Name:      "generate_duration_seconds",
			Help:      "Duration of generate calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(generateTotal, generateDuration)
}

func observeGenerate(outcome string, dur time.Duration) {
	generateTotal.WithLabelValues(outcome).Inc()
	generateDuration.WithLabelValues(outcome).Observe(dur.Seconds())
}
