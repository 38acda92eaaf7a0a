package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "edge_relay"

// Resultados usados nos labels "outcome"
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

var (
	// HTTPRequestDuration mede a latência das requisições por rota
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms a ~4s
		},
		[]string{"method", "path", "status"},
	)

	// UpstreamCallDuration mede chamadas ao Turnstile e ao Resend
	UpstreamCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_call_duration_seconds",
			Help:      "Outbound provider call duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms a ~10s
		},
		[]string{"provider", "outcome"},
	)

	// ContactRelays conta mensagens de contato por resultado
	ContactRelays = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_relays_total",
			Help:      "Contact form submissions by outcome",
		},
		[]string{"outcome"},
	)

	// EstimatorVerdicts conta vereditos emitidos pelo estimador
	EstimatorVerdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimator_verdicts_total",
			Help:      "Tonight estimator verdicts",
		},
		[]string{"verdict"},
	)
)

// RecordHTTPRequest registra a latência de uma requisição
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

// RecordUpstreamCall registra a latência de uma chamada externa
func RecordUpstreamCall(provider, outcome string, duration time.Duration) {
	UpstreamCallDuration.WithLabelValues(provider, outcome).Observe(duration.Seconds())
}

// IncContactRelay incrementa o contador de relays
func IncContactRelay(outcome string) {
	ContactRelays.WithLabelValues(outcome).Inc()
}

// IncVerdict incrementa o contador de vereditos
func IncVerdict(verdict string) {
	EstimatorVerdicts.WithLabelValues(verdict).Inc()
}

// Handler expõe as métricas no formato Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}
