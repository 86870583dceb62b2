package monitoring

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AppName prefixes every metric name.
const AppName = "community_bot"

var (
	// TotalInteractions counts handled Discord interactions.
	TotalInteractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_total_interactions", AppName),
			Help: "Total number of handled interactions",
		},
		[]string{"kind", "name", "outcome"},
	)

	// InteractionDuration is the time spent inside an interaction handler.
	InteractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: fmt.Sprintf("%s_interaction_duration", AppName),
			Help: "Duration of interaction handlers",
		},
		[]string{"kind", "name"},
	)

	// HttpTotalRequests is the total number of http requests.
	HttpTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_http_total_requests", AppName),
			Help: "Total number of http requests",
		},
		[]string{"path", "method", "status_code"},
	)

	// HttpRequestDuration is the duration of the http request.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: fmt.Sprintf("%s_http_request_duration", AppName),
			Help: "Duration of the http request",
		},
		[]string{"path", "method", "status_code"},
	)

	TotalDiscordGuilds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_total_discord_guilds", AppName),
			Help: "Total number of discord guilds",
		},
	)

	// StoreLatency is the duration of record store queries.
	StoreLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: fmt.Sprintf("%s_store_latency", AppName),
			Help: "Duration of record store queries",
		},
		[]string{"backend", "store", "query"},
	)

	// StoreTotalRequests is the total number of record store queries.
	StoreTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_store_total_requests", AppName),
			Help: "Total number of record store queries",
		},
		[]string{"backend", "store", "query"},
	)
)

// ObserveStore counts a store query and returns a func that records its latency.
func ObserveStore(backend, store, query string) func() {
	StoreTotalRequests.WithLabelValues(backend, store, query).Inc()
	t := prometheus.NewTimer(StoreLatency.WithLabelValues(backend, store, query))
	return func() { t.ObserveDuration() }
}
