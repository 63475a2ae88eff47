package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ToolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openmarkets_tool_calls_total",
			Help: "Total number of MCP tool and REST calls",
		},
		[]string{"tool", "status"}, // status: ok|unavailable|error
	)

	ToolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "openmarkets_tool_duration_seconds",
			Help:    "Tool call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"tool"},
	)

	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openmarkets_upstream_requests_total",
			Help: "Requests sent to the market data provider",
		},
		[]string{"endpoint", "status"},
	)

	QuoteCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openmarkets_quote_cache_lookups_total",
			Help: "Quote cache lookups by result",
		},
		[]string{"result"}, // hit|miss|error
	)
)

// Registry holds the service collectors plus Go and process metrics.
var Registry = prometheus.NewRegistry()

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		Registry.MustRegister(ToolCalls)
		Registry.MustRegister(ToolDuration)
		Registry.MustRegister(UpstreamRequests)
		Registry.MustRegister(QuoteCacheLookups)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveTool(tool, status string, started time.Time) {
	ToolCalls.WithLabelValues(tool, status).Inc()
	ToolDuration.WithLabelValues(tool).Observe(time.Since(started).Seconds())
}

// ObserveUpstream records one provider round trip. A zero status means the
// request never got a response.
func ObserveUpstream(endpoint string, status int) {
	label := "transport_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	UpstreamRequests.WithLabelValues(endpoint, label).Inc()
}

func ObserveCache(result string) {
	QuoteCacheLookups.WithLabelValues(result).Inc()
}
