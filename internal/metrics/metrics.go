package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ticks_total", Help: "Order books seen per symbol"},
		[]string{"symbol"},
	)
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "orders_total", Help: "Orders proposed by the agent"},
		[]string{"symbol", "side"},
	)
	FillsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fills_total", Help: "Paper fills executed"},
		[]string{"symbol", "side"},
	)
	RejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "orders_rejected_total", Help: "Order batches dropped by the position limit check"},
		[]string{"symbol"},
	)
	PolicyFaultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "policy_faults_total", Help: "Policies that panicked while deciding"},
		[]string{"symbol"},
	)
	TruncationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "telemetry_truncations_total", Help: "Free-text telemetry fields cut to fit the line budget"},
		[]string{"field"},
	)
	TelemetryBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "telemetry_line_bytes",
			Help:    "Size of the emitted telemetry line",
			Buckets: prometheus.LinearBuckets(500, 500, 8),
		},
	)
)

func init() {
	prometheus.MustRegister(TicksTotal, OrdersTotal, FillsTotal, RejectedTotal, PolicyFaultsTotal, TruncationsTotal, TelemetryBytes)
}

// Side labels an order or fill quantity as buy or sell.
func Side(quantity int) string {
	if quantity < 0 {
		return "sell"
	}
	return "buy"
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
