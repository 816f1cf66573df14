package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OrderMetrics contadores del motor de órdenes para Prometheus.
type OrderMetrics struct {
	OrdersCreated     prometheus.Counter
	OrdersCancelled   prometheus.Counter
	InsufficientStock prometheus.Counter
	CreateLatencyMS   prometheus.Histogram
}

// NewOrderMetrics registra y devuelve las métricas del motor de órdenes.
// service se normaliza a un subsistema válido de Prometheus (sin guiones).
func NewOrderMetrics(service string) *OrderMetrics {
	service = strings.ReplaceAll(service, "-", "_")
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pos",
		Subsystem: service,
		Name:      "orders_created_total",
		Help:      "Órdenes creadas con éxito.",
	})
	cancelled := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pos",
		Subsystem: service,
		Name:      "orders_cancelled_total",
		Help:      "Órdenes canceladas (compensadas).",
	})
	insufficient := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pos",
		Subsystem: service,
		Name:      "orders_insufficient_stock_total",
		Help:      "Checkouts rechazados por stock insuficiente.",
	})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pos",
		Subsystem: service,
		Name:      "order_create_duration_ms",
		Help:      "Latencia de creación de órdenes en milisegundos.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})

	prometheus.MustRegister(created, cancelled, insufficient, latency)
	return &OrderMetrics{
		OrdersCreated:     created,
		OrdersCancelled:   cancelled,
		InsufficientStock: insufficient,
		CreateLatencyMS:   latency,
	}
}

// Handler devuelve el handler HTTP estándar de Prometheus para /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
