// Package metrics exposes Prometheus instruments for the pricing service.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/salestax/internal/calculator"
)

const namespace = "salestax"

// Metrics holds the service's collectors. A nil *Metrics records nothing.
type Metrics struct {
	BillsPriced        prometheus.Counter
	ItemsPriced        prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	BillTax            prometheus.Histogram
	RPCDuration        *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers the collectors with reg.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		BillsPriced: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_priced_total",
			Help:      "Bills successfully priced.",
		}),
		ItemsPriced: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "line_items_priced_total",
			Help:      "Line items across all priced bills.",
		}),
		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Rejected pricing requests by error kind.",
		}, []string{"kind"}),
		BillTax: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bill_tax_amount",
			Help:      "Sales tax collected per bill, in currency units.",
			Buckets:   []float64{0, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		}),
		RPCDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure and result code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
		gatherer: reg,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveBill records a successfully priced bill.
func (m *Metrics) ObserveBill(bill *calculator.Bill) {
	if m == nil {
		return
	}
	m.BillsPriced.Inc()
	m.ItemsPriced.Add(float64(bill.Len()))
	m.BillTax.Observe(bill.TaxSum().InexactFloat64())
}

// ObserveValidationError records a rejected request.
func (m *Metrics) ObserveValidationError(err error) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(errorKind(err)).Inc()
}

// ObserveRPC records the latency of one call.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.RPCDuration.WithLabelValues(procedure, code).Observe(d.Seconds())
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, calculator.ErrInvalidType):
		return "invalid_type"
	case errors.Is(err, calculator.ErrInvalidValue):
		return "invalid_value"
	default:
		return "other"
	}
}
