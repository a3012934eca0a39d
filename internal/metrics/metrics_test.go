package metrics

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/salestax/internal/calculator"
)

func TestObserveBill(t *testing.T) {
	m := New(prometheus.NewRegistry())

	for _, bill := range calculator.SampleBills() {
		m.ObserveBill(bill)
	}

	if got := testutil.ToFloat64(m.BillsPriced); got != 3 {
		t.Errorf("bills_priced_total = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.ItemsPriced); got != 9 {
		t.Errorf("line_items_priced_total = %v, want 9", got)
	}
	if got := testutil.CollectAndCount(m.BillTax); got != 1 {
		t.Errorf("bill_tax_amount series = %d, want 1", got)
	}
}

func TestObserveValidationError(t *testing.T) {
	m := New(prometheus.NewRegistry())

	_, err := calculator.NewBill(nil)
	m.ObserveValidationError(err)
	m.ObserveValidationError(fmt.Errorf("wrapped: %w", calculator.ErrInvalidType))
	m.ObserveValidationError(fmt.Errorf("boom"))

	tests := []struct {
		kind string
		want float64
	}{
		{"invalid_value", 1},
		{"invalid_type", 1},
		{"other", 1},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(m.ValidationFailures.WithLabelValues(tt.kind)); got != tt.want {
			t.Errorf("validation_failures_total{kind=%q} = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveBill(calculator.SampleBills()[0])
	m.ObserveValidationError(calculator.ErrInvalidType)
	m.ObserveRPC("/x", "ok", time.Millisecond)
}

func TestHandler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveRPC("/salestax.v1.PricingService/PriceBill", "ok", 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "salestax_rpc_duration_seconds") {
		t.Error("expected rpc duration series in exposition output")
	}
}
