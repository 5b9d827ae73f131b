package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStorefrontMetricsExportsCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStorefrontMetrics(reg)
	m.IncCartOp("add")
	m.IncCartOp("add")
	m.IncCartOp("")
	m.IncOrder(OutcomeAccepted)
	m.ObserveSubmission(250 * time.Millisecond)
	m.SetVisitors(3)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "storefront_cart_operations_total", "op", "add"); err != nil {
		t.Fatalf("fetch cart ops: %v", err)
	} else if got != 2 {
		t.Fatalf("expected add=2, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "storefront_cart_operations_total", "op", "unknown"); err != nil || got != 1 {
		t.Fatalf("expected unknown=1, got %f (%v)", got, err)
	}
	if got, err := fetchCounterValue(mfs, "storefront_order_submissions_total", "outcome", OutcomeAccepted); err != nil || got != 1 {
		t.Fatalf("expected accepted=1, got %f (%v)", got, err)
	}

	hist := findMetricFamily(mfs, "storefront_order_submission_seconds")
	if hist == nil || hist.GetMetric()[0].GetHistogram().GetSampleSum() <= 0 {
		t.Fatalf("expected submission histogram sum > 0")
	}
	gauge := findMetricFamily(mfs, "storefront_active_visitors")
	if gauge == nil || gauge.GetMetric()[0].GetGauge().GetValue() != 3 {
		t.Fatalf("expected visitors gauge = 3")
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	m := NewStorefrontMetrics(nil)
	m.IncCartOp("add")
	m.IncOrder(OutcomeRejected)
	m.ObserveSubmission(time.Second)
	m.SetVisitors(1)

	var nilMetrics *StorefrontMetrics
	nilMetrics.IncCartOp("add")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
