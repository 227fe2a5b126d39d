package observe

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"unitglass/pkg/units"
)

func TestRecorderSatisfiesMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(reg)
	if err != nil {
		t.Fatalf("NewPrometheusRecorder: %v", err)
	}
	var _ units.MetricsRecorder = rec
}

func TestObserveCountsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(reg)
	if err != nil {
		t.Fatalf("NewPrometheusRecorder: %v", err)
	}

	ctx := context.Background()
	rec.Observe(ctx, units.OpToBase, true, 2*time.Millisecond)
	rec.Observe(ctx, units.OpToBase, true, 3*time.Millisecond)
	rec.Observe(ctx, units.OpToBase, false, time.Millisecond)
	rec.Observe(ctx, units.OpActivate, true, time.Microsecond)
	rec.Observe(ctx, "", true, time.Millisecond)

	if got := testutil.ToFloat64(rec.operations.WithLabelValues(units.OpToBase, "success")); got != 2 {
		t.Fatalf("to_base success: got %v want 2", got)
	}
	if got := testutil.ToFloat64(rec.operations.WithLabelValues(units.OpToBase, "error")); got != 1 {
		t.Fatalf("to_base error: got %v want 1", got)
	}
	if got := testutil.ToFloat64(rec.operations.WithLabelValues(units.OpActivate, "success")); got != 1 {
		t.Fatalf("activate success: got %v want 1", got)
	}
}

func TestObserveDrivenByEngine(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(reg)
	if err != nil {
		t.Fatalf("NewPrometheusRecorder: %v", err)
	}

	engine, err := units.New(units.NewDefaultRegistry(), units.WithMetrics(rec))
	if err != nil {
		t.Fatalf("New engine: %v", err)
	}

	ctx, scope := engine.Activate(context.Background(), "imperial")
	defer scope.Close()
	if _, err := engine.ToBase(ctx, 10, "pressure", engine.System(ctx)); err != nil {
		t.Fatalf("ToBase: %v", err)
	}

	if got := testutil.ToFloat64(rec.operations.WithLabelValues(units.OpToBase, "success")); got != 1 {
		t.Fatalf("to_base success: got %v want 1", got)
	}
	if got := testutil.ToFloat64(rec.operations.WithLabelValues(units.OpActivate, "success")); got != 1 {
		t.Fatalf("activate success: got %v want 1", got)
	}
}

func TestDuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheusRecorder(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPrometheusRecorder(reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
