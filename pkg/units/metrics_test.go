package units

import (
	"context"
	"testing"
	"time"
)

func TestExpvarMetricsRecorder(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	if rec.Name() == "" {
		t.Fatal("expected generated expvar name")
	}

	ctx := context.Background()
	rec.Observe(ctx, OpToBase, true, 2*time.Millisecond)
	rec.Observe(ctx, OpToBase, true, 3*time.Millisecond)
	rec.Observe(ctx, OpToBase, false, time.Millisecond)
	rec.Observe(ctx, OpCacheLookup, true, 0)

	snap := rec.Snapshot()
	toBase := snap.Operations[OpToBase]
	if toBase.OK != 2 || toBase.Failed != 1 {
		t.Fatalf("to_base stats = %+v", toBase)
	}
	approx(t, toBase.DurationMS, 6, 1e-9)
	if snap.Operations[OpCacheLookup].OK != 1 {
		t.Fatalf("cache_lookup stats = %+v", snap.Operations[OpCacheLookup])
	}
	if snap.RecordedAt.IsZero() {
		t.Fatal("snapshot missing timestamp")
	}

	// Snapshot is a copy.
	snap.Operations[OpToBase] = OpStats{}
	if rec.Snapshot().Operations[OpToBase].OK != 2 {
		t.Fatal("snapshot mutation leaked into recorder")
	}
}

func TestEngineReportsMetrics(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	e := newTestEngine(t, WithMetrics(rec))

	ctx, scope := e.Activate(context.Background(), "imperial")
	defer scope.Close()

	if _, err := e.ToBase(ctx, 10, "pressure", SystemImperial); err != nil {
		t.Fatalf("ToBase: %v", err)
	}
	if _, err := e.ToBase(ctx, 20, "pressure", SystemImperial); err != nil {
		t.Fatalf("ToBase: %v", err)
	}
	if _, err := e.ToBase(ctx, 1, "charm", SystemImperial); err == nil {
		t.Fatal("expected unknown dimension error")
	}
	if _, err := e.FromBase(ctx, 101325, "pressure", SystemImperial); err != nil {
		t.Fatalf("FromBase: %v", err)
	}

	snap := rec.Snapshot()
	if got := snap.Operations[OpActivate]; got.OK != 1 {
		t.Fatalf("activate stats = %+v", got)
	}
	if got := snap.Operations[OpToBase]; got.OK != 2 || got.Failed != 1 {
		t.Fatalf("to_base stats = %+v", got)
	}
	if got := snap.Operations[OpFromBase]; got.OK != 1 {
		t.Fatalf("from_base stats = %+v", got)
	}
	lookups := snap.Operations[OpCacheLookup]
	if lookups.OK != 1 || lookups.Failed != 2 {
		t.Fatalf("cache_lookup stats = %+v", lookups)
	}
}
