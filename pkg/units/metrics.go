package units

import (
	"context"
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Engine operations reported to a MetricsRecorder.
const (
	OpToBase      = "to_base"
	OpFromBase    = "from_base"
	OpActivate    = "activate"
	OpCacheLookup = "cache_lookup"
)

// MetricsRecorder receives one observation per engine operation. For
// OpCacheLookup, success means a cache hit.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

var expvarSeq uint64

// ExpvarMetricsRecorder aggregates per-operation counters and total duration
// and publishes them via expvar, for deployments that want process-local
// metrics without an external scrape target.
type ExpvarMetricsRecorder struct {
	name string
	mu   sync.Mutex
	ops  map[string]*OpStats
}

// OpStats aggregates outcomes for one operation.
type OpStats struct {
	OK         int64   `json:"ok"`
	Failed     int64   `json:"failed"`
	DurationMS float64 `json:"duration_ms_total"`
}

// ExpvarMetricsSnapshot is a read-only copy of the aggregated counters.
type ExpvarMetricsSnapshot struct {
	Operations map[string]OpStats `json:"operations"`
	RecordedAt time.Time          `json:"recorded_at"`
}

// NewExpvarMetricsRecorder constructs a recorder and publishes it under the
// supplied expvar name; an empty name gets a unique one.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		name = fmt.Sprintf("unitglass_engine_metrics_%d", atomic.AddUint64(&expvarSeq, 1))
	}
	rec := &ExpvarMetricsRecorder{name: name, ops: make(map[string]*OpStats)}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// Observe implements MetricsRecorder.
func (r *ExpvarMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.ops[operation]
	if !ok {
		stats = &OpStats{}
		r.ops[operation] = stats
	}
	if success {
		stats.OK++
	} else {
		stats.Failed++
	}
	stats.DurationMS += float64(duration) / float64(time.Millisecond)
}

// Snapshot returns a copy of the aggregated counters.
func (r *ExpvarMetricsRecorder) Snapshot() ExpvarMetricsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := ExpvarMetricsSnapshot{
		Operations: make(map[string]OpStats, len(r.ops)),
		RecordedAt: time.Now().UTC(),
	}
	for op, stats := range r.ops {
		out.Operations[op] = *stats
	}
	return out
}
