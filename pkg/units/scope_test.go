package units

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

// recordingLogger captures Warn calls so tests can assert the fallback
// warning is observable.
type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Info(string, ...any)  {}
func (l *recordingLogger) Error(string, ...any) {}

func (l *recordingLogger) Warn(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprint(append([]any{msg}, args...)...))
}

func (l *recordingLogger) warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.warns...)
}

func TestSystemDefaultsWhenNeverActivated(t *testing.T) {
	e := newTestEngine(t)
	if got := e.System(context.Background()); got != SystemImperial {
		t.Fatalf("System = %q, want registry default imperial", got)
	}
}

func TestActivateAndClose(t *testing.T) {
	e := newTestEngine(t)

	ctx, scope := e.Activate(context.Background(), "si")
	if scope.System() != SystemSI {
		t.Fatalf("scope system = %q", scope.System())
	}
	if got := e.System(ctx); got != SystemSI {
		t.Fatalf("System = %q, want si", got)
	}

	scope.Close()
	if got := e.System(ctx); got != SystemImperial {
		t.Fatalf("System after close = %q, want default", got)
	}

	// Close is idempotent.
	scope.Close()
}

func TestActivateIsCaseInsensitive(t *testing.T) {
	log := &recordingLogger{}
	e, err := New(NewDefaultRegistry(), WithLogger(log))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, scope := e.Activate(context.Background(), "SI")
	defer scope.Close()
	if got := e.System(ctx); got != SystemSI {
		t.Fatalf("System = %q, want si", got)
	}
	if len(log.warnings()) != 0 {
		t.Fatalf("unexpected warnings: %v", log.warnings())
	}
}

func TestActivateUnknownSystemFallsBack(t *testing.T) {
	log := &recordingLogger{}
	e, err := New(NewDefaultRegistry(), WithLogger(log))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, scope := e.Activate(context.Background(), "not_a_real_system")
	defer scope.Close()

	if got := e.System(ctx); got != SystemImperial {
		t.Fatalf("System = %q, want default imperial", got)
	}
	warns := log.warnings()
	if len(warns) != 1 {
		t.Fatalf("expected one warning, got %v", warns)
	}
}

func TestActivateUnknownSystemHintsAlias(t *testing.T) {
	log := &recordingLogger{}
	e, err := New(NewDefaultRegistry(), WithLogger(log))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, scope := e.Activate(context.Background(), "metric")
	defer scope.Close()

	warns := log.warnings()
	if len(warns) != 1 {
		t.Fatalf("expected one warning, got %v", warns)
	}
}

func TestNestedActivation(t *testing.T) {
	e := newTestEngine(t)
	root := context.Background()

	ctxA, scopeA := e.Activate(root, "si")
	ctxB, scopeB := e.Activate(ctxA, "cgs")

	if got := e.System(ctxB); got != SystemCGS {
		t.Fatalf("inner System = %q, want cgs", got)
	}
	if got := e.System(ctxA); got != SystemSI {
		t.Fatalf("outer System = %q, want si", got)
	}

	scopeB.Close()
	// The inner context unwinds to the enclosing activation.
	if got := e.System(ctxB); got != SystemSI {
		t.Fatalf("System after inner close = %q, want si", got)
	}

	scopeA.Close()
	if got := e.System(ctxB); got != SystemImperial {
		t.Fatalf("System after full unwind = %q, want default", got)
	}
	if got := e.System(root); got != SystemImperial {
		t.Fatalf("root System = %q, want default", got)
	}
}

func TestScopeCacheDiscardedOnClose(t *testing.T) {
	e := newTestEngine(t)

	ctx, scope := e.Activate(context.Background(), "imperial")
	if _, err := e.ToBase(ctx, 10, "pressure", SystemImperial); err != nil {
		t.Fatalf("ToBase: %v", err)
	}
	if scope.CacheSize() == 0 {
		t.Fatal("expected cache entry after conversion")
	}
	scope.Close()
	if scope.CacheSize() != 0 {
		t.Fatalf("cache size after close = %d", scope.CacheSize())
	}
}

func TestScopeClearCache(t *testing.T) {
	e := newTestEngine(t)

	ctx, scope := e.Activate(context.Background(), "imperial")
	defer scope.Close()

	if _, err := e.ToBase(ctx, 10, "pressure", SystemImperial); err != nil {
		t.Fatalf("ToBase: %v", err)
	}
	if _, err := e.ToBase(ctx, 10, "length", SystemImperial); err != nil {
		t.Fatalf("ToBase: %v", err)
	}
	if scope.CacheSize() != 2 {
		t.Fatalf("cache size = %d, want 2", scope.CacheSize())
	}
	scope.ClearCache()
	if scope.CacheSize() != 0 {
		t.Fatalf("cache size after clear = %d", scope.CacheSize())
	}

	// Conversions still work against the cleared cache.
	got, err := e.ToBase(ctx, 10, "pressure", SystemImperial)
	if err != nil {
		t.Fatalf("ToBase: %v", err)
	}
	approx(t, got, 68947.57, 0.01)
}

func TestConcurrentScopesAreIsolated(t *testing.T) {
	e := newTestEngine(t)
	systems := []string{"si", "imperial", "cgs", "engg_si", "us", "engg_field"}

	var wg sync.WaitGroup
	errs := make(chan error, 200)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			want := systems[i%len(systems)]
			ctx, scope := e.Activate(context.Background(), want)
			defer scope.Close()

			for j := 0; j < 50; j++ {
				if got := e.System(ctx); got != SystemID(want) {
					errs <- fmt.Errorf("goroutine %d: System = %q, want %q", i, got, want)
					return
				}
				if _, err := e.ToBase(ctx, float64(j), "length", e.System(ctx)); err != nil {
					errs <- fmt.Errorf("goroutine %d: ToBase: %v", i, err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestScopeCachesAreIsolated(t *testing.T) {
	e := newTestEngine(t)

	ctx1, scope1 := e.Activate(context.Background(), "imperial")
	defer scope1.Close()
	_, scope2 := e.Activate(context.Background(), "si")
	defer scope2.Close()

	if _, err := e.ToBase(ctx1, 1, "pressure", SystemImperial); err != nil {
		t.Fatalf("ToBase: %v", err)
	}
	if _, err := e.ToBase(ctx1, 1, "length", SystemImperial); err != nil {
		t.Fatalf("ToBase: %v", err)
	}
	if scope1.CacheSize() != 2 {
		t.Fatalf("scope1 cache size = %d, want 2", scope1.CacheSize())
	}
	if scope2.CacheSize() != 0 {
		t.Fatalf("scope2 cache size = %d, want 0", scope2.CacheSize())
	}
}
