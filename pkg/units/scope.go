package units

import (
	"context"
	"sync/atomic"
)

type scopeContextKey struct{}

// Scope pins the active unit system for one logical request and owns that
// request's conversion cache. It lives in the request's context.Context, so
// concurrent requests are isolated by construction; no process-wide state is
// involved. A Scope must be closed on every exit path:
//
//	ctx, scope := engine.Activate(ctx, header)
//	defer scope.Close()
type Scope struct {
	system SystemID
	parent *Scope
	cache  *conversionCache
	closed atomic.Bool
}

// System returns the unit system this scope activated.
func (s *Scope) System() SystemID { return s.system }

// Close tears the scope down and discards its cache. It is idempotent and
// must run even when the surrounding request fails or is cancelled; an
// unclosed scope pins its cache for as long as the context is referenced.
func (s *Scope) Close() {
	if s.closed.CompareAndSwap(false, true) {
		s.cache.clear()
	}
}

// ClearCache drops all memoized transforms while keeping the scope active.
func (s *Scope) ClearCache() {
	s.cache.clear()
}

// CacheSize reports the number of memoized transforms.
func (s *Scope) CacheSize() int {
	return s.cache.size()
}

// aliasHints maps commonly guessed identifiers to the supported ones so the
// fallback warning can point at the likely intent.
var aliasHints = map[SystemID]SystemID{
	"metric":  SystemSI,
	"english": SystemImperial,
	"uscs":    SystemUS,
}

// Activate makes system the active unit system for the returned context.
// Identifiers are matched case-insensitively; an unsupported identifier is
// recovered by warning and substituting the registry default, never by
// failing. Nested activation derives a child context and leaves the
// enclosing scope untouched, so returning to the parent context restores the
// prior system exactly.
func (e *Engine) Activate(ctx context.Context, system string) (context.Context, *Scope) {
	id := NormalizeSystem(system)
	if !e.registry.Supported(id) {
		args := []any{"system", system, "fallback", string(e.registry.DefaultSystem())}
		if hint, ok := aliasHints[id]; ok {
			args = append(args, "did_you_mean", string(hint))
		}
		e.logger.Warn("unknown unit system, using default", args...)
		e.observe(ctx, OpActivate, false, 0)
		id = e.registry.DefaultSystem()
	} else {
		e.observe(ctx, OpActivate, true, 0)
	}
	scope := &Scope{system: id, parent: scopeFrom(ctx), cache: newConversionCache()}
	return context.WithValue(ctx, scopeContextKey{}, scope), scope
}

// System returns the unit system visible to the calling request: the
// innermost open scope on ctx, or the registry default when none was ever
// activated. Closed scopes unwind to their enclosing scope.
func (e *Engine) System(ctx context.Context) SystemID {
	if scope := scopeFrom(ctx); scope != nil {
		return scope.system
	}
	return e.registry.DefaultSystem()
}

// scopeFrom resolves the innermost open scope. Closed scopes unwind to their
// parent, so a caller that keeps using a derived context after Close still
// observes the enclosing activation.
func scopeFrom(ctx context.Context) *Scope {
	scope, _ := ctx.Value(scopeContextKey{}).(*Scope)
	for scope != nil && scope.closed.Load() {
		scope = scope.parent
	}
	return scope
}
