package units

import (
	"context"
	"fmt"
	"time"
)

// Engine converts values between a unit system's preferred units and the
// registry's base units. Conversions are pure, synchronous and in-memory;
// derived transforms are memoized in the request scope carried by ctx.
type Engine struct {
	registry  *Registry
	converter Converter
	logger    Logger
	metrics   MetricsRecorder
}

// Option adjusts engine construction.
type Option func(*Engine)

// WithConverter swaps the unit-algebra collaborator.
func WithConverter(c Converter) Option {
	return func(e *Engine) { e.converter = c }
}

// WithLogger installs a logger; *slog.Logger satisfies the interface.
func WithLogger(l Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithMetrics installs a metrics recorder for conversion observations.
func WithMetrics(m MetricsRecorder) Option {
	return func(e *Engine) { e.metrics = m }
}

// New builds an engine over the registry and verifies at construction that
// every (dimension, system) unit is convertible to its dimension's base
// unit, so dimension-inconsistent configuration fails at startup rather than
// on the first request.
func New(registry *Registry, opts ...Option) (*Engine, error) {
	if registry == nil {
		return nil, fmt.Errorf("nil registry")
	}
	e := &Engine{
		registry:  registry,
		converter: NewTableConverter(),
		logger:    noopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, dim := range registry.Dimensions() {
		base, err := registry.BaseUnitFor(dim)
		if err != nil {
			return nil, err
		}
		for _, id := range registry.Systems() {
			unit, err := registry.UnitFor(dim, id)
			if err != nil {
				return nil, err
			}
			if _, err := e.deriveSafely(dim, unit, base); err != nil {
				return nil, fmt.Errorf("dimension %q, system %q: %w", dim, id, err)
			}
		}
	}
	return e, nil
}

// Registry exposes the engine's dimension registry.
func (e *Engine) Registry() *Registry { return e.registry }

// ToBase converts value from the system's preferred unit for dimension into
// the base unit. This is the ingest direction: called before a field value
// is accepted into business logic.
func (e *Engine) ToBase(ctx context.Context, value float64, dimension string, system SystemID) (float64, error) {
	return e.convert(ctx, value, dimension, system, DirectionInput)
}

// FromBase converts value from the base unit for dimension into the system's
// preferred unit. This is the egress direction: called when a value is
// emitted.
func (e *Engine) FromBase(ctx context.Context, value float64, dimension string, system SystemID) (float64, error) {
	return e.convert(ctx, value, dimension, system, DirectionOutput)
}

func (e *Engine) convert(ctx context.Context, value float64, dimension string, system SystemID, dir Direction) (float64, error) {
	op := OpToBase
	if dir == DirectionOutput {
		op = OpFromBase
	}
	start := time.Now()

	out, err := e.convertValue(ctx, value, dimension, system, dir)
	e.observe(ctx, op, err == nil, time.Since(start))
	return out, err
}

func (e *Engine) convertValue(ctx context.Context, value float64, dimension string, system SystemID, dir Direction) (float64, error) {
	dim := NormalizeDimension(dimension)
	preferred, err := e.registry.UnitFor(dim, system)
	if err != nil {
		return 0, err
	}
	base, err := e.registry.BaseUnitFor(dim)
	if err != nil {
		return 0, err
	}
	from, to := preferred, base
	if dir == DirectionOutput {
		from, to = base, preferred
	}
	if !isFinite(value) {
		return 0, ConversionError{Dimension: dim, FromUnit: from, ToUnit: to,
			Err: fmt.Errorf("non-finite value %v", value)}
	}

	tr, err := e.transformFor(ctx, dim, system, dir, from, to)
	if err != nil {
		return 0, err
	}
	out := tr.Apply(value)
	if !isFinite(out) {
		return 0, ConversionError{Dimension: dim, FromUnit: from, ToUnit: to,
			Err: fmt.Errorf("non-finite result %v", out)}
	}
	return out, nil
}

// transformFor consults the scope cache before asking the collaborator. The
// cache is an optimization only: outputs are identical with or without it.
func (e *Engine) transformFor(ctx context.Context, dim string, system SystemID, dir Direction, from, to string) (Transform, error) {
	scope := scopeFrom(ctx)
	key := cacheKey{dimension: dim, system: NormalizeSystem(string(system)), direction: dir}
	if scope != nil {
		if tr, ok := scope.cache.get(key); ok {
			e.observe(ctx, OpCacheLookup, true, 0)
			return tr, nil
		}
		e.observe(ctx, OpCacheLookup, false, 0)
	}
	tr, err := e.deriveSafely(dim, from, to)
	if err != nil {
		return Transform{}, err
	}
	if scope != nil {
		scope.cache.put(key, tr)
	}
	return tr, nil
}

// deriveSafely probes the collaborator for the affine transform, containing
// any collaborator panic as a ConversionError.
func (e *Engine) deriveSafely(dim, from, to string) (tr Transform, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ConversionError{Dimension: dim, FromUnit: from, ToUnit: to,
				Err: fmt.Errorf("converter panic: %v", r)}
		}
	}()
	tr, derr := deriveTransform(e.converter, from, to)
	if derr != nil {
		return Transform{}, ConversionError{Dimension: dim, FromUnit: from, ToUnit: to, Err: derr}
	}
	return tr, nil
}

func (e *Engine) observe(ctx context.Context, op string, success bool, d time.Duration) {
	if e.metrics != nil {
		e.metrics.Observe(ctx, op, success, d)
	}
}
