package units

import (
	"context"
	"fmt"
)

// Direction states which way a bound field converts.
type Direction string

const (
	// DirectionInput marks a field whose wire value arrives in the active
	// system's units and is stored in base units.
	DirectionInput Direction = "input"
	// DirectionOutput marks a field stored in base units and emitted in the
	// active system's units.
	DirectionOutput Direction = "output"
)

// Binding wires one (dimension, direction) pair to the conversion entry
// points. Bindings are stateless and reusable across requests; the active
// system is resolved from ctx on every call, so one binding serves all
// concurrent requests.
type Binding struct {
	engine    *Engine
	dimension string
	direction Direction
}

// Bind validates the dimension against the registry and returns a binding a
// schema layer can attach to a field. Unknown dimensions fail here, at
// wiring time, not on the first request.
func (e *Engine) Bind(dimension string, direction Direction) (Binding, error) {
	dim := NormalizeDimension(dimension)
	if _, err := e.registry.BaseUnitFor(dim); err != nil {
		return Binding{}, err
	}
	switch direction {
	case DirectionInput, DirectionOutput:
	default:
		return Binding{}, fmt.Errorf("invalid direction %q", direction)
	}
	return Binding{engine: e, dimension: dim, direction: direction}, nil
}

// Dimension returns the bound dimension key.
func (b Binding) Dimension() string { return b.dimension }

// Direction returns the bound direction.
func (b Binding) Direction() Direction { return b.direction }

// Ingest is the input-coercion hook. Input-direction fields convert from the
// active system's unit to the base unit; Output-direction fields pass the
// raw value through unchanged.
func (b Binding) Ingest(ctx context.Context, value float64) (float64, error) {
	if b.direction == DirectionOutput {
		if !isFinite(value) {
			return 0, ConversionError{Dimension: b.dimension,
				Err: fmt.Errorf("non-finite value %v", value)}
		}
		return value, nil
	}
	return b.engine.ToBase(ctx, value, b.dimension, b.engine.System(ctx))
}

// Egress is the serialization hook. Both directions convert the stored base
// value into the active system's unit.
func (b Binding) Egress(ctx context.Context, value float64) (float64, error) {
	return b.engine.FromBase(ctx, value, b.dimension, b.engine.System(ctx))
}

// Hooks returns the two entry points as plain functions for frameworks that
// register hooks by value.
func (b Binding) Hooks() (ingest, egress func(context.Context, float64) (float64, error)) {
	return b.Ingest, b.Egress
}
