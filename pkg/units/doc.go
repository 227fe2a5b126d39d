// Package units implements context-scoped physical unit conversion for API
// boundaries. Values cross the wire in a caller-selected unit system while
// everything behind the boundary computes on canonical base units.
//
// A Registry describes which concrete unit each physical dimension uses per
// unit system and which unit is canonical. An Engine converts values between
// a system's preferred units and the base units, caching the derived affine
// transforms for the lifetime of one request scope. The active system for a
// request is carried in its context.Context:
//
//	ctx, scope := engine.Activate(ctx, r.Header.Get("X-Unit-System"))
//	defer scope.Close()
//
//	pa, err := engine.ToBase(ctx, 14.7, "pressure", engine.System(ctx))
//
// Field bindings wire a (dimension, direction) pair to the two conversion
// entry points so a validation layer can run them as ingest/egress hooks.
package units
