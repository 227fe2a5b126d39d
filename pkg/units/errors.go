package units

import "fmt"

// UnsupportedDimensionError reports a dimension key absent from the registry.
// It always indicates a programming or configuration error, never bad input.
type UnsupportedDimensionError struct {
	Dimension string
}

func (e UnsupportedDimensionError) Error() string {
	return fmt.Sprintf("unknown dimension %q", e.Dimension)
}

// UnsupportedSystemError reports a unit system identifier outside the
// registry's supported set.
type UnsupportedSystemError struct {
	System string
}

func (e UnsupportedSystemError) Error() string {
	return fmt.Sprintf("unknown unit system %q", e.System)
}

// ConversionError reports a failed numeric conversion: incompatible units,
// non-finite input, or a misbehaving converter. It is surfaced to the caller
// as a field-level failure and is never retried; conversions are
// deterministic, so the same call would fail the same way.
type ConversionError struct {
	Dimension string
	FromUnit  string
	ToUnit    string
	Err       error
}

func (e ConversionError) Error() string {
	return fmt.Sprintf("convert %s (%s -> %s): %v", e.Dimension, e.FromUnit, e.ToUnit, e.Err)
}

func (e ConversionError) Unwrap() error {
	return e.Err
}
