package units

import (
	"fmt"
	"math"
)

// Transform is a reusable affine unit conversion: out = value*Scale + Offset.
// It is the artifact the request cache stores, so a hit stays correct for
// offset-bearing conversions (temperature scales) across differing inputs.
type Transform struct {
	Scale  float64
	Offset float64
}

// Apply converts a value through the transform.
func (t Transform) Apply(value float64) float64 {
	return value*t.Scale + t.Offset
}

// Invert returns the inverse transform.
func (t Transform) Invert() Transform {
	return Transform{Scale: 1 / t.Scale, Offset: -t.Offset / t.Scale}
}

// deriveTransform recovers the affine map between two units by probing the
// collaborator at 0 and 1. Valid for any affine converter, which is the
// Converter contract.
func deriveTransform(c Converter, fromUnit, toUnit string) (Transform, error) {
	if fromUnit == toUnit {
		return Transform{Scale: 1}, nil
	}
	offset, err := c.Convert(0, fromUnit, toUnit)
	if err != nil {
		return Transform{}, err
	}
	one, err := c.Convert(1, fromUnit, toUnit)
	if err != nil {
		return Transform{}, err
	}
	scale := one - offset
	if scale == 0 || !isFinite(scale) || !isFinite(offset) {
		return Transform{}, fmt.Errorf("degenerate conversion %q -> %q (scale %v, offset %v)",
			fromUnit, toUnit, scale, offset)
	}
	return Transform{Scale: scale, Offset: offset}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
