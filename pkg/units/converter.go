package units

import (
	"errors"
	"fmt"
)

// Converter is the unit-algebra collaborator: given two unit names of the
// same physical dimension it converts a numeric value between them, or
// reports incompatibility. Implementations must be affine: the relationship
// between any two compatible units is y = a*x + b, which holds for every
// multiplicative unit and for thermometric scales.
type Converter interface {
	Convert(value float64, fromUnit, toUnit string) (float64, error)
}

// unitDef anchors a named unit to its dimension's canonical unit:
// canonical = value*scale + offset.
type unitDef struct {
	dimension string
	scale     float64
	offset    float64
}

// TableConverter resolves unit names against a static definition table.
// It is the default collaborator; deployments with an external unit-algebra
// service can swap in their own Converter.
type TableConverter struct {
	units map[string]unitDef
}

// NewTableConverter returns a converter seeded with the built-in unit
// definitions covering the default dimension catalog.
func NewTableConverter() *TableConverter {
	c := &TableConverter{units: make(map[string]unitDef, len(builtinUnits))}
	for name, def := range builtinUnits {
		c.units[name] = def
	}
	return c
}

// RegisterUnit adds a unit definition: canonical = value*scale + offset,
// where canonical is the anchor unit of the named dimension. Registering an
// existing name or a zero scale is rejected.
func (c *TableConverter) RegisterUnit(name, dimension string, scale, offset float64) error {
	if name == "" || dimension == "" {
		return errors.New("unit name and dimension required")
	}
	if scale == 0 {
		return fmt.Errorf("unit %q: zero scale", name)
	}
	if _, exists := c.units[name]; exists {
		return fmt.Errorf("unit %q already defined", name)
	}
	c.units[name] = unitDef{dimension: dimension, scale: scale, offset: offset}
	return nil
}

// Convert translates value from one named unit to another of the same
// dimension.
func (c *TableConverter) Convert(value float64, fromUnit, toUnit string) (float64, error) {
	from, ok := c.units[fromUnit]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", fromUnit)
	}
	to, ok := c.units[toUnit]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", toUnit)
	}
	if from.dimension != to.dimension {
		return 0, fmt.Errorf("incompatible units: %q (%s) and %q (%s)",
			fromUnit, from.dimension, toUnit, to.dimension)
	}
	canonical := value*from.scale + from.offset
	return (canonical - to.offset) / to.scale, nil
}

// builtinUnits anchors every unit of the default catalog to its dimension's
// SI unit. Compound names mirror the catalog strings and are opaque keys.
var builtinUnits = map[string]unitDef{
	// pressure (anchor pascal)
	"pascal":     {dimension: "pressure", scale: 1},
	"kilopascal": {dimension: "pressure", scale: 1000},
	"psi":        {dimension: "pressure", scale: 6894.757293168361},
	"barye":      {dimension: "pressure", scale: 0.1},

	// length (anchor meter)
	"meter":      {dimension: "length", scale: 1},
	"foot":       {dimension: "length", scale: 0.3048},
	"centimeter": {dimension: "length", scale: 0.01},

	// temperature (anchor kelvin)
	"kelvin": {dimension: "temperature", scale: 1},
	"degC":   {dimension: "temperature", scale: 1, offset: 273.15},
	"degF":   {dimension: "temperature", scale: 5.0 / 9.0, offset: 459.67 * 5.0 / 9.0},

	// mass (anchor kilogram)
	"kilogram": {dimension: "mass", scale: 1},
	"pound":    {dimension: "mass", scale: 0.45359237},
	"gram":     {dimension: "mass", scale: 0.001},

	// SI-identical dimensions
	"second":  {dimension: "time", scale: 1},
	"ampere":  {dimension: "current", scale: 1},
	"candela": {dimension: "luminosity", scale: 1},
	"mole":    {dimension: "substance", scale: 1},
	"hertz":   {dimension: "frequency", scale: 1},

	// area (anchor square meter)
	"meter ** 2":      {dimension: "area", scale: 1},
	"square_foot":     {dimension: "area", scale: 0.09290304},
	"centimeter ** 2": {dimension: "area", scale: 1e-4},

	// volume (anchor cubic meter)
	"meter ** 3":      {dimension: "volume", scale: 1},
	"cubic_foot":      {dimension: "volume", scale: 0.028316846592},
	"centimeter ** 3": {dimension: "volume", scale: 1e-6},
	"liter":           {dimension: "volume", scale: 0.001},

	// wavenumber (anchor reciprocal meter)
	"1 / meter":      {dimension: "wavenumber", scale: 1},
	"1 / foot":       {dimension: "wavenumber", scale: 1.0 / 0.3048},
	"1 / centimeter": {dimension: "wavenumber", scale: 100},

	// velocity (anchor meter per second; the speed dimension reuses these)
	"meter / second":      {dimension: "velocity", scale: 1},
	"foot / second":       {dimension: "velocity", scale: 0.3048},
	"centimeter / second": {dimension: "velocity", scale: 0.01},

	// volumetric flow (anchor cubic meter per second)
	"meter ** 3 / second":      {dimension: "volumetric_flow_rate", scale: 1},
	"cubic_foot / second":      {dimension: "volumetric_flow_rate", scale: 0.028316846592},
	"centimeter ** 3 / second": {dimension: "volumetric_flow_rate", scale: 1e-6},
	"liter / second":           {dimension: "volumetric_flow_rate", scale: 0.001},

	// mass flow (anchor kilogram per second)
	"kilogram / second": {dimension: "mass_flow_rate", scale: 1},
	"pound / second":    {dimension: "mass_flow_rate", scale: 0.45359237},
	"gram / second":     {dimension: "mass_flow_rate", scale: 0.001},

	// acceleration (anchor meter per second squared)
	"meter / second ** 2":      {dimension: "acceleration", scale: 1},
	"foot / second ** 2":       {dimension: "acceleration", scale: 0.3048},
	"centimeter / second ** 2": {dimension: "acceleration", scale: 0.01},

	// force (anchor newton)
	"newton":      {dimension: "force", scale: 1},
	"pound_force": {dimension: "force", scale: 4.4482216152605},
	"dyne":        {dimension: "force", scale: 1e-5},

	// energy and torque share dimensionality (anchor joule)
	"joule":           {dimension: "energy", scale: 1},
	"kilojoule":       {dimension: "energy", scale: 1000},
	"foot_pound":      {dimension: "energy", scale: 1.3558179483314004},
	"erg":             {dimension: "energy", scale: 1e-7},
	"newton * meter":  {dimension: "energy", scale: 1},
	"dyne * centimeter": {dimension: "energy", scale: 1e-7},

	// power (anchor watt)
	"watt":                {dimension: "power", scale: 1},
	"kilowatt":            {dimension: "power", scale: 1000},
	"foot_pound / second": {dimension: "power", scale: 1.3558179483314004},
	"erg / second":        {dimension: "power", scale: 1e-7},

	// momentum (anchor kilogram meter per second)
	"kilogram * meter / second": {dimension: "momentum", scale: 1},
	"pound * foot / second":     {dimension: "momentum", scale: 0.45359237 * 0.3048},
	"gram * centimeter / second": {dimension: "momentum", scale: 1e-5},

	// density (anchor kilogram per cubic meter)
	"kilogram / meter ** 3":   {dimension: "density", scale: 1},
	"pound / cubic_foot":      {dimension: "density", scale: 0.45359237 / 0.028316846592},
	"gram / centimeter ** 3":  {dimension: "density", scale: 1000},

	// dynamic viscosity (anchor pascal second)
	"pascal * second":          {dimension: "viscosity", scale: 1},
	"pound / (foot * second)":  {dimension: "viscosity", scale: 0.45359237 / 0.3048},
	"poise":                    {dimension: "viscosity", scale: 0.1},

	// kinematic viscosity (anchor square meter per second)
	"meter ** 2 / second":   {dimension: "kinematic_viscosity", scale: 1},
	"square_foot / second":  {dimension: "kinematic_viscosity", scale: 0.09290304},
	"stokes":                {dimension: "kinematic_viscosity", scale: 1e-4},
}
