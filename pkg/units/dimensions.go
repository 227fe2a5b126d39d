package units

import "strings"

// SystemID identifies a named bundle of unit choices, one concrete unit per
// dimension. Identifiers are lowercase; NormalizeSystem folds caller input.
type SystemID string

// Unit systems shipped with the default catalog.
const (
	SystemSI        SystemID = "si"
	SystemEnggSI    SystemID = "engg_si"
	SystemImperial  SystemID = "imperial"
	SystemUS        SystemID = "us"
	SystemCGS       SystemID = "cgs"
	SystemEnggField SystemID = "engg_field"
)

// SystemUnits maps a unit system to the concrete unit it uses for one dimension.
type SystemUnits map[SystemID]string

// Table maps dimension keys to their per-system units. Keys are canonical
// lowercase snake_case; NewRegistry normalizes them on ingestion.
type Table map[string]SystemUnits

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	cp := make(Table, len(t))
	for dim, systems := range t {
		su := make(SystemUnits, len(systems))
		for id, unit := range systems {
			su[id] = unit
		}
		cp[dim] = su
	}
	return cp
}

// NormalizeDimension folds a dimension key to its canonical form: lowercase
// with spaces collapsed to underscores, so "Mass Flow Rate", "MASS_FLOW_RATE"
// and "mass_flow_rate" all address the same entry.
func NormalizeDimension(key string) string {
	key = strings.TrimSpace(strings.ToLower(key))
	return strings.Join(strings.Fields(strings.ReplaceAll(key, "_", " ")), "_")
}

// NormalizeSystem folds a unit system identifier to lowercase.
func NormalizeSystem(id string) SystemID {
	return SystemID(strings.ToLower(strings.TrimSpace(id)))
}

// DefaultTable returns the built-in dimension catalog covering the common
// engineering dimensions across the six shipped unit systems. Base units are
// SI; temperature is stored in kelvin so the base column is offset-free.
func DefaultTable() Table {
	return Table{
		"pressure": {
			SystemSI: "pascal", SystemEnggSI: "kilopascal",
			SystemImperial: "psi", SystemUS: "psi",
			SystemCGS: "barye", SystemEnggField: "psi",
		},
		"length": {
			SystemSI: "meter", SystemEnggSI: "meter",
			SystemImperial: "foot", SystemUS: "foot",
			SystemCGS: "centimeter", SystemEnggField: "foot",
		},
		"temperature": {
			SystemSI: "kelvin", SystemEnggSI: "degC",
			SystemImperial: "degF", SystemUS: "degF",
			SystemCGS: "degC", SystemEnggField: "degF",
		},
		"mass": {
			SystemSI: "kilogram", SystemEnggSI: "kilogram",
			SystemImperial: "pound", SystemUS: "pound",
			SystemCGS: "gram", SystemEnggField: "pound",
		},
		"time": {
			SystemSI: "second", SystemEnggSI: "second",
			SystemImperial: "second", SystemUS: "second",
			SystemCGS: "second", SystemEnggField: "second",
		},
		"current": {
			SystemSI: "ampere", SystemEnggSI: "ampere",
			SystemImperial: "ampere", SystemUS: "ampere",
			SystemCGS: "ampere", SystemEnggField: "ampere",
		},
		"luminosity": {
			SystemSI: "candela", SystemEnggSI: "candela",
			SystemImperial: "candela", SystemUS: "candela",
			SystemCGS: "candela", SystemEnggField: "candela",
		},
		"substance": {
			SystemSI: "mole", SystemEnggSI: "mole",
			SystemImperial: "mole", SystemUS: "mole",
			SystemCGS: "mole", SystemEnggField: "mole",
		},
		"area": {
			SystemSI: "meter ** 2", SystemEnggSI: "meter ** 2",
			SystemImperial: "square_foot", SystemUS: "square_foot",
			SystemCGS: "centimeter ** 2", SystemEnggField: "square_foot",
		},
		"volume": {
			SystemSI: "meter ** 3", SystemEnggSI: "liter",
			SystemImperial: "cubic_foot", SystemUS: "cubic_foot",
			SystemCGS: "centimeter ** 3", SystemEnggField: "cubic_foot",
		},
		"frequency": {
			SystemSI: "hertz", SystemEnggSI: "hertz",
			SystemImperial: "hertz", SystemUS: "hertz",
			SystemCGS: "hertz", SystemEnggField: "hertz",
		},
		"wavenumber": {
			SystemSI: "1 / meter", SystemEnggSI: "1 / meter",
			SystemImperial: "1 / foot", SystemUS: "1 / foot",
			SystemCGS: "1 / centimeter", SystemEnggField: "1 / foot",
		},
		"velocity": {
			SystemSI: "meter / second", SystemEnggSI: "meter / second",
			SystemImperial: "foot / second", SystemUS: "foot / second",
			SystemCGS: "centimeter / second", SystemEnggField: "foot / second",
		},
		"speed": {
			SystemSI: "meter / second", SystemEnggSI: "meter / second",
			SystemImperial: "foot / second", SystemUS: "foot / second",
			SystemCGS: "centimeter / second", SystemEnggField: "foot / second",
		},
		"volumetric_flow_rate": {
			SystemSI: "meter ** 3 / second", SystemEnggSI: "liter / second",
			SystemImperial: "cubic_foot / second", SystemUS: "cubic_foot / second",
			SystemCGS: "centimeter ** 3 / second", SystemEnggField: "cubic_foot / second",
		},
		"mass_flow_rate": {
			SystemSI: "kilogram / second", SystemEnggSI: "kilogram / second",
			SystemImperial: "pound / second", SystemUS: "pound / second",
			SystemCGS: "gram / second", SystemEnggField: "pound / second",
		},
		"acceleration": {
			SystemSI: "meter / second ** 2", SystemEnggSI: "meter / second ** 2",
			SystemImperial: "foot / second ** 2", SystemUS: "foot / second ** 2",
			SystemCGS: "centimeter / second ** 2", SystemEnggField: "foot / second ** 2",
		},
		"force": {
			SystemSI: "newton", SystemEnggSI: "newton",
			SystemImperial: "pound_force", SystemUS: "pound_force",
			SystemCGS: "dyne", SystemEnggField: "pound_force",
		},
		"energy": {
			SystemSI: "joule", SystemEnggSI: "kilojoule",
			SystemImperial: "foot_pound", SystemUS: "foot_pound",
			SystemCGS: "erg", SystemEnggField: "foot_pound",
		},
		"power": {
			SystemSI: "watt", SystemEnggSI: "kilowatt",
			SystemImperial: "foot_pound / second", SystemUS: "foot_pound / second",
			SystemCGS: "erg / second", SystemEnggField: "foot_pound / second",
		},
		"momentum": {
			SystemSI: "kilogram * meter / second", SystemEnggSI: "kilogram * meter / second",
			SystemImperial: "pound * foot / second", SystemUS: "pound * foot / second",
			SystemCGS: "gram * centimeter / second", SystemEnggField: "pound * foot / second",
		},
		"density": {
			SystemSI: "kilogram / meter ** 3", SystemEnggSI: "kilogram / meter ** 3",
			SystemImperial: "pound / cubic_foot", SystemUS: "pound / cubic_foot",
			SystemCGS: "gram / centimeter ** 3", SystemEnggField: "pound / cubic_foot",
		},
		"torque": {
			SystemSI: "newton * meter", SystemEnggSI: "newton * meter",
			SystemImperial: "foot_pound", SystemUS: "foot_pound",
			SystemCGS: "dyne * centimeter", SystemEnggField: "foot_pound",
		},
		"viscosity": {
			SystemSI: "pascal * second", SystemEnggSI: "pascal * second",
			SystemImperial: "pound / (foot * second)", SystemUS: "pound / (foot * second)",
			SystemCGS: "poise", SystemEnggField: "pound / (foot * second)",
		},
		"kinematic_viscosity": {
			SystemSI: "meter ** 2 / second", SystemEnggSI: "meter ** 2 / second",
			SystemImperial: "square_foot / second", SystemUS: "square_foot / second",
			SystemCGS: "stokes", SystemEnggField: "square_foot / second",
		},
	}
}
