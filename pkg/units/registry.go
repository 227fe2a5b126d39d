package units

import (
	"fmt"
	"sort"
)

// Registry is the static dimension table: for every supported unit system it
// names the concrete unit of each physical dimension, and designates the
// canonical (base) system whose units all internal computation uses. It is
// built once at startup and read-only thereafter; lookups are pure.
type Registry struct {
	table   Table
	systems []SystemID
	base    SystemID
	def     SystemID
}

// RegistryOption adjusts registry construction.
type RegistryOption func(*Registry)

// WithBaseSystem overrides the canonical system (default SystemSI).
func WithBaseSystem(id SystemID) RegistryOption {
	return func(r *Registry) { r.base = NormalizeSystem(string(id)) }
}

// WithDefaultSystem overrides the process-wide default system substituted
// when a request never activates a system, or activates an unknown one
// (default: the base system).
func WithDefaultSystem(id SystemID) RegistryOption {
	return func(r *Registry) { r.def = NormalizeSystem(string(id)) }
}

// NewRegistry validates and builds a registry from a dimension table. Every
// dimension must name a unit for every supported system; the supported set is
// the union of system identifiers across all dimensions, and must include the
// base system. Keys are normalized on ingestion.
func NewRegistry(table Table, opts ...RegistryOption) (*Registry, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("empty dimension table")
	}
	r := &Registry{base: SystemSI}
	for _, opt := range opts {
		opt(r)
	}
	if r.def == "" {
		r.def = r.base
	}

	systems := map[SystemID]struct{}{}
	normalized := make(Table, len(table))
	for dim, su := range table {
		key := NormalizeDimension(dim)
		if key == "" {
			return nil, fmt.Errorf("blank dimension key")
		}
		if _, dup := normalized[key]; dup {
			return nil, fmt.Errorf("dimension %q defined twice", key)
		}
		entry := make(SystemUnits, len(su))
		for id, unit := range su {
			sid := NormalizeSystem(string(id))
			if unit == "" {
				return nil, fmt.Errorf("dimension %q: empty unit for system %q", key, sid)
			}
			entry[sid] = unit
			systems[sid] = struct{}{}
		}
		normalized[key] = entry
	}

	if _, ok := systems[r.base]; !ok {
		return nil, fmt.Errorf("base system %q missing from table", r.base)
	}
	if _, ok := systems[r.def]; !ok {
		return nil, fmt.Errorf("default system %q missing from table", r.def)
	}
	for id := range systems {
		r.systems = append(r.systems, id)
	}
	sort.Slice(r.systems, func(i, j int) bool { return r.systems[i] < r.systems[j] })

	for dim, entry := range normalized {
		for _, id := range r.systems {
			if _, ok := entry[id]; !ok {
				return nil, fmt.Errorf("dimension %q: no unit for system %q", dim, id)
			}
		}
	}
	r.table = normalized
	return r, nil
}

// NewDefaultRegistry builds the registry over the built-in catalog with SI as
// the base system and imperial as the request default, matching the historic
// behavior of the API this package backs.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultTable(), WithDefaultSystem(SystemImperial))
	if err != nil {
		panic(fmt.Sprintf("built-in catalog invalid: %v", err))
	}
	return r
}

// UnitFor returns the unit the given system uses for a dimension.
func (r *Registry) UnitFor(dimension string, system SystemID) (string, error) {
	entry, ok := r.table[NormalizeDimension(dimension)]
	if !ok {
		return "", UnsupportedDimensionError{Dimension: dimension}
	}
	unit, ok := entry[NormalizeSystem(string(system))]
	if !ok {
		return "", UnsupportedSystemError{System: string(system)}
	}
	return unit, nil
}

// BaseUnitFor returns the canonical unit used internally for a dimension.
func (r *Registry) BaseUnitFor(dimension string) (string, error) {
	return r.UnitFor(dimension, r.base)
}

// BaseSystem returns the canonical system identifier.
func (r *Registry) BaseSystem() SystemID { return r.base }

// DefaultSystem returns the system substituted when none is active.
func (r *Registry) DefaultSystem() SystemID { return r.def }

// Supported reports whether the identifier names a supported system.
func (r *Registry) Supported(system SystemID) bool {
	id := NormalizeSystem(string(system))
	for _, s := range r.systems {
		if s == id {
			return true
		}
	}
	return false
}

// Systems returns the supported system identifiers, sorted.
func (r *Registry) Systems() []SystemID {
	out := make([]SystemID, len(r.systems))
	copy(out, r.systems)
	return out
}

// Dimensions returns the registered dimension keys, sorted.
func (r *Registry) Dimensions() []string {
	out := make([]string, 0, len(r.table))
	for dim := range r.table {
		out = append(out, dim)
	}
	sort.Strings(out)
	return out
}

// Snapshot is a read-only export of the full dimension table for external
// tooling.
type Snapshot struct {
	BaseSystem    SystemID            `json:"base_system"`
	DefaultSystem SystemID            `json:"default_system"`
	Systems       []SystemID          `json:"systems"`
	Dimensions    []DimensionSnapshot `json:"dimensions"`
}

// DimensionSnapshot is one dimension row of a Snapshot.
type DimensionSnapshot struct {
	Key      string      `json:"key"`
	BaseUnit string      `json:"base_unit"`
	Units    SystemUnits `json:"units"`
}

// Snapshot returns a sorted, deep-copied view of the registry. Mutating the
// result does not affect the registry.
func (r *Registry) Snapshot() Snapshot {
	snap := Snapshot{
		BaseSystem:    r.base,
		DefaultSystem: r.def,
		Systems:       r.Systems(),
	}
	for _, dim := range r.Dimensions() {
		entry := r.table[dim]
		units := make(SystemUnits, len(entry))
		for id, unit := range entry {
			units[id] = unit
		}
		snap.Dimensions = append(snap.Dimensions, DimensionSnapshot{
			Key:      dim,
			BaseUnit: entry[r.base],
			Units:    units,
		})
	}
	return snap
}
