// Package httpapi exposes the conversion engine over HTTP. The unit system
// is request-scoped: a middleware activates the system named by the
// X-Unit-System header and every conversion in the request observes it.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"unitglass/pkg/units"
)

// Handler provides HTTP access to the dimension registry and conversions.
type Handler struct {
	Engine *units.Engine
}

// NewHandler constructs a units HTTP handler.
func NewHandler(engine *units.Engine) *Handler {
	return &Handler{Engine: engine}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Engine == nil {
		writeError(w, http.StatusInternalServerError, "conversion engine not configured")
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case r.Method == http.MethodGet && path == "/api/v1/units/dimensions":
		h.handleDimensions(w, r)
	case r.Method == http.MethodGet && path == "/api/v1/units/systems":
		h.handleSystems(w, r)
	case r.Method == http.MethodGet && path == "/api/v1/units/convert":
		h.handleConvert(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handleDimensions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"registry": h.Engine.Registry().Snapshot()})
}

func (h *Handler) handleSystems(w http.ResponseWriter, r *http.Request) {
	reg := h.Engine.Registry()
	writeJSON(w, http.StatusOK, map[string]any{
		"systems":        reg.Systems(),
		"base_system":    reg.BaseSystem(),
		"default_system": reg.DefaultSystem(),
		"active_system":  h.Engine.System(r.Context()),
	})
}

type convertResponse struct {
	Dimension string         `json:"dimension"`
	Direction string         `json:"direction"`
	System    units.SystemID `json:"system"`
	FromUnit  string         `json:"from_unit"`
	ToUnit    string         `json:"to_unit"`
	Input     float64        `json:"input"`
	Result    float64        `json:"result"`
}

func (h *Handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	dimension := q.Get("dimension")
	if dimension == "" {
		writeError(w, http.StatusBadRequest, "dimension parameter required")
		return
	}
	value, err := strconv.ParseFloat(q.Get("value"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "value parameter must be a number")
		return
	}
	direction := q.Get("direction")
	if direction == "" {
		direction = string(units.DirectionInput)
	}

	ctx := r.Context()
	system := h.Engine.System(ctx)
	reg := h.Engine.Registry()

	dim := units.NormalizeDimension(dimension)
	preferred, err := reg.UnitFor(dim, system)
	if err != nil {
		writeConversionError(w, err)
		return
	}
	base, err := reg.BaseUnitFor(dim)
	if err != nil {
		writeConversionError(w, err)
		return
	}

	var result float64
	var fromUnit, toUnit string
	switch units.Direction(direction) {
	case units.DirectionInput:
		fromUnit, toUnit = preferred, base
		result, err = h.Engine.ToBase(ctx, value, dim, system)
	case units.DirectionOutput:
		fromUnit, toUnit = base, preferred
		result, err = h.Engine.FromBase(ctx, value, dim, system)
	default:
		writeError(w, http.StatusBadRequest, "direction must be input or output")
		return
	}
	if err != nil {
		writeConversionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, convertResponse{
		Dimension: dim,
		Direction: direction,
		System:    system,
		FromUnit:  fromUnit,
		ToUnit:    toUnit,
		Input:     value,
		Result:    result,
	})
}

func writeConversionError(w http.ResponseWriter, err error) {
	var dimErr units.UnsupportedDimensionError
	if errors.As(err, &dimErr) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	var sysErr units.UnsupportedSystemError
	if errors.As(err, &sysErr) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	var convErr units.ConversionError
	if errors.As(err, &convErr) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
