package httpapi

import (
	"net/http"

	"unitglass/pkg/units"
)

// SystemHeader names the request header that selects the unit system for the
// duration of one request.
const SystemHeader = "X-Unit-System"

// WithUnitSystem activates the requested unit system on the request context
// and closes the scope when the request finishes. The response carries the
// resolved system so callers can detect a fallback to the default.
func WithUnitSystem(engine *units.Engine, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested := r.Header.Get(SystemHeader)
		if requested == "" {
			requested = string(engine.Registry().DefaultSystem())
		}
		ctx, scope := engine.Activate(r.Context(), requested)
		defer scope.Close()
		w.Header().Set(SystemHeader, string(scope.System()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
