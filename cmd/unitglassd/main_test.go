package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	t.Setenv("UNITGLASS_CATALOG_DRIVER", "static")
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	mux, driver, err := buildHandler(context.Background(), logger)
	if err != nil {
		t.Fatalf("buildHandler: %v", err)
	}
	if driver != "static" {
		t.Fatalf("catalog driver: got %s", driver)
	}
	return mux
}

func TestHealthz(t *testing.T) {
	mux := newTestHandler(t)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
}

func TestConvertEndToEnd(t *testing.T) {
	mux := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/units/convert?dimension=pressure&value=10", nil)
	req.Header.Set("X-Unit-System", "imperial")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Result float64 `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if math.Abs(body.Result-68947.57) > 0.01 {
		t.Fatalf("result: got %v want ~68947.57", body.Result)
	}
}

func TestMetricsEndpointReportsOperations(t *testing.T) {
	mux := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/units/convert?dimension=length&value=3", nil)
	req.Header.Set("X-Unit-System", "si")
	mux.ServeHTTP(httptest.NewRecorder(), req)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unitglass_operations_total") {
		t.Fatalf("expected unitglass_operations_total in metrics output")
	}
}

func TestBuildHandlerPropagatesCatalogErrors(t *testing.T) {
	t.Setenv("UNITGLASS_CATALOG_DRIVER", "file")
	t.Setenv("UNITGLASS_CATALOG_FILE", filepath.Join(t.TempDir(), "absent.json"))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	if _, _, err := buildHandler(context.Background(), logger); err == nil {
		t.Fatalf("expected catalog error")
	}
}
