// Command unitglassd serves the conversion API. Each request activates the
// unit system named by its X-Unit-System header; Prometheus metrics are
// exposed on /metrics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"unitglass/internal/catalog"
	"unitglass/internal/httpapi"
	"unitglass/internal/observe"
	"unitglass/pkg/units"
)

var exitFunc = os.Exit

func main() {
	var addr string
	flag.StringVar(&addr, "addr", ":8080", "listen address")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if err := run(context.Background(), addr, logger); err != nil {
		logger.Error("server failed", "error", err)
		exitFunc(1)
	}
}

func run(ctx context.Context, addr string, logger *slog.Logger) error {
	mux, driver, err := buildHandler(ctx, logger)
	if err != nil {
		return err
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("serving", "addr", addr, "catalog", string(driver))
	return server.ListenAndServe()
}

// buildHandler assembles the full request mux: conversion API, metrics and
// health probe.
func buildHandler(ctx context.Context, logger *slog.Logger) (http.Handler, catalog.Driver, error) {
	src, err := catalog.Open(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("open catalog: %w", err)
	}
	table, err := src.Load(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load catalog: %w", err)
	}
	registry, err := units.NewRegistry(table,
		units.WithBaseSystem(units.SystemSI),
		units.WithDefaultSystem(units.SystemImperial))
	if err != nil {
		return nil, "", fmt.Errorf("build registry: %w", err)
	}

	promRegistry := prometheus.NewRegistry()
	recorder, err := observe.NewPrometheusRecorder(promRegistry)
	if err != nil {
		return nil, "", fmt.Errorf("register metrics: %w", err)
	}

	engine, err := units.New(registry,
		units.WithLogger(logger),
		units.WithMetrics(recorder))
	if err != nil {
		return nil, "", fmt.Errorf("build engine: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/units/", httpapi.WithUnitSystem(engine, httpapi.NewHandler(engine)))
	mux.Handle("/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux, src.Driver(), nil
}
