// Command unit-export renders the dimension registry as a JSON snapshot for
// external tooling. The catalog backing the registry is selected through the
// UNITGLASS_CATALOG_* environment variables; output goes to stdout, a file,
// or the configured export sink.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"unitglass/internal/catalog"
	"unitglass/internal/exportsink"
	"unitglass/pkg/units"
)

var exitFunc = os.Exit

func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("unit-export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		baseSystem    string
		defaultSystem string
		out           string
		sinkKey       string
	)
	fs.StringVar(&baseSystem, "base", string(units.SystemSI), "base unit system the registry converts through")
	fs.StringVar(&defaultSystem, "default", string(units.SystemImperial), "unit system used when none is activated")
	fs.StringVar(&out, "out", "-", "output file path; \"-\" writes to stdout")
	fs.StringVar(&sinkKey, "key", "", "when set, write the snapshot to the configured export sink under this key")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := run(context.Background(), baseSystem, defaultSystem, out, sinkKey, stdout); err != nil {
		fmt.Fprintf(stderr, "unit-export failed: %v\n", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, baseSystem, defaultSystem, out, sinkKey string, stdout io.Writer) error {
	src, err := catalog.Open(ctx)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	table, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	registry, err := units.NewRegistry(table,
		units.WithBaseSystem(units.NormalizeSystem(baseSystem)),
		units.WithDefaultSystem(units.NormalizeSystem(defaultSystem)))
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}

	data, err := json.MarshalIndent(registry.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	data = append(data, '\n')

	if sinkKey != "" {
		sink, err := exportsink.Open(ctx)
		if err != nil {
			return fmt.Errorf("open export sink: %w", err)
		}
		info, err := sink.Put(ctx, sinkKey, bytes.NewReader(data), "application/json")
		if err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(stdout, "wrote %s (%d bytes) via %s sink\n", info.Key, info.Size, sink.Driver())
		return nil
	}

	if out == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(stdout, "wrote %s (%d bytes)\n", out, len(data))
	return nil
}
