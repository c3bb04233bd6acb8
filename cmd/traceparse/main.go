package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/tracegroups/internal/domain/trace"
	"github.com/GriffinCanCode/tracegroups/internal/infrastructure/config"
	"github.com/GriffinCanCode/tracegroups/internal/infrastructure/logging"
)

func main() {
	pretty := flag.Bool("pretty", false, "Indent JSON output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-pretty] <location>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	// LOG_LEVEL and TRACE_MAX_BYTES apply here as they do to the server
	cfg := config.LoadOrDefault()

	// stdout carries the JSON
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		logger = logging.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), os.Stdout, flag.Arg(0), *pretty, cfg.Trace.MaxBytes); err != nil {
		logger.Error("Failed to parse trace", zap.String("location", flag.Arg(0)), zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, location string, pretty bool, maxBytes int64) error {
	groups, err := trace.ParseFile(ctx, location, trace.WithMaxSize(maxBytes))
	if err != nil {
		return err
	}

	var data []byte
	if pretty {
		data, err = sonic.MarshalIndent(groups, "", "  ")
	} else {
		data, err = sonic.Marshal(groups)
	}
	if err != nil {
		return fmt.Errorf("failed to encode groups: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
