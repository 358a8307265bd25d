package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/neurobagel/vocab-handling/internal/config"
	"github.com/neurobagel/vocab-handling/internal/observability"
)

var (
	configPath = flag.String("config", "./vocab.toml", "Path to config file")
	mode       = flag.String("mode", "", "Extraction mode to run (e.g. diagnosis, assessment)")
	addTerms   = flag.String("add-terms", "", "Path to a TSV of extra terms to include (columns: concept_code, concept_name)")
	out        = flag.String("out", "", "Override the configured output path for the term list")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("vocabgen v%s\n", VERSION)
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config; without a config file the built-in modes apply.
	cfg, err := config.Load(*configPath)
	if err != nil {
		if os.IsNotExist(err) && !isFlagSet("config") {
			slog.Debug("no config file found, using defaults", "path", *configPath)
			cfg = config.DefaultConfig()
		} else {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	if *mode == "" {
		fmt.Fprintln(os.Stderr, "--mode is required (e.g. vocabgen --mode diagnosis)")
		os.Exit(1)
	}

	ctx := context.Background()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Observability.TraceEndpoint, "vocabgen")
	if err != nil {
		slog.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracing(ctx); err != nil {
			slog.Warn("trace shutdown failed", "error", err)
		}
	}()

	if cfg.Observability.MetricsAddr != "" {
		metricsServer := observability.NewServer(cfg.Observability.MetricsAddr)
		if err := metricsServer.Start(ctx); err != nil {
			slog.Error("failed to start metrics server", "error", err)
			os.Exit(1)
		}
		defer func() { _ = metricsServer.Stop(ctx) }()
	}

	app := NewApp(cfg)
	result, err := app.Extract(ctx, *mode, *addTerms, *out)
	if err != nil {
		slog.Error("extraction failed", "mode", *mode, "error", err)
		os.Exit(1)
	}

	fmt.Print(renderSummary(app.RunID, result))
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
