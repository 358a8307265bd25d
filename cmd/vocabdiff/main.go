package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/neurobagel/vocab-handling/internal/config"
)

var (
	configPath = flag.String("config", "./vocab.toml", "Path to config file")
	vocabDir   = flag.String("vocab-dir", "", "Directory holding old/ and new/ vocabulary snapshots (defaults to the configured vocab dir)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("vocabdiff v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

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

	dir := cfg.Paths.VocabDir
	if *vocabDir != "" {
		dir = *vocabDir
	}

	result, err := Compare(cfg, dir)
	if err != nil {
		slog.Error("comparison failed", "vocab_dir", dir, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Terms unique to the old list: %d\n", result.OldOnly)
	fmt.Printf("Terms unique to the new list: %d\n", result.NewOnly)
	fmt.Printf("Labels with duplicates in the new list: %d\n", result.DuplicateLabels)
	for _, path := range result.Artifacts {
		fmt.Printf("Wrote %s\n", path)
	}
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
