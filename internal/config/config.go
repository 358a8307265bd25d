package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	verrors "github.com/neurobagel/vocab-handling/internal/errors"
)

type Config struct {
	Namespace     string              `toml:"namespace"`
	Paths         Paths               `toml:"paths"`
	Modes         map[string]Mode     `toml:"modes"`
	Diff          Diff                `toml:"diff"`
	Observability ObservabilityConfig `toml:"observability"`
}

type Paths struct {
	ConceptTable      string `toml:"concept_table"`
	RelationshipTable string `toml:"relationship_table"`
	GraphCache        string `toml:"graph_cache"`
	VocabDir          string `toml:"vocab_dir"`
}

// Mode describes one extraction category: the root concepts whose descendant
// closure defines the category, an optional domain restriction, and where the
// resulting term list is written relative to the vocab dir.
type Mode struct {
	Roots  []int64 `toml:"roots"`
	Domain string  `toml:"domain"`
	Output string  `toml:"output"`
}

type Diff struct {
	OldDir  string `toml:"old_dir"`
	NewDir  string `toml:"new_dir"`
	Include string `toml:"include"` // Glob for vocabulary JSON files
}

type ObservabilityConfig struct {
	MetricsAddr   string `toml:"metrics_addr"`
	TraceEndpoint string `toml:"trace_endpoint"`
}

func DefaultConfig() *Config {
	return &Config{
		Namespace: "snomed",
		Paths: Paths{
			ConceptTable:      "./data/CONCEPT.csv",
			RelationshipTable: "./data/CONCEPT_RELATIONSHIP.csv",
			GraphCache:        "./snomed_graph.db",
			VocabDir:          "./vocab",
		},
		Modes: map[string]Mode{
			"diagnosis": {
				Roots:  []int64{432586, 376106},
				Domain: "Condition",
				Output: "diagnosis/diagnoses.json",
			},
			"assessment": {
				Roots:  []int64{4157120},
				Output: "assessment/assessments.json",
			},
		},
		Diff: Diff{
			OldDir:  "old",
			NewDir:  "new",
			Include: "*.json",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Namespace) == "" {
		return verrors.New(verrors.CodeValidationError, "namespace must not be empty")
	}
	for name, mode := range c.Modes {
		if len(mode.Roots) == 0 {
			return verrors.New(verrors.CodeValidationError,
				fmt.Sprintf("mode %q has no root concepts", name))
		}
		if strings.TrimSpace(mode.Output) == "" {
			return verrors.New(verrors.CodeValidationError,
				fmt.Sprintf("mode %q has no output path", name))
		}
	}
	return nil
}

// ResolveMode looks up a mode by name. Unknown modes are rejected here,
// before any table is opened.
func (c *Config) ResolveMode(name string) (Mode, error) {
	mode, ok := c.Modes[name]
	if !ok {
		return Mode{}, verrors.New(verrors.CodeValidationError,
			fmt.Sprintf("unknown mode %q, available: %s", name, strings.Join(c.ModeNames(), ", ")))
	}
	return mode, nil
}

func (c *Config) ModeNames() []string {
	names := make([]string, 0, len(c.Modes))
	for name := range c.Modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
