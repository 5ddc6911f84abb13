// Package config defines the YAML-serializable run configuration for the
// warehouse pipeline: where the six source extracts live, where the gold
// output goes, and how the run is instrumented.
//
// The model is intentionally small and explicit so that run files can be
// loaded from disk and passed through the program without glue code. Field
// names in Go mirror the YAML structure of files under configs/.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Run is the top-level object decoded from a run configuration file.
type Run struct {
	// Job names the run for metrics labeling and logging.
	Job string `yaml:"job"`

	// Extracts maps source table identifiers (schema.Contracts keys) to
	// local CSV extract paths. All six tables must be present.
	Extracts map[string]string `yaml:"extracts"`

	// Storage describes where assembled dimensions and facts are written.
	Storage Storage `yaml:"storage"`

	// Metrics configures the optional metrics backend.
	Metrics Metrics `yaml:"metrics"`
}

// Storage identifies the warehouse storage backend.
type Storage struct {
	// Kind selects the backend. Current values: "postgres", "none".
	Kind string `yaml:"kind"`

	// Postgres carries options for the "postgres" kind.
	Postgres Postgres `yaml:"postgres"`
}

// Postgres holds configuration for the "postgres" storage kind.
type Postgres struct {
	// DSN is the pgx connection string.
	DSN string `yaml:"dsn"`

	// Schema is the target schema for the gold tables, default "gold".
	Schema string `yaml:"schema"`
}

// Metrics configures metric reporting for the run.
type Metrics struct {
	// Backend selects the implementation: "pushgateway" or "none".
	Backend string `yaml:"backend"`

	// GatewayURL is the Pushgateway base URL for the "pushgateway" backend.
	GatewayURL string `yaml:"gateway_url"`
}

// Load decodes a run configuration from YAML.
func Load(r io.Reader) (Run, error) {
	var run Run
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&run); err != nil {
		return Run{}, fmt.Errorf("decode run config: %w", err)
	}
	return run, nil
}

// LoadFile decodes a run configuration from a YAML file on disk.
func LoadFile(path string) (Run, error) {
	f, err := os.Open(path)
	if err != nil {
		return Run{}, fmt.Errorf("open run config: %w", err)
	}
	defer f.Close()
	return Load(f)
}
