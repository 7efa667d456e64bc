package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// projectManifest mirrors the karst.toml sections the checker cares about.
type projectManifest struct {
	Path   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Check   checkConfig   `toml:"check"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type checkConfig struct {
	MaxDiagnostics *int  `toml:"max_diagnostics"`
	NoWarnings     *bool `toml:"no_warnings"`
	Dedup          *bool `toml:"dedup"`
}

// findKarstToml walks up from startDir looking for a karst.toml.
func findKarstToml(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, "karst.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// loadManifest locates and parses the manifest covering the given argument
// path. A file argument searches from its directory.
func loadManifest(arg string) (*projectManifest, bool) {
	startDir := arg
	if info, err := os.Stat(arg); err != nil || !info.IsDir() {
		startDir = filepath.Dir(arg)
	}
	manifestPath, ok := findKarstToml(startDir)
	if !ok {
		return nil, false
	}

	var cfg projectConfig
	if _, err := toml.DecodeFile(manifestPath, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", manifestPath, err)
		return nil, false
	}
	return &projectManifest{Path: manifestPath, Config: cfg}, true
}

// applyManifest copies manifest settings into opts for every flag the user
// did not set explicitly on the command line.
func applyManifest(cmd *cobra.Command, manifest *projectManifest, opts *checkOptions) {
	cfg := manifest.Config.Check
	if cfg.MaxDiagnostics != nil && !cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		opts.maxDiagnostics = *cfg.MaxDiagnostics
	}
	if cfg.NoWarnings != nil && !cmd.Flags().Changed("no-warnings") {
		opts.noWarnings = *cfg.NoWarnings
	}
	if cfg.Dedup != nil && !cmd.Flags().Changed("dedup") {
		opts.dedup = *cfg.Dedup
	}
}
