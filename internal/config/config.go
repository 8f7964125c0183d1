// Package config loads optional user configuration from a TOML file.
// Every field is optional; a missing file means defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"target-scorer/internal/hole"
)

// FileConfig mirrors the on-disk TOML layout. Pointer fields distinguish
// "not set" from zero values so partial files only override what they name.
type FileConfig struct {
	Preset    *string         `toml:"preset"`
	Detection *DetectionBlock `toml:"detection"`
	History   *HistoryBlock   `toml:"history"`
}

// DetectionBlock overrides individual detection thresholds on top of the
// chosen preset.
type DetectionBlock struct {
	MinCircularity             *float64 `toml:"min_circularity"`
	AutoAcceptConfidence       *float64 `toml:"auto_accept_confidence"`
	SuggestionConfidence       *float64 `toml:"suggestion_confidence"`
	MinimumConfidence          *float64 `toml:"minimum_confidence"`
	FilterScoringRingArtifacts *bool    `toml:"filter_scoring_ring_artifacts"`
	UseLocalBackground         *bool    `toml:"use_local_background"`
	MaxCandidates              *int     `toml:"max_candidates"`
}

// HistoryBlock configures persistence.
type HistoryBlock struct {
	DatabasePath *string `toml:"database_path"`
}

// Load reads the config file at path. A missing file is not an error;
// it yields an empty config.
func Load(path string) (FileConfig, error) {
	var cfg FileConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns the conventional config location under the user's
// config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "target-scorer.toml"
	}
	return filepath.Join(dir, "target-scorer", "config.toml")
}

// DetectionConfig resolves the effective detection settings: the named
// preset (file preset unless the caller overrides it), then any explicit
// threshold overrides from the file. The result is validated so a bad
// file cannot produce an inverted threshold ordering.
func (c FileConfig) DetectionConfig(presetOverride string) (hole.DetectionConfig, error) {
	name := hole.PresetBalanced
	if c.Preset != nil {
		name = *c.Preset
	}
	if presetOverride != "" {
		name = presetOverride
	}
	cfg, err := hole.PresetByName(name)
	if err != nil {
		return hole.DetectionConfig{}, err
	}

	if d := c.Detection; d != nil {
		if d.MinCircularity != nil {
			cfg.MinCircularity = *d.MinCircularity
		}
		if d.AutoAcceptConfidence != nil {
			cfg.AutoAcceptConfidence = *d.AutoAcceptConfidence
		}
		if d.SuggestionConfidence != nil {
			cfg.SuggestionConfidence = *d.SuggestionConfidence
		}
		if d.MinimumConfidence != nil {
			cfg.MinimumConfidence = *d.MinimumConfidence
		}
		if d.FilterScoringRingArtifacts != nil {
			cfg.FilterScoringRingArtifacts = *d.FilterScoringRingArtifacts
		}
		if d.UseLocalBackground != nil {
			cfg.UseLocalBackground = *d.UseLocalBackground
		}
		if d.MaxCandidates != nil {
			cfg.MaxCandidates = *d.MaxCandidates
		}
	}

	if err := cfg.Validate(); err != nil {
		return hole.DetectionConfig{}, fmt.Errorf("invalid detection settings: %w", err)
	}
	return cfg, nil
}

// DatabasePath resolves the history database location, falling back to
// a file next to the config when unset.
func (c FileConfig) DatabasePath() string {
	if c.History != nil && c.History.DatabasePath != nil {
		return *c.History.DatabasePath
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "target-scorer-history.db"
	}
	return filepath.Join(dir, "target-scorer", "history.db")
}
