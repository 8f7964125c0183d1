// Package hole locates bullet-hole candidates in a perspective-corrected
// target crop and classifies them into accepted, suggested, and rejected
// sets for operator review.
package hole

import (
	"fmt"
	"sort"
)

// DetectionConfig holds the tunable thresholds of the detection and
// classification pipeline. The confidence thresholds must satisfy
// MinimumConfidence <= SuggestionConfidence <= AutoAcceptConfidence <= 1.
type DetectionConfig struct {
	// MinCircularity rejects candidates whose boundary deviates too far
	// from a circle, independent of confidence.
	MinCircularity float64 `json:"min_circularity"`

	// AutoAcceptConfidence and above is confirmed without operator input.
	AutoAcceptConfidence float64 `json:"auto_accept_confidence"`

	// SuggestionConfidence and above (but below auto-accept) is surfaced
	// as a one-tap suggestion.
	SuggestionConfidence float64 `json:"suggestion_confidence"`

	// MinimumConfidence is the floor below which candidates are rejected
	// outright.
	MinimumConfidence float64 `json:"minimum_confidence"`

	// FilterScoringRingArtifacts rejects candidates sitting on a printed
	// ring line, which photograph much like small holes.
	FilterScoringRingArtifacts bool `json:"filter_scoring_ring_artifacts"`

	// ScoringRingTolerance is the normalized radial band around each ring
	// radius treated as ring-line territory.
	ScoringRingTolerance float64 `json:"scoring_ring_tolerance"`

	// UseLocalBackground computes contrast against a per-candidate local
	// window instead of a single global background sample. Needed for
	// targets with mixed light/dark printed zones.
	UseLocalBackground bool `json:"use_local_background"`

	// MaxCandidates caps the detector output, ranked by confidence.
	MaxCandidates int `json:"max_candidates"`
}

// Validate checks the threshold ordering invariant.
func (c DetectionConfig) Validate() error {
	if c.MinimumConfidence > c.SuggestionConfidence {
		return fmt.Errorf("minimum confidence %.2f above suggestion confidence %.2f",
			c.MinimumConfidence, c.SuggestionConfidence)
	}
	if c.SuggestionConfidence > c.AutoAcceptConfidence {
		return fmt.Errorf("suggestion confidence %.2f above auto-accept confidence %.2f",
			c.SuggestionConfidence, c.AutoAcceptConfidence)
	}
	if c.AutoAcceptConfidence > 1 {
		return fmt.Errorf("auto-accept confidence %.2f above 1", c.AutoAcceptConfidence)
	}
	if c.MinimumConfidence < 0 {
		return fmt.Errorf("minimum confidence %.2f below 0", c.MinimumConfidence)
	}
	if c.MaxCandidates <= 0 {
		return fmt.Errorf("max candidates must be positive, got %d", c.MaxCandidates)
	}
	return nil
}

// Preset names. The four presets are part of the public contract and are
// always available by name.
const (
	PresetStrict     = "strict"
	PresetBalanced   = "balanced"
	PresetSensitive  = "sensitive"
	PresetDarkTarget = "dark-target"
)

var presets = map[string]DetectionConfig{
	PresetStrict: {
		MinCircularity:             0.70,
		AutoAcceptConfidence:       0.88,
		SuggestionConfidence:       0.70,
		MinimumConfidence:          0.50,
		FilterScoringRingArtifacts: true,
		ScoringRingTolerance:       0.04,
		UseLocalBackground:         false,
		MaxCandidates:              40,
	},
	PresetBalanced: {
		MinCircularity:             0.55,
		AutoAcceptConfidence:       0.80,
		SuggestionConfidence:       0.55,
		MinimumConfidence:          0.35,
		FilterScoringRingArtifacts: true,
		ScoringRingTolerance:       0.03,
		UseLocalBackground:         true,
		MaxCandidates:              60,
	},
	PresetSensitive: {
		MinCircularity:             0.40,
		AutoAcceptConfidence:       0.72,
		SuggestionConfidence:       0.45,
		MinimumConfidence:          0.25,
		FilterScoringRingArtifacts: true,
		ScoringRingTolerance:       0.02,
		UseLocalBackground:         true,
		MaxCandidates:              100,
	},
	// Dark paper swallows global contrast, so local background sampling
	// and gentler confidence thresholds are required.
	PresetDarkTarget: {
		MinCircularity:             0.50,
		AutoAcceptConfidence:       0.75,
		SuggestionConfidence:       0.50,
		MinimumConfidence:          0.30,
		FilterScoringRingArtifacts: true,
		ScoringRingTolerance:       0.03,
		UseLocalBackground:         true,
		MaxCandidates:              80,
	},
}

// DefaultConfig returns the balanced preset.
func DefaultConfig() DetectionConfig {
	return presets[PresetBalanced]
}

// PresetByName returns the named preset configuration.
func PresetByName(name string) (DetectionConfig, error) {
	cfg, ok := presets[name]
	if !ok {
		return DetectionConfig{}, fmt.Errorf("unknown preset %q", name)
	}
	return cfg, nil
}

// PresetNames returns the available preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
