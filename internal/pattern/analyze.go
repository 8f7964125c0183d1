// Package pattern computes shot-group statistics from normalized shot
// positions. All inputs are in normalized target coordinates, where the
// outermost scoring ring sits at radial distance 1.0 and positive Y
// points down the target face.
package pattern

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"target-scorer/pkg/geometry"
)

// MinimumShots is the floor below which statistics are suppressed
// rather than reported. Two shots produce degenerate spread numbers.
const MinimumShots = 3

// outlierMultiplier marks shots farther than this many group radii from
// the mean point of impact. Outliers are counted, never excluded.
const outlierMultiplier = 2.0

// Tightness buckets the group radius into coarse quality bands.
type Tightness string

const (
	TightnessTight    Tightness = "tight"
	TightnessModerate Tightness = "moderate"
	TightnessWide     Tightness = "wide"
)

// ConfidenceTier grades how much the shot count can be trusted to
// represent the shooter rather than noise.
type ConfidenceTier string

const (
	ConfidenceLow    ConfidenceTier = "low"
	ConfidenceMedium ConfidenceTier = "medium"
	ConfidenceHigh   ConfidenceTier = "high"
)

// Bias is the directional offset of the group center from target center,
// decomposed into vertical and horizontal components. Empty components
// mean the group is centered on that axis.
type Bias struct {
	Vertical   string `json:"vertical,omitempty"`   // "high" or "low"
	Horizontal string `json:"horizontal,omitempty"` // "left" or "right"
}

// Centered reports whether no directional bias was found.
func (b Bias) Centered() bool {
	return b.Vertical == "" && b.Horizontal == ""
}

// String renders the bias for display, e.g. "high and left" or "centered".
func (b Bias) String() string {
	switch {
	case b.Centered():
		return "centered"
	case b.Vertical == "":
		return b.Horizontal
	case b.Horizontal == "":
		return b.Vertical
	default:
		return b.Vertical + " and " + b.Horizontal
	}
}

// Analysis is the full statistical summary of one shot group.
type Analysis struct {
	Suppressed     bool             `json:"suppressed"`
	SuppressReason string           `json:"suppressReason,omitempty"`
	ShotCount      int              `json:"shotCount"`
	MPI            geometry.Point2D `json:"mpi"`
	GroupRadius    float64          `json:"groupRadius"`
	ExtremeSpread  float64          `json:"extremeSpread"`
	CEP50          float64          `json:"cep50"`
	CEP90          float64          `json:"cep90"`
	OutlierCount   int              `json:"outlierCount"`
	Tightness      Tightness        `json:"tightness"`
	Bias           Bias             `json:"bias"`
	Confidence     ConfidenceTier   `json:"confidence"`
}

// Summary renders a one-line description of the group for logs and the
// CLI table footer.
func (a Analysis) Summary() string {
	if a.Suppressed {
		return fmt.Sprintf("%d shots: %s", a.ShotCount, a.SuppressReason)
	}
	return fmt.Sprintf("%d shots, %s group, %s, radius %.3f, spread %.3f (%s confidence)",
		a.ShotCount, a.Tightness, a.Bias, a.GroupRadius, a.ExtremeSpread, a.Confidence)
}

// Analyze computes group statistics for a set of normalized shot
// positions. Groups below MinimumShots are suppressed: the result
// carries the shot count and a reason but no statistics, so callers
// never display misleading numbers for tiny groups.
func Analyze(shots []geometry.Point2D) Analysis {
	a := Analysis{ShotCount: len(shots)}
	if len(shots) < MinimumShots {
		a.Suppressed = true
		a.SuppressReason = fmt.Sprintf("need at least %d shots for analysis", MinimumShots)
		return a
	}

	a.MPI = geometry.Centroid(shots)
	a.ExtremeSpread = geometry.MaxPairwiseDistance(shots)

	dists := make([]float64, len(shots))
	for i, s := range shots {
		dists[i] = s.Distance(a.MPI)
	}
	a.GroupRadius = stat.Mean(dists, nil)

	sorted := make([]float64, len(dists))
	copy(sorted, dists)
	sort.Float64s(sorted)
	a.CEP50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	a.CEP90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)

	for _, d := range dists {
		if d > outlierMultiplier*a.GroupRadius {
			a.OutlierCount++
		}
	}

	a.Tightness = classifyTightness(a.GroupRadius)
	a.Bias = classifyBias(a.MPI)
	a.Confidence = ConfidenceForShots(len(shots))
	return a
}

// Tightness thresholds in normalized radii. A tight group keeps its mean
// spread inside a quarter of the target radius.
const (
	tightRadius    = 0.25
	moderateRadius = 0.55
)

func classifyTightness(groupRadius float64) Tightness {
	switch {
	case groupRadius < tightRadius:
		return TightnessTight
	case groupRadius < moderateRadius:
		return TightnessModerate
	default:
		return TightnessWide
	}
}

// Bias thresholds. The group center must sit at least minBiasOffset from
// target center before any bias is reported, and each axis component must
// carry at least minAxisComponent to be named.
const (
	minBiasOffset    = 0.08
	minAxisComponent = 0.05
)

func classifyBias(mpi geometry.Point2D) Bias {
	var b Bias
	if mpi.Norm() < minBiasOffset {
		return b
	}
	// Normalized Y grows downward, so a negative Y offset is high.
	if mpi.Y <= -minAxisComponent {
		b.Vertical = "high"
	} else if mpi.Y >= minAxisComponent {
		b.Vertical = "low"
	}
	if mpi.X <= -minAxisComponent {
		b.Horizontal = "left"
	} else if mpi.X >= minAxisComponent {
		b.Horizontal = "right"
	}
	return b
}

// ConfidenceForShots maps a shot count to a confidence tier. Shared with
// historical aggregation, which grades on total shots across sessions.
func ConfidenceForShots(n int) ConfidenceTier {
	switch {
	case n >= 10:
		return ConfidenceHigh
	case n >= 5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
