package hole

import (
	"target-scorer/pkg/geometry"
)

// Filter reasons attached to rejected candidates.
const (
	ReasonLowCircularity = "low circularity"
	ReasonRingArtifact   = "ring artifact"
	ReasonLowConfidence  = "low confidence"
)

// Candidate is an unconfirmed hole proposed by the detector. Once
// classified it is never mutated except for FilterReason on rejection.
type Candidate struct {
	PixelPosition      geometry.Point2D `json:"pixel_position"`
	NormalizedPosition geometry.Point2D `json:"normalized_position"`
	RadiusPixels       float64          `json:"radius_pixels"`
	Circularity        float64          `json:"circularity"`
	Confidence         float64          `json:"confidence"`
	FilterReason       string           `json:"filter_reason,omitempty"`
}

// Classification is the tri-state output of the filter. Every input
// candidate lands in exactly one slice; nothing is discarded silently.
// The suggested slice is ordered for presentation: candidates at or above
// the suggestion threshold first, then the lower band, each by confidence
// descending.
type Classification struct {
	Accepted  []Candidate `json:"accepted"`
	Suggested []Candidate `json:"suggested"`
	Rejected  []Candidate `json:"rejected"`
}

// Total returns the number of classified candidates.
func (c Classification) Total() int {
	return len(c.Accepted) + len(c.Suggested) + len(c.Rejected)
}
