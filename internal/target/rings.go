// Package target defines the scoring geometry of a paper target: the ring
// table, the per-image crop geometry, and conversions between pixel space
// and the normalized target-relative coordinate system.
package target

import (
	"fmt"

	"target-scorer/pkg/geometry"
)

// StandardAspect is the height/width ratio of the stadium-shaped target
// face. The face is wider than tall, so the two semi-axes differ and all
// radius math happens in normalized space where the ellipse becomes a
// unit circle.
const StandardAspect = 0.82

// Ring is one scoring ring: the score earned inside it and its radius in
// normalized units (outermost ring = 1.0).
type Ring struct {
	Score  int     `json:"score"`
	Radius float64 `json:"radius"`
}

// RingTable is an ordered list of scoring rings from highest score
// (innermost) to lowest (outermost). Radii strictly increase as score
// decreases and the outermost radius is exactly 1.0.
type RingTable []Ring

// NewRingTable validates and returns a ring table.
func NewRingTable(rings []Ring) (RingTable, error) {
	if len(rings) == 0 {
		return nil, fmt.Errorf("ring table is empty")
	}
	for i := 1; i < len(rings); i++ {
		if rings[i].Score >= rings[i-1].Score {
			return nil, fmt.Errorf("ring %d: score %d not below previous %d",
				i, rings[i].Score, rings[i-1].Score)
		}
		if rings[i].Radius <= rings[i-1].Radius {
			return nil, fmt.Errorf("ring %d: radius %.3f not above previous %.3f",
				i, rings[i].Radius, rings[i-1].Radius)
		}
	}
	if rings[0].Radius <= 0 {
		return nil, fmt.Errorf("innermost radius must be positive, got %.3f", rings[0].Radius)
	}
	if rings[len(rings)-1].Radius != 1.0 {
		return nil, fmt.Errorf("outermost radius must be 1.0, got %.3f", rings[len(rings)-1].Radius)
	}
	out := make(RingTable, len(rings))
	copy(out, rings)
	return out, nil
}

// StandardRingTable returns the ring layout of the standard stadium
// target. Radii are calibration values tuned against labeled fixtures.
func StandardRingTable() RingTable {
	return RingTable{
		{Score: 10, Radius: 0.12},
		{Score: 9, Radius: 0.24},
		{Score: 8, Radius: 0.38},
		{Score: 7, Radius: 0.54},
		{Score: 6, Radius: 0.72},
		{Score: 5, Radius: 1.0},
	}
}

// ScoreFor returns the score of the smallest ring whose radius is greater
// than or equal to the point's distance from center in normalized space.
// A point exactly on a ring boundary scores the inner (higher) ring.
// Points beyond the outermost ring score 0.
func (t RingTable) ScoreFor(n geometry.Point2D) int {
	d := n.Norm()
	for _, r := range t {
		if d <= r.Radius {
			return r.Score
		}
	}
	return 0
}

// MaxScore returns the innermost ring's score.
func (t RingTable) MaxScore() int {
	return t[0].Score
}

// Radii returns the ring radii from innermost to outermost.
func (t RingTable) Radii() []float64 {
	out := make([]float64, len(t))
	for i, r := range t {
		out[i] = r.Radius
	}
	return out
}
