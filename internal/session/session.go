// Package session holds the per-session confirmed-hole list and the
// operator corrections applied to it: confirm, add, move, delete, and a
// single-step undo.
package session

import (
	"fmt"

	"github.com/google/uuid"

	"target-scorer/internal/hole"
	"target-scorer/pkg/geometry"
)

// Hit-testing uses a fixed touch radius at default zoom; zooming in
// shrinks the radius in image space so precision improves under
// magnification.
const baseTouchRadius = 24.0

// ConfirmedHole is an operator-confirmed shot position in crop pixels.
type ConfirmedHole struct {
	ID       string           `json:"id"`
	Position geometry.Point2D `json:"position"`
}

// Session is the editable confirmed-hole set for one capture. It is not
// safe for concurrent use: the correction layer is interactive and edits
// must be serialized by the caller.
type Session struct {
	holes []ConfirmedHole
	undo  []ConfirmedHole
	dirty bool // an operation has been recorded since the last undo
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// SeedFromClassification confirms every auto-accepted candidate.
// Suggested candidates stay unconfirmed until the operator confirms them;
// rejected candidates are never surfaced here.
func SeedFromClassification(c hole.Classification) *Session {
	s := New()
	for _, cand := range c.Accepted {
		s.holes = append(s.holes, ConfirmedHole{
			ID:       uuid.NewString(),
			Position: cand.PixelPosition,
		})
	}
	return s
}

// snapshot records the current hole list as the single undo step.
func (s *Session) snapshot() {
	s.undo = make([]ConfirmedHole, len(s.holes))
	copy(s.undo, s.holes)
	s.dirty = true
}

// Add confirms a hole at the given pixel position and returns its id.
// Manual additions bypass classification entirely.
func (s *Session) Add(pos geometry.Point2D) string {
	s.snapshot()
	h := ConfirmedHole{ID: uuid.NewString(), Position: pos}
	s.holes = append(s.holes, h)
	return h.ID
}

// Confirm promotes a suggested candidate into the confirmed set. It is a
// plain add at the candidate's detected position.
func (s *Session) Confirm(cand hole.Candidate) string {
	return s.Add(cand.PixelPosition)
}

// Move repositions a confirmed hole.
func (s *Session) Move(id string, pos geometry.Point2D) error {
	for i := range s.holes {
		if s.holes[i].ID == id {
			s.snapshot()
			s.holes[i].Position = pos
			return nil
		}
	}
	return fmt.Errorf("no confirmed hole with id %s", id)
}

// Delete removes a confirmed hole.
func (s *Session) Delete(id string) error {
	for i := range s.holes {
		if s.holes[i].ID == id {
			s.snapshot()
			s.holes = append(s.holes[:i:i], s.holes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no confirmed hole with id %s", id)
}

// Clear removes every confirmed hole.
func (s *Session) Clear() {
	s.snapshot()
	s.holes = nil
}

// Undo reverts the most recent operation, restoring the exact
// pre-operation state. Only one step of history is kept; this is a
// deliberate design limit, not an omission. Returns false when there is
// nothing to undo.
func (s *Session) Undo() bool {
	if !s.dirty {
		return false
	}
	s.holes = s.undo
	s.undo = nil
	s.dirty = false
	return true
}

// Holes returns a copy of the confirmed-hole list.
func (s *Session) Holes() []ConfirmedHole {
	out := make([]ConfirmedHole, len(s.holes))
	copy(out, s.holes)
	return out
}

// Len returns the number of confirmed holes.
func (s *Session) Len() int {
	return len(s.holes)
}

// HitTest returns the id of the confirmed hole nearest to the given
// pixel position within the touch radius for the current zoom level.
// The radius is fixed at default zoom and shrinks in image space as zoom
// grows, so magnified selection is more precise.
func (s *Session) HitTest(pos geometry.Point2D, zoom float64) (string, bool) {
	radius := baseTouchRadius
	if zoom > 1 {
		radius = baseTouchRadius / zoom
	}

	bestID := ""
	bestDist := radius
	for _, h := range s.holes {
		if d := h.Position.Distance(pos); d <= bestDist {
			bestDist = d
			bestID = h.ID
		}
	}
	return bestID, bestID != ""
}
