// Package targetid recognizes the printed target face label from a
// photo so the right ring table can be preselected. Recognition is a
// convenience only; callers always allow manual selection when it fails.
package targetid

import (
	"errors"
	"strings"

	"target-scorer/internal/target"
)

// ErrUnavailable is returned when no OCR engine is compiled in or the
// label could not be matched.
var ErrUnavailable = errors.New("target label recognition unavailable")

// Face describes a known printed target face.
type Face struct {
	Name   string
	Aspect float64
	Rings  target.RingTable
}

// knownFaces maps normalized label keywords to faces. Keys are matched
// as substrings of the OCR text after lowercasing.
var knownFaces = []struct {
	keywords []string
	face     Face
}{
	{
		keywords: []string{"air rifle", "10m"},
		face:     Face{Name: "10m air rifle", Aspect: target.StandardAspect, Rings: target.StandardRingTable()},
	},
	{
		keywords: []string{"air pistol"},
		face:     Face{Name: "10m air pistol", Aspect: target.StandardAspect, Rings: target.StandardRingTable()},
	},
	{
		keywords: []string{"50m", "rifle"},
		face:     Face{Name: "50m rifle", Aspect: 1.0, Rings: target.StandardRingTable()},
	},
}

// matchLabel finds the first known face whose keywords all appear in
// the OCR text. Matching is case-insensitive and whitespace-tolerant.
func matchLabel(text string) (Face, bool) {
	normalized := strings.ToLower(strings.Join(strings.Fields(text), " "))
	if normalized == "" {
		return Face{}, false
	}
	for _, entry := range knownFaces {
		all := true
		for _, kw := range entry.keywords {
			if !strings.Contains(normalized, kw) {
				all = false
				break
			}
		}
		if all {
			return entry.face, true
		}
	}
	return Face{}, false
}
