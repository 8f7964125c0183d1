// Package history persists per-session pattern records and aggregates
// them over time ranges into trend summaries.
package history

import (
	"errors"
	"time"

	"target-scorer/internal/pattern"
	"target-scorer/pkg/geometry"
)

// ErrSuppressed is returned when a suppressed analysis is offered for
// persistence. Suppressed groups carry no statistics worth keeping.
var ErrSuppressed = errors.New("analysis suppressed, nothing to record")

// Record is one stored session summary. Shots are kept in normalized
// coordinates so records from different target sizes aggregate cleanly.
type Record struct {
	ID            int64              `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	SessionType   string             `json:"sessionType"`
	ShotCount     int                `json:"shotCount"`
	Shots         []geometry.Point2D `json:"shots"`
	ClusterMPI    geometry.Point2D   `json:"clusterMpi"`
	ClusterRadius float64            `json:"clusterRadius"`
	OutlierCount  int                `json:"outlierCount"`
}

// NewRecord builds a Record from a completed analysis.
func NewRecord(ts time.Time, sessionType string, shots []geometry.Point2D, a pattern.Analysis) (Record, error) {
	if a.Suppressed {
		return Record{}, ErrSuppressed
	}
	stored := make([]geometry.Point2D, len(shots))
	copy(stored, shots)
	return Record{
		Timestamp:     ts,
		SessionType:   sessionType,
		ShotCount:     a.ShotCount,
		Shots:         stored,
		ClusterMPI:    a.MPI,
		ClusterRadius: a.GroupRadius,
		OutlierCount:  a.OutlierCount,
	}, nil
}

// Filter narrows a history query. Zero-value fields are unbounded.
type Filter struct {
	From         time.Time
	To           time.Time
	SessionTypes []string
}

// RangeFor translates a named range into a filter starting at the range
// boundary. Supported names are "today", "week", "month", and "all".
func RangeFor(name string, now time.Time) (Filter, error) {
	switch name {
	case "today":
		y, m, d := now.Date()
		return Filter{From: time.Date(y, m, d, 0, 0, 0, 0, now.Location())}, nil
	case "week":
		return Filter{From: now.AddDate(0, 0, -7)}, nil
	case "month":
		return Filter{From: now.AddDate(0, -1, 0)}, nil
	case "all":
		return Filter{}, nil
	default:
		return Filter{}, errors.New("unknown range " + name + " (want today, week, month, or all)")
	}
}
