package history

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"target-scorer/internal/pattern"
	"target-scorer/pkg/geometry"
)

// Trend names the direction the cluster radius is moving over recent
// sessions. Smaller is better, so a shrinking radius is improving.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// TrendPoint is one session's radius on the trend timeline.
type TrendPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Radius    float64   `json:"radius"`
	ShotCount int       `json:"shotCount"`
}

// AggregatedMetrics summarizes a set of session records. Per-session
// statistics are weighted by shot count so a 20-shot session counts for
// more than a 3-shot one.
type AggregatedMetrics struct {
	SessionCount int                    `json:"sessionCount"`
	TotalShots   int                    `json:"totalShots"`
	MPI          geometry.Point2D       `json:"mpi"`
	Offset       float64                `json:"offset"`
	MeanRadius   float64                `json:"meanRadius"`
	Outliers     int                    `json:"outliers"`
	OutlierRate  float64                `json:"outlierRate"`
	ShotsByDay   map[string]int         `json:"shotsByDay"`
	RadiusTrend  []TrendPoint           `json:"radiusTrend"`
	Trend        Trend                  `json:"trend"`
	Confidence   pattern.ConfidenceTier `json:"confidence"`
}

// trendWindow caps how many sessions each end of the trend comparison
// uses; trendTolerance is the relative change needed before the trend
// leaves "stable".
const (
	trendWindow      = 3
	trendMinSessions = 4
	trendTolerance   = 0.20
)

// Aggregate folds session records into cross-session metrics. Records
// must be in chronological order, as returned by Store.Query. An empty
// input yields a zero-value summary with low confidence.
func Aggregate(records []Record) AggregatedMetrics {
	agg := AggregatedMetrics{
		SessionCount: len(records),
		ShotsByDay:   map[string]int{},
		Trend:        TrendStable,
		Confidence:   pattern.ConfidenceLow,
	}
	if len(records) == 0 {
		return agg
	}

	var xs, ys, radii, weights []float64
	for _, rec := range records {
		agg.TotalShots += rec.ShotCount
		agg.Outliers += rec.OutlierCount
		w := float64(rec.ShotCount)
		xs = append(xs, rec.ClusterMPI.X)
		ys = append(ys, rec.ClusterMPI.Y)
		radii = append(radii, rec.ClusterRadius)
		weights = append(weights, w)

		day := rec.Timestamp.Format("2006-01-02")
		agg.ShotsByDay[day] += rec.ShotCount
		agg.RadiusTrend = append(agg.RadiusTrend, TrendPoint{
			Timestamp: rec.Timestamp,
			Radius:    rec.ClusterRadius,
			ShotCount: rec.ShotCount,
		})
	}

	agg.MPI = geometry.Point2D{
		X: stat.Mean(xs, weights),
		Y: stat.Mean(ys, weights),
	}
	agg.Offset = agg.MPI.Norm()
	agg.MeanRadius = stat.Mean(radii, weights)
	if agg.TotalShots > 0 {
		agg.OutlierRate = float64(agg.Outliers) / float64(agg.TotalShots)
	}
	agg.Trend = classifyTrend(agg.RadiusTrend)
	agg.Confidence = pattern.ConfidenceForShots(agg.TotalShots)
	return agg
}

// classifyTrend compares the weighted mean radius of the most recent
// sessions against the window immediately before them. Fewer than
// trendMinSessions sessions is always stable; so is any change within
// trendTolerance.
func classifyTrend(points []TrendPoint) Trend {
	if len(points) < trendMinSessions {
		return TrendStable
	}
	n := trendWindow
	if half := len(points) / 2; half < n {
		n = half
	}

	recent := points[len(points)-n:]
	previous := points[len(points)-2*n : len(points)-n]

	before := windowMean(previous)
	after := windowMean(recent)
	if before == 0 {
		return TrendStable
	}

	change := (after - before) / before
	switch {
	case change <= -trendTolerance:
		return TrendImproving
	case change >= trendTolerance:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func windowMean(points []TrendPoint) float64 {
	radii := make([]float64, len(points))
	weights := make([]float64, len(points))
	for i, p := range points {
		radii[i] = p.Radius
		weights[i] = float64(p.ShotCount)
	}
	return stat.Mean(radii, weights)
}
