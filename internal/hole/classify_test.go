package hole

import (
	"reflect"
	"testing"

	"target-scorer/internal/target"
	"target-scorer/pkg/geometry"
)

func testConfig() DetectionConfig {
	return DetectionConfig{
		MinCircularity:             0.5,
		AutoAcceptConfidence:       0.8,
		SuggestionConfidence:       0.5,
		MinimumConfidence:          0.3,
		FilterScoringRingArtifacts: true,
		ScoringRingTolerance:       0.02,
		MaxCandidates:              50,
	}
}

func cand(x, y, circ, conf float64) Candidate {
	return Candidate{
		PixelPosition:      geometry.Point2D{X: x * 100, Y: y * 100},
		NormalizedPosition: geometry.Point2D{X: x, Y: y},
		RadiusPixels:       4,
		Circularity:        circ,
		Confidence:         conf,
	}
}

func TestClassifyTriState(t *testing.T) {
	rings := target.StandardRingTable()
	cands := []Candidate{
		cand(0.05, 0.0, 0.9, 0.95),  // accepted
		cand(0.30, 0.0, 0.9, 0.65),  // suggested (upper band)
		cand(0.31, 0.1, 0.9, 0.40),  // suggested (lower band)
		cand(0.45, 0.0, 0.3, 0.90),  // rejected: low circularity
		cand(0.10, 0.1, 0.9, 0.10),  // rejected: low confidence
	}

	result := Classify(cands, rings, testConfig())

	if result.Total() != len(cands) {
		t.Fatalf("classified %d of %d candidates", result.Total(), len(cands))
	}
	if len(result.Accepted) != 1 || result.Accepted[0].Confidence != 0.95 {
		t.Errorf("accepted = %+v", result.Accepted)
	}
	if len(result.Suggested) != 2 {
		t.Fatalf("suggested = %+v", result.Suggested)
	}
	// Upper band ranks before the lower band.
	if result.Suggested[0].Confidence != 0.65 || result.Suggested[1].Confidence != 0.40 {
		t.Errorf("suggested order = %.2f, %.2f", result.Suggested[0].Confidence, result.Suggested[1].Confidence)
	}
	if len(result.Rejected) != 2 {
		t.Fatalf("rejected = %+v", result.Rejected)
	}
	for _, r := range result.Rejected {
		if r.FilterReason == "" {
			t.Errorf("rejected candidate without reason: %+v", r)
		}
	}
}

func TestClassifyRingArtifact(t *testing.T) {
	rings := target.StandardRingTable()
	cfg := testConfig()

	// Sits exactly on the 0.38 ring radius.
	onRing := cand(0.38, 0.0, 0.9, 0.95)
	result := Classify([]Candidate{onRing}, rings, cfg)
	if len(result.Rejected) != 1 || result.Rejected[0].FilterReason != ReasonRingArtifact {
		t.Fatalf("expected ring-artifact rejection, got %+v", result)
	}

	// Same candidate passes with the filter disabled.
	cfg.FilterScoringRingArtifacts = false
	result = Classify([]Candidate{onRing}, rings, cfg)
	if len(result.Accepted) != 1 {
		t.Fatalf("expected acceptance without ring filter, got %+v", result)
	}
}

func TestClassifyBoundariesInclusiveOnHigherTier(t *testing.T) {
	rings := target.StandardRingTable()
	cfg := testConfig()

	atAuto := cand(0.05, 0.0, 0.9, cfg.AutoAcceptConfidence)
	atSuggestion := cand(0.30, 0.0, 0.9, cfg.SuggestionConfidence)
	atMinimum := cand(0.31, 0.1, 0.9, cfg.MinimumConfidence)

	result := Classify([]Candidate{atAuto, atSuggestion, atMinimum}, rings, cfg)
	if len(result.Accepted) != 1 {
		t.Errorf("confidence == auto-accept should accept: %+v", result)
	}
	if len(result.Suggested) != 2 {
		t.Errorf("confidence == suggestion/minimum should suggest: %+v", result)
	}
	if len(result.Rejected) != 0 {
		t.Errorf("unexpected rejections: %+v", result.Rejected)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	rings := target.StandardRingTable()
	cfg := testConfig()
	cands := []Candidate{
		cand(0.30, 0.1, 0.9, 0.6),
		cand(0.05, 0.0, 0.9, 0.9),
		cand(0.45, 0.0, 0.2, 0.9),
		cand(0.10, 0.3, 0.9, 0.6), // same confidence as first, ordered by position
	}

	first := Classify(cands, rings, cfg)
	second := Classify(cands, rings, cfg)
	if !reflect.DeepEqual(first, second) {
		t.Error("classification differs between identical runs")
	}
}
