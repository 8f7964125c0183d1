package pattern

import (
	"math"
	"testing"

	"target-scorer/pkg/geometry"
)

func pts(coords ...float64) []geometry.Point2D {
	out := make([]geometry.Point2D, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, geometry.NewPoint2D(coords[i], coords[i+1]))
	}
	return out
}

func TestAnalyzeTightCenteredGroup(t *testing.T) {
	// Five shots clustered around center.
	shots := pts(
		0.02, 0.01,
		-0.03, 0.02,
		0.01, -0.04,
		-0.02, -0.01,
		0.03, 0.03,
	)
	a := Analyze(shots)

	if a.Suppressed {
		t.Fatalf("5-shot group suppressed: %s", a.SuppressReason)
	}
	if a.Tightness != TightnessTight {
		t.Errorf("tightness = %s, want tight (radius %.3f)", a.Tightness, a.GroupRadius)
	}
	if !a.Bias.Centered() {
		t.Errorf("bias = %s, want centered", a.Bias)
	}
	if a.Confidence != ConfidenceMedium {
		t.Errorf("confidence for 5 shots = %s, want medium", a.Confidence)
	}
	if a.OutlierCount != 0 {
		t.Errorf("outliers = %d in a uniform cluster", a.OutlierCount)
	}
}

func TestAnalyzeBiasLowRight(t *testing.T) {
	shots := pts(
		0.30, 0.22,
		0.26, 0.18,
		0.34, 0.25,
	)
	a := Analyze(shots)

	if a.Suppressed {
		t.Fatalf("3-shot group suppressed: %s", a.SuppressReason)
	}
	if a.Bias.Horizontal != "right" || a.Bias.Vertical != "low" {
		t.Errorf("bias = %+v, want low and right", a.Bias)
	}
	if a.Confidence != ConfidenceLow {
		t.Errorf("confidence for 3 shots = %s, want low", a.Confidence)
	}
}

func TestAnalyzeHighIsNegativeY(t *testing.T) {
	shots := pts(
		0.00, -0.30,
		0.02, -0.26,
		-0.02, -0.28,
	)
	a := Analyze(shots)
	if a.Bias.Vertical != "high" {
		t.Errorf("bias = %+v, want high", a.Bias)
	}
	if a.Bias.Horizontal != "" {
		t.Errorf("unexpected horizontal bias %q", a.Bias.Horizontal)
	}
}

func TestAnalyzeSpreadOrdering(t *testing.T) {
	shots := pts(
		0.10, 0.10,
		-0.20, 0.05,
		0.15, -0.25,
		-0.05, 0.30,
		0.25, 0.00,
		-0.15, -0.15,
	)
	a := Analyze(shots)

	if a.GroupRadius > a.ExtremeSpread {
		t.Errorf("group radius %.3f exceeds extreme spread %.3f", a.GroupRadius, a.ExtremeSpread)
	}
	if a.CEP50 > a.CEP90 {
		t.Errorf("CEP50 %.3f exceeds CEP90 %.3f", a.CEP50, a.CEP90)
	}
	if a.CEP90 > a.ExtremeSpread {
		t.Errorf("CEP90 %.3f exceeds extreme spread %.3f", a.CEP90, a.ExtremeSpread)
	}
}

func TestAnalyzeSuppressesSmallGroups(t *testing.T) {
	for n := 0; n < MinimumShots; n++ {
		shots := make([]geometry.Point2D, n)
		a := Analyze(shots)
		if !a.Suppressed {
			t.Errorf("%d shots not suppressed", n)
		}
		if a.SuppressReason == "" {
			t.Errorf("%d shots suppressed without a reason", n)
		}
		if a.ShotCount != n {
			t.Errorf("suppressed result lost shot count: %d", a.ShotCount)
		}
	}
}

func TestAnalyzeCountsOutliersWithoutExcluding(t *testing.T) {
	// Nine clustered shots plus one flyer far outside the cluster.
	shots := pts(
		0.01, 0.01, -0.02, 0.02, 0.02, -0.01,
		-0.01, -0.02, 0.00, 0.02, 0.02, 0.02,
		-0.02, 0.00, 0.01, -0.02, 0.00, -0.01,
		0.80, 0.75,
	)
	a := Analyze(shots)

	if a.OutlierCount != 1 {
		t.Errorf("outliers = %d, want 1", a.OutlierCount)
	}
	if a.ShotCount != 10 {
		t.Errorf("shot count = %d, outliers must not be excluded", a.ShotCount)
	}
	// The flyer still pulls the MPI off center.
	if a.MPI.Norm() < 0.05 {
		t.Errorf("MPI %.3f ignores the flyer", a.MPI.Norm())
	}
	if a.Confidence != ConfidenceHigh {
		t.Errorf("confidence for 10 shots = %s, want high", a.Confidence)
	}
}

func TestAnalyzeMPIIsCentroid(t *testing.T) {
	shots := pts(0.1, 0.2, 0.3, 0.4, 0.2, 0.0)
	a := Analyze(shots)
	wantX, wantY := 0.2, 0.2
	if math.Abs(a.MPI.X-wantX) > 1e-12 || math.Abs(a.MPI.Y-wantY) > 1e-12 {
		t.Errorf("MPI = %v, want (%.1f, %.1f)", a.MPI, wantX, wantY)
	}
}

func TestBiasString(t *testing.T) {
	cases := []struct {
		bias Bias
		want string
	}{
		{Bias{}, "centered"},
		{Bias{Vertical: "high"}, "high"},
		{Bias{Horizontal: "left"}, "left"},
		{Bias{Vertical: "low", Horizontal: "right"}, "low and right"},
	}
	for _, tc := range cases {
		if got := tc.bias.String(); got != tc.want {
			t.Errorf("Bias%+v.String() = %q, want %q", tc.bias, got, tc.want)
		}
	}
}
