package target

import (
	"math"
	"testing"

	"target-scorer/pkg/geometry"
)

func mustCrop(t *testing.T) *CropGeometry {
	t.Helper()
	crop, err := NewCropGeometry(
		geometry.NewRect(0.1, 0.15, 0.8, 0.7),
		geometry.NewPoint2D(0.5, 0.52),
		geometry.NewSize(0.45, 0.45*StandardAspect),
		1200, 900,
	)
	if err != nil {
		t.Fatalf("NewCropGeometry: %v", err)
	}
	return crop
}

func TestNewCropGeometryRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		semi geometry.Size
		w, h int
	}{
		{"zero semi-axis", geometry.NewSize(0, 0.4), 100, 100},
		{"negative semi-axis", geometry.NewSize(0.4, -0.1), 100, 100},
		{"zero width", geometry.NewSize(0.4, 0.4), 0, 100},
		{"negative height", geometry.NewSize(0.4, 0.4), 100, -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCropGeometry(geometry.Rect{}, geometry.NewPoint2D(0.5, 0.5), tc.semi, tc.w, tc.h)
			if err == nil {
				t.Error("expected construction error")
			}
		})
	}
}

func TestNormalizedRoundTrip(t *testing.T) {
	crop := mustCrop(t)
	pts := []geometry.Point2D{
		{X: 600, Y: 468}, // target center
		{X: 0, Y: 0},
		{X: 1199, Y: 899},
		{X: 333.25, Y: 107.8},
	}
	for _, p := range pts {
		back := crop.ToPixel(crop.ToNormalized(p))
		if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
			t.Errorf("round trip of %+v gave %+v", p, back)
		}
	}
}

func TestNormalizedAnisotropy(t *testing.T) {
	crop := mustCrop(t)
	ax, ay := crop.SemiAxesPixels()
	center := crop.CenterPixels()

	// One semi-axis along each direction lands on the unit circle.
	right := crop.ToNormalized(geometry.Point2D{X: center.X + ax, Y: center.Y})
	if math.Abs(right.X-1) > 1e-9 || math.Abs(right.Y) > 1e-9 {
		t.Errorf("east semi-axis normalized to %+v, want (1,0)", right)
	}
	down := crop.ToNormalized(geometry.Point2D{X: center.X, Y: center.Y + ay})
	if math.Abs(down.X) > 1e-9 || math.Abs(down.Y-1) > 1e-9 {
		t.Errorf("south semi-axis normalized to %+v, want (0,1)", down)
	}
}

func TestRingTableValidation(t *testing.T) {
	if _, err := NewRingTable(nil); err == nil {
		t.Error("empty table should fail")
	}
	if _, err := NewRingTable([]Ring{{10, 0.2}, {9, 0.1}}); err == nil {
		t.Error("non-increasing radii should fail")
	}
	if _, err := NewRingTable([]Ring{{10, 0.2}, {10, 0.5}}); err == nil {
		t.Error("non-decreasing scores should fail")
	}
	if _, err := NewRingTable([]Ring{{10, 0.3}, {9, 0.9}}); err == nil {
		t.Error("outermost radius != 1 should fail")
	}
	if _, err := NewRingTable([]Ring{{10, 0.3}, {9, 1.0}}); err != nil {
		t.Errorf("valid table rejected: %v", err)
	}
}

func TestScoreFor(t *testing.T) {
	rings := StandardRingTable()

	// Strictly inside the innermost ring scores the maximum.
	if got := rings.ScoreFor(geometry.NewPoint2D(0.05, 0.05)); got != rings.MaxScore() {
		t.Errorf("inner point scored %d, want %d", got, rings.MaxScore())
	}
	// Beyond the outermost ring scores zero.
	if got := rings.ScoreFor(geometry.NewPoint2D(0.9, 0.9)); got != 0 {
		t.Errorf("outside point scored %d, want 0", got)
	}
	// Exactly on a boundary resolves to the inner (higher) score.
	if got := rings.ScoreFor(geometry.NewPoint2D(0.24, 0)); got != 9 {
		t.Errorf("boundary point scored %d, want 9", got)
	}
	if got := rings.ScoreFor(geometry.NewPoint2D(1.0, 0)); got != 5 {
		t.Errorf("outermost boundary scored %d, want 5", got)
	}
}
