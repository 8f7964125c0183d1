package geometry

import (
	"math"
	"testing"
)

func TestAffineInverseRoundTrip(t *testing.T) {
	tr := Translation(120, -45).Compose(Scaling(2.5, 0.8))
	inv, ok := tr.Inverse()
	if !ok {
		t.Fatal("transform should be invertible")
	}

	pts := []Point2D{{0, 0}, {13.5, -7.25}, {-400, 912}}
	for _, p := range pts {
		back := inv.Apply(tr.Apply(p))
		if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
			t.Errorf("round trip of %+v gave %+v", p, back)
		}
	}
}

func TestAffineDegenerateInverse(t *testing.T) {
	if _, ok := Scaling(1, 0).Inverse(); ok {
		t.Error("zero-scale transform should not be invertible")
	}
}

func TestCentroid(t *testing.T) {
	got := Centroid([]Point2D{{0, 0}, {2, 0}, {2, 2}, {0, 2}})
	if got.X != 1 || got.Y != 1 {
		t.Errorf("centroid = %+v, want (1,1)", got)
	}
	if z := Centroid(nil); z.X != 0 || z.Y != 0 {
		t.Errorf("empty centroid = %+v, want origin", z)
	}
}

func TestMaxPairwiseDistance(t *testing.T) {
	pts := []Point2D{{0, 0}, {3, 4}, {1, 1}}
	if d := MaxPairwiseDistance(pts); math.Abs(d-5) > 1e-12 {
		t.Errorf("max pairwise = %v, want 5", d)
	}
	if d := MaxPairwiseDistance([]Point2D{{1, 1}}); d != 0 {
		t.Errorf("single point max pairwise = %v, want 0", d)
	}
}
