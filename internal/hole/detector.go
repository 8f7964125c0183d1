package hole

import (
	"image"
	"math"
	"sort"

	"target-scorer/internal/target"
	"target-scorer/pkg/geometry"

	"gocv.io/x/gocv"
	xdraw "golang.org/x/image/draw"
)

const (
	// Crops wider than this are downscaled before scanning; candidate
	// positions are reported in original crop pixels regardless.
	maxDetectWidth = 1600

	// Plausible hole radii relative to the target's semi-minor axis.
	minHoleRadiusFrac = 0.015
	maxHoleRadiusFrac = 0.15

	// Contours covering less of their enclosing circle than this are
	// arcs or line fragments, not holes.
	minFillRatio = 0.45

	// Linear penalty on the mean radial deviation of the contour
	// boundary from its mean radius.
	circularityPenalty = 4.0

	circularityWeight = 0.55
	contrastWeight    = 0.45
)

// Dark regions are extracted at several thresholds relative to the mean
// intensity and the results merged; a single cut misses holes in either
// the light or the dark printed zones.
var thresholdLevels = []float64{0.45, 0.60, 0.75}

// DetectHoles scans a perspective-corrected crop for dark, roughly
// circular regions consistent with bullet holes. It is a pure function of
// (image, geometry, config): identical input yields identical output, and
// separate images may be scanned concurrently.
//
// Corrupt or unusable input yields an empty candidate set, never an
// error: detection is best-effort and the operator can always mark holes
// manually.
func DetectHoles(img image.Image, crop *target.CropGeometry, cfg DetectionConfig) []Candidate {
	if img == nil || crop == nil {
		return nil
	}
	bounds := img.Bounds()
	if bounds.Dx() < 8 || bounds.Dy() < 8 {
		return nil
	}

	maxCandidates := cfg.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = DefaultConfig().MaxCandidates
	}

	working, scale := downscaleForDetection(img)

	gray := grayMat(working)
	defer gray.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: 5, Y: 5}, 0, 0, gocv.BorderDefault)

	globalMean := blurred.Mean().Val1
	if globalMean <= 0 {
		return nil
	}

	ax, ay := crop.SemiAxesPixels()
	minor := math.Min(ax, ay) * scale
	minRadius := math.Max(2, minor*minHoleRadiusFrac)
	maxRadius := math.Max(minRadius+1, minor*maxHoleRadiusFrac)

	var candidates []Candidate
	for _, level := range thresholdLevels {
		bin := gocv.NewMat()
		gocv.Threshold(blurred, &bin, float32(globalMean*level), 255, gocv.ThresholdBinaryInv)

		contours := gocv.FindContours(bin, gocv.RetrievalExternal, gocv.ChainApproxNone)
		for i := 0; i < contours.Size(); i++ {
			cand, ok := evalContour(contours.At(i), blurred, globalMean, minRadius, maxRadius, cfg.UseLocalBackground)
			if !ok {
				continue
			}
			candidates = mergeCandidate(candidates, cand)
		}
		contours.Close()
		bin.Close()
	}

	// Map back to original crop pixels and attach normalized positions.
	for i := range candidates {
		candidates[i].PixelPosition = candidates[i].PixelPosition.Scale(1 / scale)
		candidates[i].RadiusPixels /= scale
		candidates[i].NormalizedPosition = crop.ToNormalized(candidates[i].PixelPosition)
	}

	sortCandidates(candidates)
	if len(candidates) > maxCandidates {
		// Excess low-ranked candidates are dropped outright, never
		// surfaced as rejections.
		candidates = candidates[:maxCandidates]
	}
	return candidates
}

// evalContour measures one dark region and scores it as a hole candidate.
func evalContour(contour gocv.PointVector, blurred gocv.Mat, globalMean, minRadius, maxRadius float64, localBackground bool) (Candidate, bool) {
	n := contour.Size()
	if n < 8 {
		return Candidate{}, false
	}

	var sx, sy float64
	for i := 0; i < n; i++ {
		p := contour.At(i)
		sx += float64(p.X)
		sy += float64(p.Y)
	}
	cx := sx / float64(n)
	cy := sy / float64(n)

	var sumR float64
	radii := make([]float64, n)
	for i := 0; i < n; i++ {
		p := contour.At(i)
		dx := float64(p.X) - cx
		dy := float64(p.Y) - cy
		radii[i] = math.Sqrt(dx*dx + dy*dy)
		sumR += radii[i]
	}
	meanR := sumR / float64(n)
	if meanR < minRadius || meanR > maxRadius {
		return Candidate{}, false
	}

	var sumDev float64
	for _, r := range radii {
		sumDev += math.Abs(r - meanR)
	}
	circularity := clamp01(1 - circularityPenalty*(sumDev/float64(n))/meanR)

	// Arcs along printed ring lines enclose large circles they barely
	// fill; real holes are solid.
	fill := gocv.ContourArea(contour) / (math.Pi * meanR * meanR)
	if fill < minFillRatio {
		return Candidate{}, false
	}

	contrast := contrastScore(blurred, cx, cy, meanR, globalMean, localBackground)
	confidence := clamp01(circularityWeight*circularity + contrastWeight*contrast)

	return Candidate{
		PixelPosition: geometry.Point2D{X: cx, Y: cy},
		RadiusPixels:  meanR,
		Circularity:   circularity,
		Confidence:    confidence,
	}, true
}

// contrastScore compares the candidate interior against its surrounding
// annulus. The difference is normalized by the local window mean when
// localBackground is set (so uniformly dark targets still score), or by
// the global background sample otherwise.
func contrastScore(blurred gocv.Mat, cx, cy, radius, globalMean float64, localBackground bool) float64 {
	interior := sampleDiskMean(blurred, cx, cy, radius*0.6)
	annulus := sampleAnnulusMean(blurred, cx, cy, radius*1.4, radius*2.2)
	if interior < 0 || annulus < 0 {
		return 0
	}

	reference := globalMean
	if localBackground {
		if window := sampleDiskMean(blurred, cx, cy, radius*2.5); window > 0 {
			reference = window
		}
	}
	reference = math.Max(reference, 24)

	return clamp01((annulus - interior) / reference * 1.8)
}

// sampleDiskMean averages intensity over a coarse grid inside a disk.
// Returns -1 when no samples land inside the image.
func sampleDiskMean(m gocv.Mat, cx, cy, radius float64) float64 {
	rows, cols := m.Rows(), m.Cols()
	step := math.Max(1, radius/4)
	var sum float64
	var count int
	for dy := -radius; dy <= radius; dy += step {
		for dx := -radius; dx <= radius; dx += step {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			x, y := int(cx+dx), int(cy+dy)
			if x < 0 || x >= cols || y < 0 || y >= rows {
				continue
			}
			sum += float64(m.GetUCharAt(y, x))
			count++
		}
	}
	if count == 0 {
		return -1
	}
	return sum / float64(count)
}

// sampleAnnulusMean averages intensity over rings between two radii.
func sampleAnnulusMean(m gocv.Mat, cx, cy, inner, outer float64) float64 {
	rows, cols := m.Rows(), m.Cols()
	var sum float64
	var count int
	for r := inner; r <= outer; r += math.Max(1, (outer-inner)/3) {
		for a := 0; a < 16; a++ {
			angle := float64(a) * 2 * math.Pi / 16
			x := int(cx + r*math.Cos(angle))
			y := int(cy + r*math.Sin(angle))
			if x < 0 || x >= cols || y < 0 || y >= rows {
				continue
			}
			sum += float64(m.GetUCharAt(y, x))
			count++
		}
	}
	if count == 0 {
		return -1
	}
	return sum / float64(count)
}

// mergeCandidate adds a candidate to the list, deduplicating detections
// of the same hole from different threshold levels: the higher-confidence
// detection wins.
func mergeCandidate(candidates []Candidate, cand Candidate) []Candidate {
	for i, existing := range candidates {
		sep := 0.7*math.Max(existing.RadiusPixels, cand.RadiusPixels) + 2
		if existing.PixelPosition.Distance(cand.PixelPosition) <= sep {
			if cand.Confidence > existing.Confidence {
				candidates[i] = cand
			}
			return candidates
		}
	}
	return append(candidates, cand)
}

// sortCandidates orders by confidence descending with a positional
// tie-break, keeping output deterministic for identical input.
func sortCandidates(candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		if candidates[i].PixelPosition.Y != candidates[j].PixelPosition.Y {
			return candidates[i].PixelPosition.Y < candidates[j].PixelPosition.Y
		}
		return candidates[i].PixelPosition.X < candidates[j].PixelPosition.X
	})
}

// downscaleForDetection shrinks oversized crops to keep the scan cheap.
// Returns the working image and the working/original scale factor.
func downscaleForDetection(img image.Image) (image.Image, float64) {
	bounds := img.Bounds()
	if bounds.Dx() <= maxDetectWidth {
		return img, 1
	}
	scale := float64(maxDetectWidth) / float64(bounds.Dx())
	w := maxDetectWidth
	h := int(math.Round(float64(bounds.Dy()) * scale))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst, scale
}

// grayMat converts a Go image.Image to a single-channel gocv.Mat using
// BT.601 luminance weights.
func grayMat(img image.Image) gocv.Mat {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8U)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			mat.SetUCharAt(y, x, uint8(lum))
		}
	}
	return mat
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
