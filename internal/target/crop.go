package target

import (
	"fmt"

	"target-scorer/pkg/geometry"
)

// CropGeometry describes the perspective-corrected crop for one capture:
// where the crop sits inside the source image, where the target center is
// inside the crop, and the target's semi-axes. All fields are fractional
// (source-image fractions for the crop rect, crop fractions for center and
// semi-axes); the pixel dimensions of the decoded crop anchor the
// conversions.
//
// A CropGeometry is produced once per capture by the external
// perspective-correction collaborator and is immutable afterward.
type CropGeometry struct {
	CropRect geometry.Rect    `json:"crop_rect"`
	Center   geometry.Point2D `json:"center"`
	SemiAxes geometry.Size    `json:"semi_axes"`
	Width    int              `json:"width"`  // crop width in pixels
	Height   int              `json:"height"` // crop height in pixels

	toNorm  geometry.AffineTransform
	toPixel geometry.AffineTransform
}

// NewCropGeometry validates the crop description and precomputes the
// pixel<->normalized transforms. Non-positive semi-axes or dimensions are
// precondition faults: the caller must not analyze a capture with invalid
// geometry.
func NewCropGeometry(cropRect geometry.Rect, center geometry.Point2D, semiAxes geometry.Size, width, height int) (*CropGeometry, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("non-positive crop dimensions %dx%d", width, height)
	}
	if semiAxes.Width <= 0 || semiAxes.Height <= 0 {
		return nil, fmt.Errorf("non-positive semi-axes %.4f x %.4f", semiAxes.Width, semiAxes.Height)
	}

	cx := center.X * float64(width)
	cy := center.Y * float64(height)
	ax := semiAxes.Width * float64(width)
	ay := semiAxes.Height * float64(height)

	// Each axis is divided by its own semi-axis, so the ellipse maps to the
	// unit circle and all downstream radius logic is isotropic.
	toNorm := geometry.Scaling(1/ax, 1/ay).Compose(geometry.Translation(-cx, -cy))
	toPixel, ok := toNorm.Inverse()
	if !ok {
		return nil, fmt.Errorf("degenerate crop geometry")
	}

	return &CropGeometry{
		CropRect: cropRect,
		Center:   center,
		SemiAxes: semiAxes,
		Width:    width,
		Height:   height,
		toNorm:   toNorm,
		toPixel:  toPixel,
	}, nil
}

// ToNormalized converts a pixel position inside the crop to normalized
// target coordinates: (0,0) is target center, magnitude 1 along either
// axis lies on the outermost scoring ring.
func (c *CropGeometry) ToNormalized(px geometry.Point2D) geometry.Point2D {
	return c.toNorm.Apply(px)
}

// ToPixel converts a normalized position back to crop pixel coordinates.
func (c *CropGeometry) ToPixel(n geometry.Point2D) geometry.Point2D {
	return c.toPixel.Apply(n)
}

// SemiAxesPixels returns the target semi-axes in crop pixels.
func (c *CropGeometry) SemiAxesPixels() (float64, float64) {
	return c.SemiAxes.Width * float64(c.Width), c.SemiAxes.Height * float64(c.Height)
}

// CenterPixels returns the target center in crop pixels.
func (c *CropGeometry) CenterPixels() geometry.Point2D {
	return geometry.Point2D{
		X: c.Center.X * float64(c.Width),
		Y: c.Center.Y * float64(c.Height),
	}
}
