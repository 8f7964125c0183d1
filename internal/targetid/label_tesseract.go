//go:build cgo && linux

package targetid

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// ReadLabel runs OCR over the image file and matches the text against
// the known target faces.
func ReadLabel(imagePath string) (Face, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(imagePath); err != nil {
		return Face{}, fmt.Errorf("load image for ocr: %w", err)
	}
	// Label text is sparse; single-block mode reads it more reliably
	// than full page segmentation.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return Face{}, fmt.Errorf("set page seg mode: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return Face{}, fmt.Errorf("ocr: %w", err)
	}

	face, ok := matchLabel(text)
	if !ok {
		return Face{}, ErrUnavailable
	}
	return face, nil
}
