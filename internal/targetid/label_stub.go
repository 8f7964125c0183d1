//go:build !cgo || !linux

package targetid

// ReadLabel is unavailable without the tesseract bindings.
func ReadLabel(imagePath string) (Face, error) {
	return Face{}, ErrUnavailable
}
