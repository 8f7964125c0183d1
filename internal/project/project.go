// Package project provides scoring session file handling and persistence.
// A session file keeps everything needed to reopen a scored target: the
// photo location, the crop geometry, and the operator-confirmed holes.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"target-scorer/internal/session"
	"target-scorer/internal/target"
	"target-scorer/pkg/geometry"
)

// File represents a scoring session file (.scorsession).
type File struct {
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
	SessionType string    `json:"session_type"`
	Notes       string    `json:"notes,omitempty"`

	// Image path (relative to session file)
	ImagePath string `json:"image,omitempty"`

	// Crop geometry and detection settings used for this capture
	Crop   *CropSpec `json:"crop,omitempty"`
	Preset string    `json:"preset,omitempty"`

	// Operator-confirmed holes in crop pixel coordinates
	Holes []session.ConfirmedHole `json:"holes"`
}

// CropSpec is the serializable form of the crop geometry.
type CropSpec struct {
	CropRect geometry.Rect    `json:"crop_rect"`
	Center   geometry.Point2D `json:"center"`
	SemiAxes geometry.Size    `json:"semi_axes"`
	Width    int              `json:"width"`
	Height   int              `json:"height"`
}

// Geometry reconstructs the validated crop geometry.
func (c *CropSpec) Geometry() (*target.CropGeometry, error) {
	return target.NewCropGeometry(c.CropRect, c.Center, c.SemiAxes, c.Width, c.Height)
}

// SpecFor captures a crop geometry for persistence.
func SpecFor(g *target.CropGeometry) *CropSpec {
	return &CropSpec{
		CropRect: g.CropRect,
		Center:   g.Center,
		SemiAxes: g.SemiAxes,
		Width:    g.Width,
		Height:   g.Height,
	}
}

// New creates a new session file.
func New(name, sessionType string) *File {
	now := time.Now()
	return &File{
		Version:     1,
		Name:        name,
		Created:     now,
		Modified:    now,
		SessionType: sessionType,
	}
}

// Load loads a session from a file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	return &f, nil
}

// Save saves the session to a file.
func (f *File) Save(path string) error {
	f.Modified = time.Now()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetImage sets the image path (relative to the session file).
func (f *File) SetImage(sessionPath, imagePath string) {
	rel, err := filepath.Rel(filepath.Dir(sessionPath), imagePath)
	if err != nil {
		f.ImagePath = imagePath
	} else {
		f.ImagePath = rel
	}
	f.Modified = time.Now()
}

// GetImagePath returns the absolute path to the target photo.
func (f *File) GetImagePath(sessionPath string) string {
	if f.ImagePath == "" {
		return ""
	}
	if filepath.IsAbs(f.ImagePath) {
		return f.ImagePath
	}
	return filepath.Join(filepath.Dir(sessionPath), f.ImagePath)
}
