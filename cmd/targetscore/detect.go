package main

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	_ "golang.org/x/image/tiff"

	"target-scorer/internal/config"
	"target-scorer/internal/hole"
	"target-scorer/internal/project"
	"target-scorer/internal/session"
	"target-scorer/internal/target"
	"target-scorer/internal/targetid"
	"target-scorer/pkg/geometry"
)

func newDetectCmd() *cobra.Command {
	var (
		imagePath   string
		cropSpec    string
		preset      string
		identify    bool
		sessionPath string
	)

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect and classify bullet holes in a target photo",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadFileConfig()
			if err != nil {
				return err
			}
			detCfg, err := cfg.DetectionConfig(preset)
			if err != nil {
				return err
			}

			img, format, err := loadImage(imagePath)
			if err != nil {
				return err
			}
			bounds := img.Bounds()
			if !jsonOut {
				fmt.Printf("Loaded %s image: %dx%d pixels\n", format, bounds.Dx(), bounds.Dy())
			}

			rings := target.StandardRingTable()
			aspect := target.StandardAspect
			if identify {
				face, err := targetid.ReadLabel(imagePath)
				if err == nil {
					rings = face.Rings
					aspect = face.Aspect
					if !jsonOut {
						fmt.Printf("Recognized target face: %s\n", face.Name)
					}
				} else if !jsonOut {
					fmt.Printf("Target face not recognized, using standard rings\n")
				}
			}

			crop, err := parseCrop(cropSpec, aspect, bounds.Dx(), bounds.Dy())
			if err != nil {
				return err
			}

			candidates := hole.DetectHoles(img, crop, detCfg)
			result := hole.Classify(candidates, rings, detCfg)

			if sessionPath != "" {
				if err := saveSession(sessionPath, imagePath, preset, crop, result); err != nil {
					return err
				}
				if !jsonOut {
					fmt.Printf("Saved session file %s\n", sessionPath)
				}
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(result)
			}
			printClassification(result, rings)
			return nil
		},
	}

	cmd.Flags().StringVar(&imagePath, "image", "", "path to target photo (TIFF, PNG, or JPEG)")
	cmd.Flags().StringVar(&cropSpec, "crop", "", "target crop as x,y,w,h fractions of the image (default: full frame)")
	cmd.Flags().StringVar(&preset, "preset", "", "detection preset (see 'targetscore presets')")
	cmd.Flags().BoolVar(&identify, "identify", false, "recognize the printed target face label via OCR")
	cmd.Flags().StringVar(&sessionPath, "session", "", "write a session file with the auto-accepted holes")
	cmd.MarkFlagRequired("image")
	return cmd
}

// saveSession writes a session file seeded with the auto-accepted holes
// so corrections can continue in a later run.
func saveSession(sessionPath, imagePath, preset string, crop *target.CropGeometry, result hole.Classification) error {
	name := strings.TrimSuffix(filepath.Base(sessionPath), filepath.Ext(sessionPath))
	f := project.New(name, "practice")
	f.Preset = preset
	f.Crop = project.SpecFor(crop)
	f.Holes = session.SeedFromClassification(result).Holes()
	f.SetImage(sessionPath, imagePath)
	return f.Save(sessionPath)
}

func loadFileConfig() (config.FileConfig, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

func loadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// parseCrop builds the crop geometry from an "x,y,w,h" fractional spec.
// The scoring area is assumed centered in the crop with semi-axes at 90%
// of the half extents, the minor axis scaled by the face aspect.
func parseCrop(spec string, aspect float64, imgW, imgH int) (*target.CropGeometry, error) {
	rect := geometry.NewRect(0, 0, 1, 1)
	if spec != "" {
		vals, err := parseFloats(spec, 4)
		if err != nil {
			return nil, fmt.Errorf("crop spec %q: %w", spec, err)
		}
		rect = geometry.NewRect(vals[0], vals[1], vals[2], vals[3])
	}
	center := rect.Center()
	ax := rect.Width * 0.45
	return target.NewCropGeometry(rect, center, geometry.NewSize(ax, ax*aspect), imgW, imgH)
}

func parseFloats(spec string, n int) ([]float64, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated values, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func printClassification(result hole.Classification, rings target.RingTable) {
	fmt.Printf("\nDetected %d holes (%d accepted, %d suggested, %d rejected):\n",
		result.Total(), len(result.Accepted), len(result.Suggested), len(result.Rejected))
	fmt.Printf("%-10s %10s %10s %8s %8s %12s %6s\n",
		"Status", "X", "Y", "Circ", "Conf", "Reason", "Score")

	printRows := func(status string, cands []hole.Candidate) {
		for _, c := range cands {
			score := rings.ScoreFor(c.NormalizedPosition)
			fmt.Printf("%-10s %10.1f %10.1f %8.2f %8.2f %12s %6d\n",
				status, c.PixelPosition.X, c.PixelPosition.Y,
				c.Circularity, c.Confidence, c.FilterReason, score)
		}
	}
	printRows("accepted", result.Accepted)
	printRows("suggested", result.Suggested)
	printRows("rejected", result.Rejected)
}
