package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"target-scorer/internal/history"
	"target-scorer/internal/insight"
	"target-scorer/internal/pattern"
	"target-scorer/internal/project"
	"target-scorer/pkg/geometry"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		shotsPath   string
		sessionPath string
		save        bool
		sessionType string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute group statistics for a set of normalized shots",
		Long: `Reads a JSON array of normalized shot positions ({"x":..,"y":..},
with the outermost ring at distance 1.0) and reports group statistics
and practice insights. With --save the session is appended to history.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				shots []geometry.Point2D
				err   error
			)
			switch {
			case shotsPath != "":
				shots, err = loadShots(shotsPath)
			case sessionPath != "":
				shots, err = loadSessionShots(sessionPath)
			default:
				return fmt.Errorf("one of --shots or --session is required")
			}
			if err != nil {
				return err
			}

			analysis := pattern.Analyze(shots)
			if jsonOut {
				if err := json.NewEncoder(os.Stdout).Encode(analysis); err != nil {
					return err
				}
			} else {
				printAnalysis(analysis)
			}

			if save {
				if analysis.Suppressed {
					return fmt.Errorf("cannot save: %s", analysis.SuppressReason)
				}
				cfg, err := loadFileConfig()
				if err != nil {
					return err
				}
				store, err := history.Open(cfg.DatabasePath())
				if err != nil {
					return err
				}
				defer store.Close()

				rec, err := history.NewRecord(time.Now(), sessionType, shots, analysis)
				if err != nil {
					return err
				}
				saved, err := store.Append(context.Background(), rec)
				if err != nil {
					return err
				}
				if !jsonOut {
					fmt.Printf("\nSaved session %d to %s\n", saved.ID, cfg.DatabasePath())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&shotsPath, "shots", "", "path to JSON file of normalized shot positions")
	cmd.Flags().StringVar(&sessionPath, "session", "", "path to a session file written by detect")
	cmd.Flags().BoolVar(&save, "save", false, "append this session to history")
	cmd.Flags().StringVar(&sessionType, "session-type", "practice", "session label for history filtering")
	return cmd
}

// loadSessionShots reads a session file and converts its confirmed holes
// to normalized coordinates through the stored crop geometry.
func loadSessionShots(path string) ([]geometry.Point2D, error) {
	f, err := project.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if f.Crop == nil {
		return nil, fmt.Errorf("session %s has no crop geometry", path)
	}
	crop, err := f.Crop.Geometry()
	if err != nil {
		return nil, fmt.Errorf("session crop: %w", err)
	}
	shots := make([]geometry.Point2D, len(f.Holes))
	for i, h := range f.Holes {
		shots[i] = crop.ToNormalized(h.Position)
	}
	return shots, nil
}

func loadShots(path string) ([]geometry.Point2D, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shots: %w", err)
	}
	var shots []geometry.Point2D
	if err := json.Unmarshal(data, &shots); err != nil {
		return nil, fmt.Errorf("parse shots: %w", err)
	}
	return shots, nil
}

func printAnalysis(a pattern.Analysis) {
	if a.Suppressed {
		fmt.Printf("%d shots recorded. %s.\n", a.ShotCount, a.SuppressReason)
		return
	}

	fmt.Printf("Shots:          %d\n", a.ShotCount)
	fmt.Printf("MPI:            (%.3f, %.3f), offset %.3f\n", a.MPI.X, a.MPI.Y, a.MPI.Norm())
	fmt.Printf("Group radius:   %.3f\n", a.GroupRadius)
	fmt.Printf("Extreme spread: %.3f\n", a.ExtremeSpread)
	fmt.Printf("CEP50 / CEP90:  %.3f / %.3f\n", a.CEP50, a.CEP90)
	fmt.Printf("Outliers:       %d\n", a.OutlierCount)
	fmt.Printf("Group:          %s, %s (%s confidence)\n", a.Tightness, a.Bias, a.Confidence)

	outlierRate := float64(a.OutlierCount) / float64(a.ShotCount)
	advice := insight.Generate(a.Tightness, a.Bias, history.TrendStable, outlierRate)
	if len(advice) > 0 {
		fmt.Printf("\nInsights:\n")
		for _, adv := range advice {
			fmt.Printf("  - %s\n    Focus: %s\n", adv.Observation, adv.PracticeFocus)
			for _, d := range adv.Drills {
				fmt.Printf("      * %s\n", d)
			}
		}
	}
}
