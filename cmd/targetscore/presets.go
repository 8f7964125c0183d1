package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"target-scorer/internal/hole"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in detection presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOut {
				out := map[string]hole.DetectionConfig{}
				for _, name := range hole.PresetNames() {
					cfg, err := hole.PresetByName(name)
					if err != nil {
						return err
					}
					out[name] = cfg
				}
				return json.NewEncoder(os.Stdout).Encode(out)
			}

			fmt.Printf("%-12s %8s %8s %8s %8s %8s %6s\n",
				"Preset", "MinCirc", "Auto", "Suggest", "Floor", "LocalBg", "Max")
			for _, name := range hole.PresetNames() {
				cfg, err := hole.PresetByName(name)
				if err != nil {
					return err
				}
				fmt.Printf("%-12s %8.2f %8.2f %8.2f %8.2f %8v %6d\n",
					name, cfg.MinCircularity, cfg.AutoAcceptConfidence,
					cfg.SuggestionConfidence, cfg.MinimumConfidence,
					cfg.UseLocalBackground, cfg.MaxCandidates)
			}
			return nil
		},
	}
}
