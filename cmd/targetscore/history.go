package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"target-scorer/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var (
		rangeName    string
		sessionTypes []string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Summarize stored sessions over a time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadFileConfig()
			if err != nil {
				return err
			}
			filter, err := history.RangeFor(rangeName, time.Now())
			if err != nil {
				return err
			}
			filter.SessionTypes = sessionTypes

			store, err := history.Open(cfg.DatabasePath())
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Query(context.Background(), filter)
			if err != nil {
				return err
			}
			agg := history.Aggregate(records)

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(agg)
			}
			printAggregate(rangeName, agg)
			return nil
		},
	}

	cmd.Flags().StringVar(&rangeName, "range", "all", "time range: today, week, month, or all")
	cmd.Flags().StringSliceVar(&sessionTypes, "type", nil, "filter by session type (repeatable)")
	return cmd
}

func printAggregate(rangeName string, agg history.AggregatedMetrics) {
	if agg.SessionCount == 0 {
		fmt.Printf("No sessions in range %q.\n", rangeName)
		return
	}

	fmt.Printf("Sessions:     %d (%d shots, %s confidence)\n",
		agg.SessionCount, agg.TotalShots, agg.Confidence)
	fmt.Printf("Mean MPI:     (%.3f, %.3f), offset %.3f\n", agg.MPI.X, agg.MPI.Y, agg.Offset)
	fmt.Printf("Mean radius:  %.3f\n", agg.MeanRadius)
	fmt.Printf("Outliers:     %d (%.1f%%)\n", agg.Outliers, agg.OutlierRate*100)
	fmt.Printf("Trend:        %s\n", agg.Trend)

	fmt.Printf("\nShots per day:\n")
	days := make([]string, 0, len(agg.ShotsByDay))
	for d := range agg.ShotsByDay {
		days = append(days, d)
	}
	sort.Strings(days)
	for _, d := range days {
		fmt.Printf("  %s  %d\n", d, agg.ShotsByDay[d])
	}

	fmt.Printf("\nRadius by session:\n")
	fmt.Printf("%-22s %10s %8s\n", "Timestamp", "Radius", "Shots")
	for _, p := range agg.RadiusTrend {
		fmt.Printf("%-22s %10.3f %8d\n",
			p.Timestamp.Local().Format("2006-01-02 15:04"), p.Radius, p.ShotCount)
	}
}
