package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/philipparndt/photomeasure/internal/app"
	"github.com/philipparndt/photomeasure/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	longest    int
	modeFilter string
	debounce   time.Duration
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List measurements and totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		printReport(s)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the report each time the session file changes",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(listCmd, watchCmd)

	listCmd.Flags().IntVar(&longest, "longest", 0, "Also show the N longest measurements")
	listCmd.Flags().StringVar(&modeFilter, "mode", "", "Only list measurements of this mode")
	watchCmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "Delay before reloading after a change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	printReport(s)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.WatchFile(ctx, sessionPath(), cfg, debounce, func(s *app.Session, err error) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Println()
		printReport(s)
	})
}

func printReport(s *app.Session) {
	info := s.Photo()
	if info.Path != "" {
		fmt.Printf("Photo: %s (%d x %d px)\n", info.Path, info.Width, info.Height)
	}
	if c, ok := s.Calibration(); ok {
		fmt.Printf("Calibration: %s\n", c.String())
	} else {
		fmt.Println("Calibration: none")
	}
	if o, ok := s.ScaleOverlay(); ok {
		fmt.Printf("Map scale: %s (map mode %v)\n", o.Ratio.String(), s.MapMode())
	}
	fmt.Printf("Units: %s\n", s.UnitSystem())

	measurements := s.Measurements()
	entries := make([]analysis.Entry, 0, len(measurements))
	for _, m := range measurements {
		entries = append(entries, analysis.Entry{
			ID:      m.ID,
			Mode:    string(m.Mode()),
			Label:   m.Label,
			Display: m.Result.Display,
			Length:  m.Result.Length,
			Area:    m.Result.Area,
			HasArea: m.Result.HasArea,
			Unit:    m.Result.Unit,
		})
	}
	report := analysis.Analyze(entries)

	shown := report.Entries
	if modeFilter != "" {
		shown = analysis.FindByMode(report, modeFilter)
	}
	fmt.Printf("\nMeasurements (%d)\n", len(shown))
	fmt.Println("================")
	for _, e := range shown {
		fmt.Printf("  %s  %-9s  %s\n", e.ID, e.Mode, e.Display)
	}

	if len(report.Totals) > 0 {
		fmt.Println("\nTotals")
		fmt.Println("======")
		for _, t := range report.Totals {
			fmt.Printf("  %-3s %s\n", t.Unit, analysis.FormatTotals(t, s.UnitSystem()))
		}
	}

	if longest > 0 {
		fmt.Printf("\nLongest %d\n", longest)
		fmt.Println("==========")
		for i, e := range analysis.FindLongest(report, longest) {
			fmt.Printf("  %d. %s  %s\n", i+1, e.ID, e.Display)
		}
	}
}
