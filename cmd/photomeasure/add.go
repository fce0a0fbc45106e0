package main

import (
	"fmt"

	"github.com/philipparndt/photomeasure/internal/app"
	"github.com/philipparndt/photomeasure/internal/lasso"
	"github.com/philipparndt/photomeasure/internal/measurement"
	"github.com/philipparndt/photomeasure/pkg/analysis"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <distance|angle|circle|rectangle> <x,y>...",
	Short: "Add measurements by placing points",
	Long: `Place points in display space at the stored viewport. Points are snapped
like taps: onto nearby existing points, or onto the horizontal or vertical
axis of the previous point. A mode consumes as many points as it needs; extra
points start the next measurement. Distance edges that close a loop are
merged into a polygon.`,
	Args:      cobra.MinimumNArgs(2),
	ValidArgs: []string{"distance", "angle", "circle", "rectangle"},
	RunE:      runAdd,
}

var freehandCmd = &cobra.Command{
	Use:   "freehand <x,y>...",
	Short: "Add a freehand path",
	Long: `Trace a freehand path through the given display-space samples. A path
that returns to its start without crossing itself closes and reports its
enclosed area.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runFreehand,
}

func init() {
	rootCmd.AddCommand(addCmd, freehandCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	mode, ok := app.ParseMode(args[0])
	if !ok || mode == app.ModeFreehand || mode == app.ModeCalibrateCoin || mode == app.ModeCalibrateBlueprint {
		return fmt.Errorf("invalid mode %q", args[0])
	}
	points, err := parsePoints(args[1:])
	if err != nil {
		return err
	}

	return withSession(func(s *app.Session) error {
		s.SetMode(mode)
		for _, p := range points {
			placed := s.PlacePoint(p)
			switch placed.Outcome {
			case app.Blocked:
				return fmt.Errorf("placement blocked: %s", placed.Reason)
			case app.Rejected:
				fmt.Printf("Rejected degenerate %s at %s\n", mode, analysis.FormatPoint(placed.Point))
			case app.Finalized:
				printMeasurement(placed.Measurement)
				if placed.Merged != nil {
					fmt.Printf("Closed loop merged into polygon:\n")
					printMeasurement(placed.Merged)
				}
			}
			if placed.Hint {
				fmt.Println("Hint: measurements keep restarting here. Is the photo calibrated correctly?")
			}
		}
		if n := len(s.InProgress()); n > 0 {
			fmt.Printf("Discarding %d unfinished point(s)\n", n)
		}
		return nil
	})
}

func runFreehand(cmd *cobra.Command, args []string) error {
	points, err := parsePoints(args)
	if err != nil {
		return err
	}

	return withSession(func(s *app.Session) error {
		s.SetMode(app.ModeFreehand)
		if placed := s.BeginFreehand(points[0]); placed.Outcome == app.Blocked {
			return fmt.Errorf("placement blocked: %s", placed.Reason)
		}
		for _, p := range points[1:] {
			if e := s.ExtendFreehand(p); e == lasso.CloseRejected {
				fmt.Println("Path crosses itself, left open")
			}
		}
		placed := s.EndFreehand()
		if placed.Outcome != app.Finalized {
			return fmt.Errorf("freehand path too short")
		}
		printMeasurement(placed.Measurement)
		return nil
	})
}

func printMeasurement(m *measurement.Measurement) {
	fmt.Printf("  %s  %-9s  %s\n", m.ID, m.Mode(), m.Result.Display)
}
