package main

import (
	"fmt"
	"strconv"

	"github.com/philipparndt/photomeasure/internal/app"
	"github.com/philipparndt/photomeasure/internal/calibration"
	"github.com/philipparndt/photomeasure/pkg/units"
	"github.com/spf13/cobra"
)

var (
	coinName     string
	coinDiameter float64
	coinUnit     string
	pinDistance  float64
	pinUnit      string
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Calibrate the photo scale",
	Long: `Calibrate the photo against a reference of known size. Recalibrating
recomputes every existing measurement.`,
}

var calibrateCoinCmd = &cobra.Command{
	Use:   "coin <center> <edge>",
	Short: "Calibrate from a coin",
	Long: `Calibrate from a coin lying in the photo. Place the center and a point on
the rim, then give the coin by name (--coin quarter) or by diameter.`,
	Args: cobra.ExactArgs(2),
	RunE: runCalibrateCoin,
}

var calibrateBlueprintCmd = &cobra.Command{
	Use:   "blueprint <pin1> <pin2>",
	Short: "Calibrate from two pins a known distance apart",
	Args:  cobra.ExactArgs(2),
	RunE:  runCalibrateBlueprint,
}

var calibrateVerbalCmd = &cobra.Command{
	Use:   "verbal <screen-distance> <screen-unit> <real-distance> <real-unit>",
	Short: "Calibrate from a stated scale such as 1 cm = 5 km",
	Long: `Calibrate from a stated scale printed on a plan or map. The screen
distance is converted with the configured screen DPI, so the result is an
approximation.`,
	Args: cobra.ExactArgs(4),
	RunE: runCalibrateVerbal,
}

func init() {
	rootCmd.AddCommand(calibrateCmd)
	calibrateCmd.AddCommand(calibrateCoinCmd, calibrateBlueprintCmd, calibrateVerbalCmd)

	calibrateCoinCmd.Flags().StringVar(&coinName, "coin", "", "Known coin (quarter, penny, nickel, dime, euro, 2euro)")
	calibrateCoinCmd.Flags().Float64Var(&coinDiameter, "diameter", 0, "Coin diameter")
	calibrateCoinCmd.Flags().StringVar(&coinUnit, "unit", "mm", "Unit of --diameter")
	calibrateCoinCmd.MarkFlagsOneRequired("coin", "diameter")
	calibrateCoinCmd.MarkFlagsMutuallyExclusive("coin", "diameter")

	calibrateBlueprintCmd.Flags().Float64Var(&pinDistance, "distance", 0, "Real distance between the pins")
	calibrateBlueprintCmd.Flags().StringVar(&pinUnit, "unit", "m", "Unit of --distance")
	calibrateBlueprintCmd.MarkFlagRequired("distance")
}

func runCalibrateCoin(cmd *cobra.Command, args []string) error {
	diameter, unit := coinDiameter, coinUnit
	if coinName != "" {
		d, ok := calibration.CoinDiameter(coinName)
		if !ok {
			return fmt.Errorf("unknown coin %q", coinName)
		}
		diameter, unit = d, "mm"
	}
	u, err := units.Parse(unit)
	if err != nil {
		return err
	}

	return withSession(func(s *app.Session) error {
		if err := placeCalibrationPoints(s, app.ModeCalibrateCoin, args); err != nil {
			return err
		}
		c, err := s.CompleteCoin(diameter, u)
		if err != nil {
			return err
		}
		fmt.Println(c.String())
		return nil
	})
}

func runCalibrateBlueprint(cmd *cobra.Command, args []string) error {
	u, err := units.Parse(pinUnit)
	if err != nil {
		return err
	}

	return withSession(func(s *app.Session) error {
		if err := placeCalibrationPoints(s, app.ModeCalibrateBlueprint, args); err != nil {
			return err
		}
		c, err := s.CompleteBlueprint(pinDistance, u)
		if err != nil {
			return err
		}
		fmt.Println(c.String())
		return nil
	})
}

func runCalibrateVerbal(cmd *cobra.Command, args []string) error {
	r, err := parseRatio(args)
	if err != nil {
		return err
	}

	return withSession(func(s *app.Session) error {
		c, err := s.CalibrateVerbal(r)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", c.String(), r.String())
		return nil
	})
}

func placeCalibrationPoints(s *app.Session, mode app.Mode, args []string) error {
	points, err := parsePoints(args)
	if err != nil {
		return err
	}
	s.SetMode(mode)
	var last app.Placement
	for _, p := range points {
		last = s.PlacePoint(p)
	}
	if !last.CalibrationReady {
		return fmt.Errorf("calibration points rejected: %s", last.Outcome)
	}
	return nil
}

// parseRatio parses "<distance> <unit> <distance> <unit>"
func parseRatio(args []string) (calibration.Ratio, error) {
	screen, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return calibration.Ratio{}, fmt.Errorf("invalid screen distance %q: %w", args[0], err)
	}
	distance, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return calibration.Ratio{}, fmt.Errorf("invalid real distance %q: %w", args[2], err)
	}
	screenUnit, err := units.Parse(args[1])
	if err != nil {
		return calibration.Ratio{}, err
	}
	realUnit, err := units.Parse(args[3])
	if err != nil {
		return calibration.Ratio{}, err
	}
	r := calibration.Ratio{ScreenDistance: screen, ScreenUnit: screenUnit, RealDistance: distance, RealUnit: realUnit}
	return r, r.Validate()
}
