package main

import (
	"fmt"
	"strconv"

	"github.com/philipparndt/photomeasure/internal/app"
	"github.com/philipparndt/photomeasure/pkg/units"
	"github.com/spf13/cobra"
)

var unitsCmd = &cobra.Command{
	Use:       "units <metric|imperial|toggle>",
	Short:     "Switch the display unit system",
	Long:      `Switch the display unit system. Values stay in the scale tier they were measured in.`,
	ValidArgs: []string{"metric", "imperial", "toggle"},
	Args:      cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *app.Session) error {
			if args[0] == "toggle" {
				s.ToggleUnitSystem()
			} else {
				system, err := units.ParseSystem(args[0])
				if err != nil {
					return err
				}
				s.SetUnitSystem(system)
			}
			fmt.Printf("Units: %s\n", s.UnitSystem())
			return nil
		})
	},
}

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Map mode: measure against a stated map scale",
	Long: `In map mode measurements use the map scale instead of the photo
calibration and angles become compass azimuths. Each measurement keeps the
scale it was taken with.`,
}

var mapOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Enable map mode",
	Args:  cobra.NoArgs,
	RunE:  func(cmd *cobra.Command, args []string) error { return setMapMode(true) },
}

var mapOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Disable map mode",
	Args:  cobra.NoArgs,
	RunE:  func(cmd *cobra.Command, args []string) error { return setMapMode(false) },
}

var mapScaleCmd = &cobra.Command{
	Use:   "scale <screen-distance> <screen-unit> <real-distance> <real-unit>",
	Short: "Set the map scale, for example 1 cm 5 km",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := parseRatio(args)
		if err != nil {
			return err
		}
		return withSession(func(s *app.Session) error {
			if err := s.SetScaleOverlay(r); err != nil {
				return err
			}
			fmt.Printf("Map scale: %s\n", r.String())
			return nil
		})
	},
}

var mapDeclinationCmd = &cobra.Command{
	Use:   "declination <degrees>",
	Short: "Set the magnetic declination added to azimuths",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deg, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid declination %q: %w", args[0], err)
		}
		return withSession(func(s *app.Session) error {
			s.SetDeclination(deg)
			fmt.Printf("Declination: %.1f°\n", deg)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(unitsCmd, mapCmd)
	mapCmd.AddCommand(mapOnCmd, mapOffCmd, mapScaleCmd, mapDeclinationCmd)
}

func setMapMode(on bool) error {
	return withSession(func(s *app.Session) error {
		s.SetMapMode(on)
		if _, ok := s.ScaleOverlay(); on && !ok {
			fmt.Println("Map mode on. Set a scale with 'photomeasure map scale' before measuring.")
			return nil
		}
		fmt.Printf("Map mode: %v\n", on)
		return nil
	})
}
