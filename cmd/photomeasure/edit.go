package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/photomeasure/internal/app"
	"github.com/philipparndt/photomeasure/internal/measurement"
	"github.com/philipparndt/photomeasure/pkg/units"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete measurements",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *app.Session) error {
			for _, id := range args {
				if err := s.Delete(id); err != nil {
					return err
				}
				fmt.Printf("Deleted %s\n", id)
			}
			return nil
		})
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Delete the most recent measurement",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *app.Session) error {
			action, id := s.Undo()
			if id != "" {
				fmt.Printf("%s: %s\n", action, id)
			} else {
				fmt.Println(action)
			}
			return nil
		})
	},
}

var labelCmd = &cobra.Command{
	Use:   "label <id> [text]",
	Short: "Set or clear a measurement label",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *app.Session) error {
			if err := s.SetLabel(args[0], strings.Join(args[1:], " ")); err != nil {
				return err
			}
			return printByID(s, args[0])
		})
	},
}

var depthCmd = &cobra.Command{
	Use:   "depth <id> [<value> <unit>]",
	Short: "Set or clear the depth used for volume",
	Args:  cobra.RangeArgs(1, 3),
	RunE:  runDepth,
}

func init() {
	rootCmd.AddCommand(deleteCmd, undoCmd, labelCmd, depthCmd)
}

func runDepth(cmd *cobra.Command, args []string) error {
	var depth *measurement.Depth
	switch len(args) {
	case 1:
	case 3:
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid depth %q: %w", args[1], err)
		}
		u, err := units.Parse(args[2])
		if err != nil {
			return err
		}
		depth = &measurement.Depth{Value: value, Unit: u}
	default:
		return fmt.Errorf("depth needs a value and a unit")
	}

	return withSession(func(s *app.Session) error {
		if err := s.SetDepth(args[0], depth); err != nil {
			return err
		}
		return printByID(s, args[0])
	})
}

func printByID(s *app.Session, id string) error {
	m, ok := s.Measurement(id)
	if !ok {
		return fmt.Errorf("%w: %s", app.ErrNotFound, id)
	}
	printMeasurement(m)
	return nil
}
