package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/philipparndt/photomeasure/internal/app"
	"github.com/philipparndt/photomeasure/pkg/geometry"
	"github.com/spf13/cobra"
)

var (
	photoPath  string
	viewWidth  float64
	viewHeight float64
	force      bool
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new session",
	Long: `Start a new session file, optionally for a photo. The photo is fitted into
a view of the given size; points passed to other commands are in that view.`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().StringVar(&photoPath, "photo", "", "Photo to annotate")
	newCmd.Flags().Float64Var(&viewWidth, "view-width", 390, "View width in display pixels")
	newCmd.Flags().Float64Var(&viewHeight, "view-height", 844, "View height in display pixels")
	newCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing session file")
}

func runNew(cmd *cobra.Command, args []string) error {
	path := sessionPath()
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("session %s already exists, use --force to replace it", path)
	}

	s := app.NewSession(cfg)
	if photoPath != "" {
		info, err := s.OpenPhoto(photoPath, viewWidth, viewHeight)
		if err != nil {
			return err
		}
		fmt.Printf("Photo: %s (%d x %d px)\n", info.Path, info.Width, info.Height)
	}
	if err := s.SaveFile(path); err != nil {
		return err
	}
	fmt.Printf("Created session %s\n", path)
	return nil
}

func sessionPath() string {
	return v.GetString("session")
}

// openSession loads the session file named by --session
func openSession() (*app.Session, error) {
	path := sessionPath()
	s := app.NewSession(cfg)
	if err := s.LoadFile(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no session at %s, run 'photomeasure new' first", path)
		}
		return nil, err
	}
	return s, nil
}

// withSession loads the session, runs fn and saves the result
func withSession(fn func(*app.Session) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return s.SaveFile(sessionPath())
}

// parsePoint parses an "x,y" display-space point
func parsePoint(arg string) (geometry.Point, error) {
	var x, y float64
	if _, err := fmt.Sscanf(arg, "%g,%g", &x, &y); err != nil {
		return geometry.Point{}, fmt.Errorf("invalid point %q, expected x,y: %w", arg, err)
	}
	return geometry.NewPoint(x, y), nil
}

func parsePoints(args []string) ([]geometry.Point, error) {
	points := make([]geometry.Point, 0, len(args))
	for _, arg := range args {
		p, err := parsePoint(arg)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}
