// Package photo reads the photo being annotated. Only its dimensions matter
// to the measurement engine; pixels are never processed.
package photo

import (
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/philipparndt/photomeasure/pkg/geometry"
)

// Info describes a photo in photo space
type Info struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Load opens a photo and returns its dimensions after EXIF orientation,
// which is how the photo is displayed
func Load(path string) (Info, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return Info{}, fmt.Errorf("failed to open photo %s: %w", path, err)
	}
	b := img.Bounds()
	return Info{Path: path, Width: b.Dx(), Height: b.Dy()}, nil
}

// Contains reports whether a photo-space point lies on the photo
func (i Info) Contains(p geometry.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= float64(i.Width) && p.Y <= float64(i.Height)
}

// Bounds returns the photo rectangle in photo space
func (i Info) Bounds() geometry.BoundingBox {
	return geometry.NewBoundingBox(geometry.NewPoint(0, 0), geometry.NewPoint(float64(i.Width), float64(i.Height)))
}
