// Package viewer maps between photo-space and the pannable, zoomable display.
package viewer

import (
	"math"

	"github.com/philipparndt/photomeasure/pkg/geometry"
)

// Viewport holds the pan/zoom state owned by the display layer.
// Rotation is a display-only transform for the renderer; ToPhoto and
// ToDisplay ignore it.
type Viewport struct {
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
	Rotation   float64 `json:"rotation,omitempty"` // degrees
}

// Identity returns a viewport that shows the photo at 1:1 without panning
func Identity() Viewport {
	return Viewport{Scale: 1}
}

// FitPhoto returns the viewport that fits a photo into a view, centered
func FitPhoto(photoWidth, photoHeight, viewWidth, viewHeight float64) Viewport {
	if photoWidth <= 0 || photoHeight <= 0 || viewWidth <= 0 || viewHeight <= 0 {
		return Identity()
	}
	scale := math.Min(viewWidth/photoWidth, viewHeight/photoHeight)
	return Viewport{
		Scale:      scale,
		TranslateX: (viewWidth - photoWidth*scale) / 2,
		TranslateY: (viewHeight - photoHeight*scale) / 2,
	}
}

func (v Viewport) scale() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}

// ToPhoto converts a display-space point to photo-space
func (v Viewport) ToPhoto(display geometry.Point) geometry.Point {
	s := v.scale()
	return geometry.NewPoint((display.X-v.TranslateX)/s, (display.Y-v.TranslateY)/s)
}

// ToDisplay converts a photo-space point to display-space
func (v Viewport) ToDisplay(photo geometry.Point) geometry.Point {
	s := v.scale()
	return geometry.NewPoint(photo.X*s+v.TranslateX, photo.Y*s+v.TranslateY)
}

// PhotoLength converts a display-space distance to photo pixels
func (v Viewport) PhotoLength(displayPx float64) float64 {
	return displayPx / v.scale()
}

// DisplayLength converts a photo-space distance to display pixels
func (v Viewport) DisplayLength(photoPx float64) float64 {
	return photoPx * v.scale()
}

// Rotated reports whether the renderer applies a rotation the mapping does not model
func (v Viewport) Rotated() bool {
	return math.Mod(v.Rotation, 360) != 0
}
