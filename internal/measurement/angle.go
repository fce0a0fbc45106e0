package measurement

import (
	"math"

	"github.com/philipparndt/photomeasure/pkg/geometry"
)

// InteriorAngle returns the angle at vertex between the legs to a and b,
// in degrees within [0, 180]
func InteriorAngle(a, vertex, b geometry.Point) float64 {
	first := a.Sub(vertex).Angle()
	second := b.Sub(vertex).Angle()
	deg := math.Abs(first-second) * 180 / math.Pi
	if deg > 180 {
		deg = 360 - deg
	}
	return deg
}

// Azimuth returns the clockwise bearing at origin from the north reference
// to the destination, corrected by declination, in degrees within [0, 360)
func Azimuth(origin, north, destination geometry.Point, declination float64) float64 {
	n := north.Sub(origin)
	d := destination.Sub(origin)
	// y grows downwards, so a positive cross product turns clockwise
	deg := math.Atan2(n.Cross(d), n.Dot(d))*180/math.Pi + declination
	return NormalizeDegrees(deg)
}

// NormalizeDegrees folds any angle into [0, 360)
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

var cardinals = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Cardinal names the 8-point compass direction of a bearing
func Cardinal(deg float64) string {
	i := int(math.Floor((NormalizeDegrees(deg)+22.5)/45)) % 8
	return cardinals[i]
}
