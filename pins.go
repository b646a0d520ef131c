package stringart

import (
	"image"
	"math"
)

// Pins returns n points evenly spaced on the circle inscribed in a
// width×height canvas. Pin i sits at angle 2πi/n measured counter-clockwise
// from the positive X axis, with Y flipped for top-left origin rasters.
//
// The radius is one pixel short of the inscribed circle so no pin lands on
// the canvas edge. Coordinates are rounded offsets from the centre and
// truncated to integers. Pins returns nil when n <= 0.
func Pins(width, height, n int) []image.Point {
	if n <= 0 {
		return nil
	}

	cx := float64(width) / 2
	cy := float64(height) / 2
	radius := math.Max(math.Min(cx, cy)-1, 0)

	pins := make([]image.Point, n)
	for i := range n {
		theta := float64(i) * 2 * math.Pi / float64(n)
		x := cx + math.Round(radius*math.Cos(theta))
		y := cy - math.Round(radius*math.Sin(theta))
		pins[i] = image.Point{X: int(x), Y: int(y)}
	}
	return pins
}
