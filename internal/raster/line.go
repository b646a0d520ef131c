package raster

import "image"

// VisitLine calls fn for every pixel of the discrete segment between p0 and
// p1 that lies inside bounds, using integer Bresenham stepping.
//
// The traversal always starts from the endpoint with the smaller X (then
// smaller Y), so VisitLine(a, b) and VisitLine(b, a) produce the same pixels
// in the same order. Both endpoints are included. Pixels are monotone in both
// axes along the traversal.
func VisitLine(p0, p1 image.Point, bounds image.Rectangle, fn func(x, y int)) {
	if p1.X < p0.X || (p1.X == p0.X && p1.Y < p0.Y) {
		p0, p1 = p1, p0
	}

	dx := p1.X - p0.X
	dy := -abs(p1.Y - p0.Y)
	sy := 1
	if p1.Y < p0.Y {
		sy = -1
	}

	err := dx + dy
	x, y := p0.X, p0.Y
	for {
		if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			fn(x, y)
		}
		if x == p1.X && y == p1.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x++
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// LineLen returns the number of pixels VisitLine would produce for an
// unclipped segment.
func LineLen(p0, p1 image.Point) int {
	return max(abs(p1.X-p0.X), abs(p1.Y-p0.Y)) + 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
