package stringart

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/stringart/internal/raster"
)

// Render draws chords as hard one pixel black lines on a white canvas of
// width×height pixels, magnified by scale. Pin coordinates are mapped to the
// centre of their scale×scale block. A scale below 1 is treated as 1.
//
// At scale 1 the result matches Engine.Canvas for the same chords.
func Render(width, height int, pins []image.Point, chords []Chord, scale int) *image.Gray {
	scale = max(scale, 1)
	img := image.NewGray(image.Rect(0, 0, width*scale, height*scale))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	bounds := img.Bounds()
	at := func(p image.Point) image.Point {
		return image.Point{X: p.X*scale + scale/2, Y: p.Y*scale + scale/2}
	}
	for _, c := range chords {
		if c.From < 0 || c.From >= len(pins) || c.To < 0 || c.To >= len(pins) {
			continue
		}
		raster.VisitLine(at(pins[c.From]), at(pins[c.To]), bounds, func(x, y int) {
			img.Pix[img.PixOffset(x, y)] = 0
		})
	}
	return img
}
