package main

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/gogpu/stringart"
)

// renderThread draws chords as antialiased strokes of the given opacity on
// white, with pins marked as small red dots.
func renderThread(width, height int, pins []image.Point, chords []stringart.Chord, scale int, alpha float64) image.Image {
	s := float64(scale)
	dc := gg.NewContext(width*scale, height*scale)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	at := func(p image.Point) (float64, float64) {
		return (float64(p.X) + 0.5) * s, (float64(p.Y) + 0.5) * s
	}

	dc.SetRGBA(0, 0, 0, alpha)
	dc.SetLineWidth(s)
	for _, ch := range chords {
		if ch.From < 0 || ch.From >= len(pins) || ch.To < 0 || ch.To >= len(pins) {
			continue
		}
		x0, y0 := at(pins[ch.From])
		x1, y1 := at(pins[ch.To])
		dc.DrawLine(x0, y0, x1, y1)
		dc.Stroke()
	}

	dc.SetRGB(0.8, 0.1, 0.1)
	for _, p := range pins {
		x, y := at(p)
		dc.DrawCircle(x, y, s)
	}
	dc.Fill()
	return dc.Image()
}
