package raster

import (
	"image"
	"image/color"
	"math/bits"
)

// Mask is a one bit per pixel ink model of a canvas. A set bit marks a pixel
// that has been painted by a committed chord.
//
// Thread safety: Get may be called concurrently as long as no Set runs at the
// same time.
type Mask struct {
	width  int
	height int
	words  []uint64
}

// NewMask creates an empty (all blank) mask. Non-positive dimensions yield
// an empty mask that reports every pixel as blank.
func NewMask(width, height int) *Mask {
	if width <= 0 || height <= 0 {
		return &Mask{}
	}
	return &Mask{
		width:  width,
		height: height,
		words:  make([]uint64, (width*height+63)/64),
	}
}

// Bounds returns the pixel rectangle covered by the mask.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Set marks the pixel at (x, y) as inked. Out of bounds pixels are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	i := y*m.width + x
	m.words[i>>6] |= 1 << (uint(i) & 63)
}

// Get reports whether the pixel at (x, y) is inked.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	i := y*m.width + x
	return m.words[i>>6]&(1<<(uint(i)&63)) != 0
}

// Count returns the number of inked pixels.
func (m *Mask) Count() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Gray renders the mask as black ink on white paper.
func (m *Mask) Gray() *image.Gray {
	img := image.NewGray(m.Bounds())
	for y := range m.height {
		for x := range m.width {
			v := uint8(255)
			if m.Get(x, y) {
				v = 0
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}
