package stringart

import (
	"fmt"
	"image"
	"image/color"
)

// Target is the immutable grayscale field the chords approximate.
// Intensities run 0..255, lower is darker.
type Target struct {
	width  int
	height int
	pix    []uint8
}

// NewTarget creates a target from row-major intensities. pix is copied.
func NewTarget(width, height int, pix []uint8) (*Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidTarget, width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: %d intensities for %dx%d", ErrInvalidTarget, len(pix), width, height)
	}
	return &Target{
		width:  width,
		height: height,
		pix:    append([]uint8(nil), pix...),
	}, nil
}

// UniformTarget creates a target of constant intensity.
func UniformTarget(width, height int, intensity uint8) (*Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidTarget, width, height)
	}
	pix := make([]uint8, width*height)
	for i := range pix {
		pix[i] = intensity
	}
	return &Target{width: width, height: height, pix: pix}, nil
}

// TargetFromImage converts img to luma. The target's origin is img's
// Bounds().Min.
func TargetFromImage(img image.Image) (*Target, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image bounds %v", ErrInvalidTarget, b)
	}

	t := &Target{
		width:  b.Dx(),
		height: b.Dy(),
		pix:    make([]uint8, b.Dx()*b.Dy()),
	}

	if g, ok := img.(*image.Gray); ok {
		for y := range t.height {
			off := g.PixOffset(b.Min.X, b.Min.Y+y)
			copy(t.pix[y*t.width:(y+1)*t.width], g.Pix[off:off+t.width])
		}
		return t, nil
	}

	for y := range t.height {
		for x := range t.width {
			c := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			t.pix[y*t.width+x] = c.Y
		}
	}
	return t, nil
}

// Width returns the canvas width in pixels.
func (t *Target) Width() int { return t.width }

// Height returns the canvas height in pixels.
func (t *Target) Height() int { return t.height }

// Bounds returns the canvas rectangle.
func (t *Target) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.width, t.height)
}

// Intensity returns the intensity at (x, y), clamping coordinates to the
// canvas.
func (t *Target) Intensity(x, y int) uint8 {
	x = min(max(x, 0), t.width-1)
	y = min(max(y, 0), t.height-1)
	return t.pix[y*t.width+x]
}

// Darkness returns the desired ink at (x, y): 1 - intensity/255.
func (t *Target) Darkness(x, y int) float64 {
	return 1 - float64(t.Intensity(x, y))/255
}
