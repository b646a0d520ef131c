package stringart

import (
	"image"
	"image/color"
)

// CoverageGrid counts deposited ink per block×block cell of the canvas.
//
// Cells are stored in a flat slice in row-major order. Edge cells are
// partial when the canvas is not a multiple of the block size; they still
// use the full block area when scoring.
//
// Thread safety: CoverageGrid is NOT thread-safe. Reads may run
// concurrently only while no writer is active; the Engine guarantees this by
// writing exclusively in the commit phase.
type CoverageGrid struct {
	cols   int
	rows   int
	block  int
	counts []int
}

// NewCoverageGrid creates a zeroed grid of ceil(width/block) ×
// ceil(height/block) cells.
func NewCoverageGrid(width, height, block int) *CoverageGrid {
	if width <= 0 || height <= 0 || block <= 0 {
		return &CoverageGrid{block: max(block, 1)}
	}
	cols := (width + block - 1) / block
	rows := (height + block - 1) / block
	return &CoverageGrid{
		cols:   cols,
		rows:   rows,
		block:  block,
		counts: make([]int, cols*rows),
	}
}

// Size returns the grid dimensions in cells.
func (g *CoverageGrid) Size() (cols, rows int) {
	return g.cols, g.rows
}

// BlockSize returns the cell side in pixels.
func (g *CoverageGrid) BlockSize() int {
	return g.block
}

// Len returns the number of cells.
func (g *CoverageGrid) Len() int {
	return len(g.counts)
}

// CellIndex returns the flat index of the cell containing canvas pixel
// (px, py). The pixel must be inside the canvas.
func (g *CoverageGrid) CellIndex(px, py int) int {
	return (py/g.block)*g.cols + px/g.block
}

// Count returns the ink count of the cell with flat index i.
func (g *CoverageGrid) Count(i int) int {
	return g.counts[i]
}

// add deposits n units of ink. Counters never decrease.
func (g *CoverageGrid) add(i, n int) {
	if n > 0 {
		g.counts[i] += n
	}
}

// Snapshot returns an independent copy of the grid state.
func (g *CoverageGrid) Snapshot() GridSnapshot {
	return GridSnapshot{
		Cols:      g.cols,
		Rows:      g.rows,
		BlockSize: g.block,
		Counts:    append([]int(nil), g.counts...),
	}
}

// GridSnapshot is a detached copy of a CoverageGrid, suitable for
// diagnostic rendering after or during a run.
type GridSnapshot struct {
	Cols      int   `json:"cols"`
	Rows      int   `json:"rows"`
	BlockSize int   `json:"block_size"`
	Counts    []int `json:"counts"`
}

// At returns the ink count of cell (cx, cy), or 0 outside the grid.
func (s GridSnapshot) At(cx, cy int) int {
	if cx < 0 || cx >= s.Cols || cy < 0 || cy >= s.Rows {
		return 0
	}
	return s.Counts[cy*s.Cols+cx]
}

// Total returns the sum of all cell counts.
func (s GridSnapshot) Total() int {
	n := 0
	for _, c := range s.Counts {
		n += c
	}
	return n
}

// Image renders the low resolution approximation, one pixel per cell.
// A cell with ink equal to its block area (or more) is black.
func (s GridSnapshot) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, s.Cols, s.Rows))
	area := float64(s.BlockSize * s.BlockSize)
	for cy := range s.Rows {
		for cx := range s.Cols {
			cover := min(float64(s.At(cx, cy))/area, 1)
			img.SetGray(cx, cy, color.Gray{Y: uint8(255 - cover*255 + 0.5)})
		}
	}
	return img
}
