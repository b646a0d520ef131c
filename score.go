package stringart

import (
	"image"
	"math"

	"github.com/gogpu/stringart/internal/parallel"
	"github.com/gogpu/stringart/internal/raster"
)

// ScoringView is the read-only face of an Engine used during the read phase
// of a step. Every method is safe for concurrent use while no commit runs.
type ScoringView interface {
	// PinCount returns the number of pins.
	PinCount() int

	// Pin returns the canvas coordinate of pin i.
	Pin(i int) image.Point

	// Connected reports whether a chord between a and b was already drawn.
	Connected(a, b int) bool

	// Score returns the improvement a chord from pin a to pin b would make,
	// or -Inf when it would touch no cell.
	Score(a, b int) float64
}

// view implements ScoringView over an Engine without exposing any writer.
type view struct {
	e *Engine
}

var _ ScoringView = view{}

func (v view) PinCount() int { return len(v.e.pins) }

func (v view) Pin(i int) image.Point { return v.e.pins[i] }

func (v view) Connected(a, b int) bool { return v.e.edges.Has(a, b) }

func (v view) Score(a, b int) float64 {
	e := v.e
	var (
		score   float64
		touched bool
		cell    = -1
		cnt     int
	)

	// Traversal pixels are monotone in both axes, so every cell shows up as
	// one contiguous run and a running counter replaces a per-cell map.
	raster.VisitLine(e.pins[a], e.pins[b], e.bounds, func(x, y int) {
		if e.opts.scoringFilter && e.ink.Get(x, y) {
			return
		}
		c := e.grid.CellIndex(x, y)
		if c != cell {
			if cnt > 0 {
				score += e.contribution(cell, cnt)
				touched = true
			}
			cell, cnt = c, 0
		}
		cnt++
	})
	if cnt > 0 {
		score += e.contribution(cell, cnt)
		touched = true
	}

	if !touched {
		return math.Inf(-1)
	}
	return score
}

// contribution is the squared-error decrease of adding cnt pixels of ink to
// cell, scaled by the block area.
func (e *Engine) contribution(cell, cnt int) float64 {
	pixel := float64(e.grid.Count(cell))
	n := float64(cnt)
	return n * (2*e.darkness[cell] - (2*pixel+n)/e.area)
}

// candidate is a scored end pin.
type candidate struct {
	pin   int
	score float64
}

// noCandidate loses against every real candidate.
var noCandidate = candidate{pin: -1, score: math.Inf(-1)}

// better reports whether a beats b: higher score first, then lower pin.
// NaN scores rank as -Inf so they never win over finite ones.
func better(a, b candidate) bool {
	if b.pin < 0 {
		return a.pin >= 0
	}
	if a.pin < 0 {
		return false
	}
	as, bs := sanitize(a.score), sanitize(b.score)
	if as != bs {
		return as > bs
	}
	return a.pin < b.pin
}

func sanitize(s float64) float64 {
	if math.IsNaN(s) {
		return math.Inf(-1)
	}
	return s
}

// bestCandidate scores every end pin in ends from pin `from` on the pool and
// returns the best by better. The reduction is a total order, so the result
// is the same for any split of ends across workers.
func bestCandidate(pool *parallel.WorkerPool, v ScoringView, from int, ends []int) candidate {
	ranges := parallel.Split(len(ends), pool.Workers())
	partial := make([]candidate, len(ranges))

	pool.ForEach(ranges, func(i int, r parallel.Range) {
		best := noCandidate
		for _, to := range ends[r.Start:r.End] {
			c := candidate{pin: to, score: v.Score(from, to)}
			if better(c, best) {
				best = c
			}
		}
		partial[i] = best
	})

	best := noCandidate
	for _, c := range partial {
		if better(c, best) {
			best = c
		}
	}
	return best
}
