package stringart

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/stringart/internal/parallel"
	"github.com/gogpu/stringart/internal/raster"
)

// State is the selector state reported by a step.
type State int

const (
	// StateRunning means a chord was committed and the walk moved on.
	StateRunning State = iota
	// StateStalled means no chord from the current pin improves the image.
	// The caller decides how to recover, typically with Reseed.
	StateStalled
	// StateDone means the line budget is used up.
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStalled:
		return "stalled"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// RunState is the walk position.
type RunState struct {
	CurrentPin int
	Lines      int
}

// StepResult describes the outcome of one Step.
type StepResult struct {
	State State
	// From is the pin the step started at.
	From int
	// To is the committed end pin, or From when nothing was committed.
	To int
	// Score is the winning score. It is -Inf when there was no candidate.
	Score float64
	// Lines is the number of committed chords after the step.
	Lines int
}

// CommitHandle is the exclusive writer of an Engine. It is only handed out
// between read phases.
type CommitHandle interface {
	// Commit draws the chord from a to b: it deposits ink, records the edge,
	// appends to the log and moves the walk to b.
	Commit(a, b int) Chord
}

type committer struct {
	e *Engine
}

var _ CommitHandle = committer{}

func (c committer) Commit(a, b int) Chord {
	e := c.e
	raster.VisitLine(e.pins[a], e.pins[b], e.bounds, func(x, y int) {
		if !(e.opts.commitFilter && e.ink.Get(x, y)) {
			e.grid.add(e.grid.CellIndex(x, y), 1)
		}
		e.ink.Set(x, y)
	})

	e.edges.Add(a, b)
	ch := Chord{From: a, To: b}
	e.log.append(ch)
	e.state.Lines++
	e.state.CurrentPin = b
	return ch
}

// Engine owns every piece of mutable run state: the coverage grid, the ink
// mask, the drawn edges, the chord log and the walk position. The target and
// pin layout are fixed at construction.
//
// Engine is not safe for concurrent use. Step parallelises internally.
type Engine struct {
	cfg      Config
	opts     options
	target   *Target
	pins     []image.Point
	bounds   image.Rectangle
	darkness []float64
	area     float64

	grid  *CoverageGrid
	ink   *raster.Mask
	edges EdgeSet
	log   ChordLog
	state RunState

	pool   *parallel.WorkerPool
	closed bool
	ends   []int
}

// NewEngine validates cfg and prepares an empty run over target.
// The returned Engine holds a worker pool; call Close when done.
func NewEngine(target *Target, cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("%w: nil target", ErrInvalidTarget)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w, h := target.Width(), target.Height()
	e := &Engine{
		cfg:    cfg,
		opts:   o,
		target: target,
		pins:   Pins(w, h, cfg.PinCount),
		bounds: target.Bounds(),
		area:   float64(cfg.BlockArea()),
		grid:   NewCoverageGrid(w, h, cfg.BlockSize),
		ink:    raster.NewMask(w, h),
		state:  RunState{CurrentPin: cfg.StartPin},
		ends:   make([]int, 0, cfg.PinCount),
	}
	e.darkness = cellDarkness(target, e.grid)
	e.pool = parallel.NewWorkerPool(o.workers)

	Logger().Debug("stringart: engine created",
		slog.Int("width", w), slog.Int("height", h),
		slog.Int("pins", cfg.PinCount), slog.Int("block", cfg.BlockSize),
		slog.Int("max_lines", cfg.MaxLines), slog.Int("workers", e.pool.Workers()))
	return e, nil
}

// cellDarkness averages target darkness over each cell's pixels. Partial
// edge cells average only the pixels inside the canvas.
func cellDarkness(t *Target, g *CoverageGrid) []float64 {
	sum := make([]float64, g.Len())
	n := make([]int, g.Len())
	for y := range t.Height() {
		for x := range t.Width() {
			i := g.CellIndex(x, y)
			sum[i] += t.Darkness(x, y)
			n[i]++
		}
	}
	for i := range sum {
		if n[i] > 0 {
			sum[i] /= float64(n[i])
		}
	}
	return sum
}

// Step performs one iteration of the greedy walk from the current pin.
//
// The read phase scores every pin that is neither the current pin nor
// already connected to it, in parallel. If the best score is positive the
// chord is committed and the walk advances; otherwise the state is
// StateStalled and nothing changes. Once the line budget is reached, or
// after Close, Step returns StateDone.
func (e *Engine) Step() StepResult {
	from := e.state.CurrentPin
	res := StepResult{From: from, To: from, Lines: e.state.Lines}

	if e.closed || e.state.Lines >= e.cfg.MaxLines {
		res.State = StateDone
		return res
	}

	best := bestCandidate(e.pool, view{e}, from, e.candidates(from))
	res.Score = best.score
	if best.pin < 0 || !(best.score > 0) {
		res.State = StateStalled
		Logger().Info("stringart: no improving chord",
			slog.Int("pin", from), slog.Int("lines", e.state.Lines))
		return res
	}

	committer{e}.Commit(from, best.pin)
	res.State = StateRunning
	res.To = best.pin
	res.Lines = e.state.Lines
	Logger().Debug("stringart: draw",
		slog.Int("from", from), slog.Int("to", best.pin),
		slog.Float64("score", best.score), slog.Int("lines", res.Lines))
	return res
}

// candidates returns the legal end pins from pin, in ascending order. The
// returned slice is reused by the next call.
func (e *Engine) candidates(from int) []int {
	ends := e.ends[:0]
	for p := range len(e.pins) {
		if p != from && !e.edges.Has(from, p) {
			ends = append(ends, p)
		}
	}
	e.ends = ends
	return ends
}

// Reseed moves the walk to pin without drawing. It is the recovery hook for
// a stalled step.
func (e *Engine) Reseed(pin int) error {
	if pin < 0 || pin >= len(e.pins) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrPinOutOfRange, pin, len(e.pins))
	}
	e.state.CurrentPin = pin
	return nil
}

// View returns the read-only scoring view of the current state. It must not
// be used concurrently with Step, Run or Reseed.
func (e *Engine) View() ScoringView {
	return view{e}
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Target returns the target image.
func (e *Engine) Target() *Target { return e.target }

// Pins returns a copy of the pin coordinates.
func (e *Engine) Pins() []image.Point {
	return append([]image.Point(nil), e.pins...)
}

// State returns the walk position.
func (e *Engine) State() RunState { return e.state }

// Chords returns a copy of the committed chords in order.
func (e *Engine) Chords() []Chord { return e.log.Chords() }

// Log returns the chord log. It must not be retained across Steps.
func (e *Engine) Log() *ChordLog { return &e.log }

// Edges returns the number of distinct drawn edges.
func (e *Engine) Edges() int { return e.edges.Len() }

// Grid returns a snapshot of the coverage grid.
func (e *Engine) Grid() GridSnapshot { return e.grid.Snapshot() }

// Canvas renders the ink mask at canvas resolution, black on white.
func (e *Engine) Canvas() *image.Gray { return e.ink.Gray() }

// Close releases the worker pool. Step reports StateDone afterwards and Run
// returns ErrClosed. Close is safe to call multiple times.
func (e *Engine) Close() {
	e.closed = true
	e.pool.Close()
}
