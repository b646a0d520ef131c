package stringart

import (
	"context"
	"log/slog"
)

// Observer receives every step taken by Run.
type Observer func(e *Engine, res StepResult)

// RecoveryPolicy decides what Run does after a stalled step.
type RecoveryPolicy interface {
	// Recover returns the pin to continue from after the walk stalled at
	// pin for the stalls-th consecutive time, or false to end the run.
	Recover(pin, stalls int) (next int, ok bool)
}

// StopOnStall ends the run at the first stall.
type StopOnStall struct{}

// Recover implements RecoveryPolicy.
func (StopOnStall) Recover(int, int) (int, bool) { return 0, false }

// StrideRecovery jumps Stride pins forward after a stall and gives up after
// MaxStalls consecutive stalls.
type StrideRecovery struct {
	PinCount  int
	Stride    int
	MaxStalls int
}

// DefaultStride is the jump used by NewStrideRecovery callers that have no
// better choice.
const DefaultStride = 18

// NewStrideRecovery returns a StrideRecovery that gives up once every pin
// the stride can reach has stalled in a row. Jumping by stride from any pin
// visits pinCount/gcd(pinCount, stride) distinct pins, so with 255 pins and
// stride 18 the walk gives up after 85 stalls.
func NewStrideRecovery(pinCount, stride int) StrideRecovery {
	return StrideRecovery{PinCount: pinCount, Stride: stride, MaxStalls: orbitLen(pinCount, stride)}
}

// orbitLen returns the number of distinct pins reached by repeatedly adding
// stride modulo n.
func orbitLen(n, stride int) int {
	if n <= 0 {
		return 0
	}
	a, b := n, stride%n
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return n / a
}

// Recover implements RecoveryPolicy.
func (s StrideRecovery) Recover(pin, stalls int) (int, bool) {
	if s.PinCount <= 0 || (s.MaxStalls > 0 && stalls >= s.MaxStalls) {
		return 0, false
	}
	next := (pin + s.Stride) % s.PinCount
	if next < 0 {
		next += s.PinCount
	}
	return next, true
}

// Result summarises a finished Run.
type Result struct {
	// Chords are all committed chords in order.
	Chords []Chord
	// State is StateDone when the line budget was reached, StateStalled when
	// the recovery policy gave up.
	State State
	// Steps counts every Step, stalled or not.
	Steps int
	// Stalls counts stalled steps.
	Stalls int
}

// Run drives Step until the line budget is reached or policy gives up.
// A nil policy behaves like StopOnStall.
//
// ctx is checked before every step. On cancellation Run returns the
// partial result and ctx.Err(); the engine is left between iterations and can
// be run again.
func (e *Engine) Run(ctx context.Context, policy RecoveryPolicy) (Result, error) {
	if e.closed {
		return Result{Chords: e.Chords(), State: StateDone}, ErrClosed
	}
	if policy == nil {
		policy = StopOnStall{}
	}

	var (
		res         Result
		consecutive int
	)
	for {
		if err := ctx.Err(); err != nil {
			res.Chords = e.Chords()
			Logger().Warn("stringart: run cancelled",
				slog.Int("lines", e.state.Lines), slog.Any("err", err))
			return res, err
		}

		step := e.Step()
		res.Steps++
		res.State = step.State
		if e.opts.observer != nil {
			e.opts.observer(e, step)
		}

		switch step.State {
		case StateRunning:
			consecutive = 0
			continue
		case StateDone:
		case StateStalled:
			res.Stalls++
			consecutive++
			next, ok := policy.Recover(step.From, consecutive)
			if ok {
				if err := e.Reseed(next); err != nil {
					res.Chords = e.Chords()
					return res, err
				}
				Logger().Info("stringart: reseed",
					slog.Int("from", step.From), slog.Int("to", next))
				continue
			}
		}

		res.Chords = e.Chords()
		Logger().Info("stringart: run finished",
			slog.String("state", res.State.String()),
			slog.Int("lines", e.state.Lines),
			slog.Int("inked", e.ink.Count()),
			slog.Int("steps", res.Steps), slog.Int("stalls", res.Stalls))
		return res, nil
	}
}
