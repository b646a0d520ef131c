// Package stringart turns a grayscale image into an ordered list of chords
// between pins on a circle, so that the chords drawn in sequence approximate
// the image ("string art").
//
// # Overview
//
// The engine is greedy. From the current pin it scores every legal chord to
// another pin, commits the best one if it improves the approximation, and
// moves to the chord's far end. Scoring works on a coarse coverage grid
// (one counter per block×block cell) instead of per pixel, so each step is
// a cheap sum over the handful of cells a chord crosses.
//
// # Quick Start
//
//	target, err := stringart.TargetFromImage(img)
//	if err != nil {
//	    return err
//	}
//	eng, err := stringart.NewEngine(target, stringart.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
//
//	res, err := eng.Run(ctx, stringart.NewStrideRecovery(eng.Config().PinCount, 18))
//	for _, c := range res.Chords {
//	    fmt.Println(c.From, c.To)
//	}
//
// # Scoring
//
// For a chord that adds cnt new pixels to a cell with current ink p, target
// darkness t in [0, 1] and cell area A, the contribution is
//
//	cnt * (2*t - (2*p + cnt)/A)
//
// which is the decrease of the squared error (t - coverage)² when coverage
// grows from p/A to (p+cnt)/A, scaled by A. A chord's score is the sum over
// the cells it touches.
//
// # Phases
//
// Every step has a read phase, during which many goroutines score candidates
// through a [ScoringView], followed by a single threaded commit through a
// [CommitHandle]. Nothing is written while scoring runs, so no locks are
// taken on the hot path, and the result does not depend on the number of
// workers.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down. Pin 0 lies
// on the positive X axis and pins proceed counter-clockwise on screen.
package stringart

// Version is the current version of the library.
const Version = "0.1.0"
