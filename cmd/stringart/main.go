// Command stringart renders an image as string art: a sequence of chords
// between pins on a circle.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gogpu/stringart"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const banner = `stringart: greedy string art generator
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

func main() {
	log.SetFlags(0)

	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("stringart: %v", err)
	}

	if opts.verbose {
		stringart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	} else {
		stringart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stderr); err != nil {
		log.Fatalf("stringart: %v", err)
	}
}

func run(ctx context.Context, opts cliOptions, report io.Writer) error {
	start := time.Now()
	rc := opts.run

	src, err := readSource(opts.source)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	target, err := prepareTarget(src, rc.Size, rc.BlockSize)
	if err != nil {
		return err
	}

	engineOpts := rc.engineOptions()
	var cp *checkpointer
	if rc.Checkpoint > 0 && opts.destination != pipeName {
		cp = newCheckpointer(opts.destination, rc.Checkpoint, rc.Scale)
		engineOpts = append(engineOpts, stringart.WithObserver(cp.observe))
	}

	eng, err := stringart.NewEngine(target, rc.Config, engineOpts...)
	if err != nil {
		return err
	}
	defer eng.Close()

	res, runErr := eng.Run(ctx, stringart.NewStrideRecovery(rc.PinCount, rc.Stride))
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if cp != nil && cp.err != nil {
		return cp.err
	}

	img := renderResult(target, eng.Pins(), res.Chords, rc)
	if err := writeImage(opts.destination, img); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if opts.jsonPath != "" {
		if err := writeJSON(opts.jsonPath, newChordFile(eng, res)); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(report, "%d chords in %d paths, %d stalls, %d steps (%s) in %.2fs\n",
		len(res.Chords), len(eng.Log().Sequences()), res.Stalls, res.Steps,
		res.State, time.Since(start).Seconds())
	if runErr != nil {
		p.Fprintf(report, "interrupted after %d chords\n", len(res.Chords))
	}
	return nil
}

func renderResult(t *stringart.Target, pins []image.Point, chords []stringart.Chord, rc runConfig) image.Image {
	if rc.Thread > 0 {
		return renderThread(t.Width(), t.Height(), pins, chords, rc.Scale, rc.Thread)
	}
	return stringart.Render(t.Width(), t.Height(), pins, chords, rc.Scale)
}

func readSource(source string) (image.Image, error) {
	if source == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return imaging.Decode(os.Stdin, imaging.AutoOrientation(true))
	}
	return imaging.Open(source, imaging.AutoOrientation(true))
}

// prepareTarget shrinks src to one pixel per coverage cell with a Lanczos
// filter, then blows each pixel up to a block×block cell. The canvas side is
// size rounded down to a multiple of block, and every cell is uniform.
func prepareTarget(src image.Image, size, block int) (*stringart.Target, error) {
	cells := max(size/block, 1)
	small := imaging.Grayscale(imaging.Resize(src, cells, cells, imaging.Lanczos))
	img := imaging.Resize(small, cells*block, cells*block, imaging.NearestNeighbor)
	return stringart.TargetFromImage(img)
}
