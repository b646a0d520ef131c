package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gogpu/stringart"
	"golang.org/x/term"
)

// chordFile is the JSON export of a run.
type chordFile struct {
	Width     int                    `json:"width"`
	Height    int                    `json:"height"`
	Config    stringart.Config       `json:"config"`
	Pins      []image.Point          `json:"pins"`
	Chords    []stringart.Chord      `json:"chords"`
	Sequences [][]int                `json:"sequences"`
	Grid      stringart.GridSnapshot `json:"grid"`
}

func newChordFile(eng *stringart.Engine, res stringart.Result) chordFile {
	t := eng.Target()
	return chordFile{
		Width:     t.Width(),
		Height:    t.Height(),
		Config:    eng.Config(),
		Pins:      eng.Pins(),
		Chords:    res.Chords,
		Sequences: eng.Log().Sequences(),
		Grid:      eng.Grid(),
	}
}

func writeJSON(path string, v any) error {
	w, err := openOutput(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// writeImage encodes img by the destination's extension; stdout gets PNG.
func writeImage(path string, img image.Image) error {
	format := imaging.PNG
	if path != pipeName {
		f, err := imaging.FormatFromFilename(path)
		if err != nil {
			return err
		}
		if f != imaging.PNG && f != imaging.JPEG {
			return fmt.Errorf("output file type not supported: %v", filepath.Ext(path))
		}
		format = f
	}

	w, err := openOutput(path)
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(100)); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func openOutput(path string) (io.WriteCloser, error) {
	if path == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// checkpointer saves intermediate previews every n chords, and on a stall
// when chords were added since the last save.
type checkpointer struct {
	base  string
	ext   string
	every int
	scale int
	dirty bool
	saved int
	err   error
}

func newCheckpointer(destination string, every, scale int) *checkpointer {
	ext := filepath.Ext(destination)
	return &checkpointer{
		base:  strings.TrimSuffix(destination, ext),
		ext:   ext,
		every: every,
		scale: scale,
	}
}

func (c *checkpointer) path(lines int) string {
	return fmt.Sprintf("%s-%05d%s", c.base, lines, c.ext)
}

func (c *checkpointer) observe(e *stringart.Engine, res stringart.StepResult) {
	if c.err != nil {
		return
	}
	switch {
	case res.State == stringart.StateRunning:
		c.dirty = true
		if res.Lines%c.every != 0 {
			return
		}
	case res.State == stringart.StateStalled && c.dirty:
	default:
		return
	}

	if res.Lines == c.saved {
		return
	}
	t := e.Target()
	img := stringart.Render(t.Width(), t.Height(), e.Pins(), e.Chords(), c.scale)
	if err := imaging.Save(img, c.path(res.Lines)); err != nil {
		c.err = fmt.Errorf("checkpoint: %w", err)
		return
	}
	c.saved = res.Lines
	c.dirty = false
}
