package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/stringart"
	"gopkg.in/yaml.v3"
)

// runConfig is everything a run needs, loadable from YAML and overridable
// from flags.
type runConfig struct {
	stringart.Config `yaml:",inline"`

	// Size is the side of the square canvas the input is resized to.
	Size       int  `yaml:"size"`
	Stride     int  `yaml:"stride"`
	Workers    int  `yaml:"workers"`
	Scale      int  `yaml:"scale"`
	Checkpoint int  `yaml:"checkpoint"`
	ScoreInked bool `yaml:"score_inked"`
	CommitAll  bool `yaml:"commit_all"`
	// Thread is the stroke opacity of the antialiased render. Zero selects
	// the pixel render that matches the engine's canvas.
	Thread float64 `yaml:"thread"`
}

func defaultRunConfig() runConfig {
	return runConfig{
		Config:     stringart.DefaultConfig(),
		Size:       1024,
		Stride:     stringart.DefaultStride,
		Scale:      1,
		Checkpoint: 500,
		CommitAll:  true,
	}
}

func (c runConfig) validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	switch {
	case c.Size < 2:
		return fmt.Errorf("size %d must be at least 2", c.Size)
	case c.Scale < 1:
		return fmt.Errorf("scale %d must be at least 1", c.Scale)
	case c.Checkpoint < 0:
		return fmt.Errorf("checkpoint %d must not be negative", c.Checkpoint)
	case c.Thread < 0 || c.Thread > 1:
		return fmt.Errorf("thread opacity %g outside [0, 1]", c.Thread)
	}
	return nil
}

func (c runConfig) engineOptions() []stringart.Option {
	return []stringart.Option{
		stringart.WithWorkers(c.Workers),
		stringart.WithScoringFilter(!c.ScoreInked),
		stringart.WithCommitFilter(!c.CommitAll),
	}
}

// decodeConfig overlays YAML from r onto cfg. Unknown keys are rejected.
func decodeConfig(r io.Reader, cfg *runConfig) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// cliOptions are the command line settings.
type cliOptions struct {
	source      string
	destination string
	jsonPath    string
	configPath  string
	verbose     bool
	run         runConfig
}

func parseArgs(args []string, stderr io.Writer) (cliOptions, error) {
	opts := cliOptions{run: defaultRunConfig()}
	rc := &opts.run

	fs := flag.NewFlagSet("stringart", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, banner, stringart.Version)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.source, "in", pipeName, "Source image")
	fs.StringVar(&opts.destination, "out", "stringart.png", "Destination image (.png or .jpg, - for stdout)")
	fs.StringVar(&opts.jsonPath, "json", "", "Write pins and chords as JSON (- for stdout)")
	fs.StringVar(&opts.configPath, "config", "", "YAML config file; flags override its values")
	fs.BoolVar(&opts.verbose, "v", false, "Log every committed chord")

	fs.IntVar(&rc.BlockSize, "block", rc.BlockSize, "Coverage cell size in pixels")
	fs.IntVar(&rc.PinCount, "pins", rc.PinCount, "Number of pins on the circle")
	fs.IntVar(&rc.MaxLines, "lines", rc.MaxLines, "Maximum number of chords")
	fs.IntVar(&rc.StartPin, "start", rc.StartPin, "Pin the walk starts at")
	fs.IntVar(&rc.Size, "size", rc.Size, "Canvas side the input is resized to, rounded down to a multiple of -block")
	fs.IntVar(&rc.Stride, "stride", rc.Stride, "Pins to jump forward after a stall")
	fs.IntVar(&rc.Workers, "workers", rc.Workers, "Scoring workers (0 = all CPUs)")
	fs.IntVar(&rc.Scale, "scale", rc.Scale, "Output magnification")
	fs.IntVar(&rc.Checkpoint, "checkpoint", rc.Checkpoint, "Save a preview every N chords and on stalls (0 = off)")
	fs.BoolVar(&rc.ScoreInked, "score-inked", rc.ScoreInked, "Count already inked pixels when scoring")
	fs.Float64Var(&rc.Thread, "thread", rc.Thread, "Antialiased render with this stroke opacity (0 = pixel render)")
	fs.BoolVar(&rc.CommitAll, "commit-all", rc.CommitAll, "Add every chord pixel to the coverage grid, inked or not")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.configPath != "" {
		explicit := make(map[string]string)
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })

		f, err := os.Open(opts.configPath)
		if err != nil {
			return opts, err
		}
		err = decodeConfig(f, rc)
		_ = f.Close()
		if err != nil {
			return opts, err
		}

		for name, value := range explicit {
			if err := fs.Set(name, value); err != nil {
				return opts, err
			}
		}
	}

	return opts, rc.validate()
}
