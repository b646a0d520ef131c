package stringart

// Option configures an Engine during creation.
//
// Example:
//
//	eng, err := stringart.NewEngine(target, cfg,
//	    stringart.WithWorkers(8),
//	    stringart.WithCommitFilter(true),
//	)
type Option func(*options)

// options holds optional Engine configuration.
type options struct {
	workers       int
	scoringFilter bool
	commitFilter  bool
	observer      Observer
}

func defaultOptions() options {
	return options{
		workers:       0, // GOMAXPROCS
		scoringFilter: true,
		commitFilter:  false,
	}
}

// WithWorkers sets the size of the worker pool used to score candidates.
// Zero or negative means GOMAXPROCS. The chord list does not depend on it.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithScoringFilter controls whether scoring skips pixels that are already
// inked on the canvas. Enabled by default.
func WithScoringFilter(enabled bool) Option {
	return func(o *options) {
		o.scoringFilter = enabled
	}
}

// WithCommitFilter controls whether committing a chord skips pixels that are
// already inked when adding to the coverage grid. Disabled by default, so
// every chord pixel adds ink to its cell.
func WithCommitFilter(enabled bool) Option {
	return func(o *options) {
		o.commitFilter = enabled
	}
}

// WithObserver registers a callback invoked by Run after every step, on the
// goroutine that called Run.
func WithObserver(fn Observer) Option {
	return func(o *options) {
		o.observer = fn
	}
}
