package stringart

import (
	"context"
	"errors"
	"slices"
	"testing"
)

// =============================================================================
// Run Property Tests
// =============================================================================

func TestRun_SolidWhiteIsEmpty(t *testing.T) {
	for _, maxLines := range []int{0, 1, 50} {
		cfg := Config{BlockSize: 4, PinCount: 16, MaxLines: maxLines}
		if got := runChords(t, mustUniform(t, 64, 255), cfg); len(got) != 0 {
			t.Errorf("max_lines=%d: %d chords on white target, want 0", maxLines, len(got))
		}
	}
}

func TestRun_SolidBlackSingleLine(t *testing.T) {
	cfg := Config{BlockSize: 8, PinCount: 6, MaxLines: 1}
	got := runChords(t, mustUniform(t, 64, 0), cfg)
	if !slices.Equal(got, []Chord{{0, 3}}) {
		t.Errorf("chords = %v, want [{0 3}]", got)
	}
}

func TestRun_BudgetRespected(t *testing.T) {
	target := noiseTarget(t, 96)
	for _, maxLines := range []int{0, 1, 5, 25, 60} {
		cfg := Config{BlockSize: 6, PinCount: 32, MaxLines: maxLines}
		if got := runChords(t, target, cfg); len(got) > maxLines {
			t.Errorf("max_lines=%d: %d chords", maxLines, len(got))
		}
	}
}

func TestRun_NoDuplicateEdges(t *testing.T) {
	cfg := Config{BlockSize: 6, PinCount: 20, MaxLines: 500}
	e := mustEngine(t, noiseTarget(t, 96), cfg)
	res, err := e.Run(context.Background(), NewStrideRecovery(cfg.PinCount, 3))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	seen := make(map[Edge]bool)
	for _, c := range res.Chords {
		if c.From == c.To {
			t.Fatalf("degenerate chord %v", c)
		}
		if seen[c.Edge()] {
			t.Fatalf("edge %v drawn twice", c.Edge())
		}
		seen[c.Edge()] = true
	}
	if e.Edges() != len(res.Chords) {
		t.Errorf("Edges() = %d, want %d", e.Edges(), len(res.Chords))
	}
}

func TestRun_CommittedScoresPositive(t *testing.T) {
	var scores []float64
	obs := func(_ *Engine, res StepResult) {
		if res.State == StateRunning {
			scores = append(scores, res.Score)
		}
	}

	cfg := Config{BlockSize: 6, PinCount: 32, MaxLines: 80}
	chords := runChords(t, noiseTarget(t, 96), cfg, WithObserver(obs))

	if len(scores) != len(chords) {
		t.Fatalf("observed %d commits, log has %d", len(scores), len(chords))
	}
	for i, s := range scores {
		if !(s > 0) {
			t.Errorf("chord %d committed with score %v", i, s)
		}
	}
}

func TestRun_DeterministicAcrossWorkers(t *testing.T) {
	target := noiseTarget(t, 96)
	cfg := Config{BlockSize: 6, PinCount: 40, MaxLines: 60, StartPin: 7}

	want := runChords(t, target, cfg, WithWorkers(1))
	if len(want) == 0 {
		t.Fatal("expected some chords")
	}
	for _, workers := range []int{2, 3, 8, 0} {
		if got := runChords(t, target, cfg, WithWorkers(workers)); !slices.Equal(got, want) {
			t.Errorf("workers=%d: chords differ from single worker run", workers)
		}
	}
}

func TestRun_LongerBudgetExtendsPrefix(t *testing.T) {
	target := noiseTarget(t, 80)
	cfg := Config{BlockSize: 5, PinCount: 24, MaxLines: 30}
	full := runChords(t, target, cfg)

	for k := range cfg.MaxLines {
		cfg := cfg
		cfg.MaxLines = k
		got := runChords(t, target, cfg)
		if !slices.Equal(got, full[:min(k, len(full))]) {
			t.Fatalf("max_lines=%d: %v is not a prefix of %v", k, got, full)
		}
	}
}

func TestRun_StopOnStall(t *testing.T) {
	e := mustEngine(t, mustUniform(t, 32, 0), Config{BlockSize: 4, PinCount: 2, MaxLines: 10})

	res, err := e.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.State != StateStalled || len(res.Chords) != 1 || res.Stalls != 1 {
		t.Errorf("Run() = %+v, want one chord then a stall", res)
	}
}

func TestRun_StrideRecoveryGivesUp(t *testing.T) {
	e := mustEngine(t, mustUniform(t, 32, 255), Config{BlockSize: 4, PinCount: 8, MaxLines: 10})

	res, err := e.Run(context.Background(), NewStrideRecovery(8, 3))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stalls != 8 || res.Steps != 8 {
		t.Errorf("Stalls = %d, Steps = %d, want 8 and 8", res.Stalls, res.Steps)
	}
	if res.State != StateStalled {
		t.Errorf("State = %v, want stalled", res.State)
	}
}

func TestRun_ReachesDone(t *testing.T) {
	e := mustEngine(t, mustUniform(t, 64, 0), Config{BlockSize: 8, PinCount: 16, MaxLines: 4})

	res, err := e.Run(context.Background(), NewStrideRecovery(16, DefaultStride))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.State != StateDone || len(res.Chords) != 4 {
		t.Errorf("Run() = %v with %d chords, want done with 4", res.State, len(res.Chords))
	}
}

// =============================================================================
// Cancellation Tests
// =============================================================================

func TestRun_CancelledBeforeStart(t *testing.T) {
	e := mustEngine(t, mustUniform(t, 64, 0), Config{BlockSize: 8, PinCount: 16, MaxLines: 10})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := e.Run(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if len(res.Chords) != 0 || res.Steps != 0 {
		t.Errorf("cancelled run did work: %+v", res)
	}
}

func TestRun_CancelBetweenIterationsThenResume(t *testing.T) {
	target := noiseTarget(t, 96)
	cfg := Config{BlockSize: 6, PinCount: 32, MaxLines: 20}
	want := runChords(t, target, cfg)
	if len(want) < 5 {
		t.Fatalf("need at least 5 chords, got %d", len(want))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	obs := func(e *Engine, _ StepResult) {
		if e.State().Lines == 3 {
			cancel()
		}
	}

	e := mustEngine(t, target, cfg, WithObserver(obs))
	res, err := e.Run(ctx, NewStrideRecovery(cfg.PinCount, 7))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if !slices.Equal(res.Chords, want[:3]) {
		t.Fatalf("partial chords = %v, want %v", res.Chords, want[:3])
	}

	res, err = e.Run(context.Background(), NewStrideRecovery(cfg.PinCount, 7))
	if err != nil {
		t.Fatalf("resumed Run: %v", err)
	}
	if !slices.Equal(res.Chords, want) {
		t.Errorf("resumed chords differ from an uninterrupted run")
	}
}

// =============================================================================
// Recovery Policy Tests
// =============================================================================

func TestStrideRecovery(t *testing.T) {
	s := NewStrideRecovery(255, DefaultStride)
	tests := []struct {
		pin, stalls int
		next        int
		ok          bool
	}{
		{pin: 2, stalls: 1, next: 20, ok: true},
		{pin: 250, stalls: 1, next: 13, ok: true},
		{pin: 0, stalls: 84, next: 18, ok: true},
		{pin: 0, stalls: 85, ok: false},
	}
	for _, tt := range tests {
		next, ok := s.Recover(tt.pin, tt.stalls)
		if ok != tt.ok || (ok && next != tt.next) {
			t.Errorf("Recover(%d, %d) = (%d, %v), want (%d, %v)", tt.pin, tt.stalls, next, ok, tt.next, tt.ok)
		}
	}

	if _, ok := (StrideRecovery{}).Recover(0, 1); ok {
		t.Error("zero StrideRecovery should give up")
	}
	if _, ok := (StopOnStall{}).Recover(3, 1); ok {
		t.Error("StopOnStall should give up")
	}
}

func TestNewStrideRecovery_ReachablePins(t *testing.T) {
	tests := []struct {
		pins, stride int
		want         int
	}{
		{255, DefaultStride, 85},
		{8, 3, 8},
		{8, 2, 4},
		{8, -2, 4},
		{8, 0, 1},
		{8, 16, 1},
		{0, 3, 0},
	}
	for _, tt := range tests {
		if got := NewStrideRecovery(tt.pins, tt.stride).MaxStalls; got != tt.want {
			t.Errorf("NewStrideRecovery(%d, %d).MaxStalls = %d, want %d", tt.pins, tt.stride, got, tt.want)
		}
	}
}

func TestRun_StrideRecoveryVisitsEveryReachablePin(t *testing.T) {
	var stalledAt []int
	obs := func(_ *Engine, res StepResult) {
		if res.State == StateStalled {
			stalledAt = append(stalledAt, res.From)
		}
	}
	e := mustEngine(t, mustUniform(t, 32, 255), Config{BlockSize: 4, PinCount: 8, MaxLines: 10}, WithObserver(obs))

	res, err := e.Run(context.Background(), NewStrideRecovery(8, 2))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stalls != 4 {
		t.Errorf("Stalls = %d, want 4", res.Stalls)
	}
	if want := []int{0, 2, 4, 6}; !slices.Equal(stalledAt, want) {
		t.Errorf("stalled at %v, want %v", stalledAt, want)
	}
}

func TestStrideRecovery_NegativeStride(t *testing.T) {
	s := StrideRecovery{PinCount: 10, Stride: -3}
	if next, ok := s.Recover(1, 1); !ok || next != 8 {
		t.Errorf("Recover(1, 1) = (%d, %v), want (8, true)", next, ok)
	}
}
