package pipeline

import (
	"context"
	"errors"
	"slices"
	"testing"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, run *Run) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, run *Run) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, run)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	p := New()

	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.StepCount() != 0 {
		t.Errorf("expected 0 steps, got %d", p.StepCount())
	}
	if p.logger == nil {
		t.Error("expected default logger")
	}
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(&mockStep{name: "a"})
	p.AddSteps(&mockStep{name: "b"}, &mockStep{name: "c"})

	if p.StepCount() != 3 {
		t.Errorf("expected 3 steps, got %d", p.StepCount())
	}
	if got := p.StepNames(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("unexpected step names: %v", got)
	}
}

// TestPipelineExecute tests step execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("runs steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		record := func(name string) *mockStep {
			return &mockStep{
				name: name,
				doFunc: func(_ context.Context, _ *Run) error {
					order = append(order, name)
					return nil
				},
			}
		}

		p := New()
		p.AddSteps(record("first"), record("second"), record("third"))

		run := NewRun("test", nil)
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"first", "second", "third"}
		if !slices.Equal(order, want) {
			t.Errorf("execution order %v, want %v", order, want)
		}
		if !slices.Equal(run.PerformedSteps, want) {
			t.Errorf("performed steps %v, want %v", run.PerformedSteps, want)
		}
	})

	t.Run("stops at first error", func(t *testing.T) {
		t.Parallel()

		errBoom := errors.New("boom")
		failing := &mockStep{
			name:   "failing",
			doFunc: func(_ context.Context, _ *Run) error { return errBoom },
		}
		after := &mockStep{name: "after"}

		p := New()
		p.AddSteps(&mockStep{name: "before"}, failing, after)

		run := NewRun("test", nil)
		err := p.Execute(context.Background(), run)

		if !errors.Is(err, errBoom) {
			t.Errorf("expected errBoom, got %v", err)
		}
		if after.callCount != 0 {
			t.Error("expected step after failure not to run")
		}
		if !slices.Equal(run.PerformedSteps, []string{"before"}) {
			t.Errorf("unexpected performed steps: %v", run.PerformedSteps)
		}
	})

	t.Run("respects cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "never"}
		p := New()
		p.AddStep(step)

		err := p.Execute(ctx, NewRun("test", nil))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("expected no step to run")
		}
	})

	t.Run("empty pipeline", func(t *testing.T) {
		t.Parallel()

		if err := New().Execute(context.Background(), NewRun("test", nil)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

// TestNewRun tests the run constructor.
func TestNewRun(t *testing.T) {
	t.Parallel()

	run := NewRun("list.txt", []string{"a.com"})
	if run.Source != "list.txt" || len(run.URLs) != 1 {
		t.Errorf("unexpected run: %+v", run)
	}
	if run.Label != 0 {
		t.Errorf("expected default label 0, got %v", run.Label)
	}
	if run.Table != nil || run.RunID != 0 {
		t.Error("expected empty results")
	}
}
