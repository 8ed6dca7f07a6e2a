package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/urlfeature/internal/model"
)

// Run carries the state of one extraction run through the pipeline.
// Steps read what earlier steps produced and add their own results.
type Run struct {
	// Source describes where the URLs came from, e.g. a file name or "args".
	Source string

	// URLs is the input, in order.
	URLs []string

	// Label is the value written to the phishing column of every row.
	Label float64

	// Table is set by ExtractStep.
	Table *model.Table

	// RunID is set by PersistStep when the run is saved.
	RunID int64

	// BytesWritten is set by WriteStep.
	BytesWritten int

	// PerformedSteps lists the steps that completed, in order.
	PerformedSteps []string
}

// NewRun creates a run for the given URLs with the default label.
func NewRun(source string, urls []string) *Run {
	return &Run{
		Source: source,
		URLs:   urls,
		Label:  model.DefaultLabel,
	}
}

// Step is one stage of an extraction run.
type Step interface {
	// Do executes the step. A returned error stops the pipeline.
	Do(ctx context.Context, run *Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes steps in the order they were added.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps are added with AddStep or AddSteps.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence and stops at the first error.
// The context is checked before each step.
func (p *Pipeline) Execute(ctx context.Context, run *Run) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"source", run.Source,
		)

		if err := step.Do(ctx, run); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"source", run.Source,
				"error", err,
			)
			return err
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"source", run.Source,
		)
		run.PerformedSteps = append(run.PerformedSteps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
