package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/urlfeature/internal/model"
)

// ErrNoTable is returned by steps that need a table when no earlier step
// produced one.
var ErrNoTable = errors.New("run has no feature table")

// ExtractStep computes the feature table of run.URLs.
type ExtractStep struct {
	processor *BatchProcessor
}

// NewExtractStep creates an extraction step backed by bp.
func NewExtractStep(bp *BatchProcessor) *ExtractStep {
	return &ExtractStep{processor: bp}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do runs the batch processor and stores the resulting table in run.
func (s *ExtractStep) Do(ctx context.Context, run *Run) error {
	vectors, err := s.processor.ProcessBatch(ctx, run.URLs)
	if err != nil {
		return fmt.Errorf("failed to extract features: %w", err)
	}
	run.Table = model.NewTable(run.URLs, vectors, run.Label)
	return nil
}

// RunSaver persists a finished run. database.FeatureDB implements it.
type RunSaver interface {
	SaveRun(ctx context.Context, source, refDigest string, t *model.Table) (int64, error)
}

// PersistStep saves the run's table to a history store.
type PersistStep struct {
	saver     RunSaver
	refDigest string
	logger    *slog.Logger
}

// NewPersistStep creates a step that saves tables with saver. refDigest
// identifies the reference sets the vectors were computed with.
func NewPersistStep(saver RunSaver, refDigest string, logger *slog.Logger) *PersistStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &PersistStep{saver: saver, refDigest: refDigest, logger: logger}
}

// Name returns the step name.
func (s *PersistStep) Name() string {
	return "persist"
}

// Do saves run.Table and records the new run ID.
func (s *PersistStep) Do(ctx context.Context, run *Run) error {
	if run.Table == nil {
		return ErrNoTable
	}
	id, err := s.saver.SaveRun(ctx, run.Source, s.refDigest, run.Table)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	run.RunID = id
	s.logger.Info("run saved", "run_id", id, "rows", run.Table.Len())
	return nil
}

// TableWriter outputs a feature table. Every report writer implements it.
type TableWriter interface {
	Write(t *model.Table) (int, error)
}

// WriteStep writes the run's table with a TableWriter.
type WriteStep struct {
	writer TableWriter
}

// NewWriteStep creates an output step.
func NewWriteStep(w TableWriter) *WriteStep {
	return &WriteStep{writer: w}
}

// Name returns the step name.
func (s *WriteStep) Name() string {
	return "write"
}

// Do writes run.Table.
func (s *WriteStep) Do(_ context.Context, run *Run) error {
	if run.Table == nil {
		return ErrNoTable
	}
	n, err := s.writer.Write(run.Table)
	run.BytesWritten = n
	if err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}
