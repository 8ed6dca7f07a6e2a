package report

import (
	"io"

	"github.com/nao1215/urlfeature/internal/model"
	"github.com/nao1215/urlfeature/internal/table"
)

// CSVWriter outputs tables as CSV, the format model training consumes.
type CSVWriter struct {
	baseWriter

	// withURL prepends the source URL of each row.
	withURL bool
}

// CSVWriterOption configures a CSVWriter.
type CSVWriterOption func(*CSVWriter)

// WithCSVURLColumn prepends a url column.
func WithCSVURLColumn(enabled bool) CSVWriterOption {
	return func(w *CSVWriter) {
		w.withURL = enabled
	}
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer, opts ...CSVWriterOption) *CSVWriter {
	w := &CSVWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the table with a header row.
func (w *CSVWriter) Write(t *model.Table) (int, error) {
	var opts []table.WriteOption
	if w.withURL {
		opts = append(opts, table.WithURLColumn())
	}

	cw := &countingWriter{w: w.output}
	err := table.WriteCSV(cw, t, opts...)
	return cw.n, err
}
