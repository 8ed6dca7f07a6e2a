package report

import (
	"io"

	"github.com/nao1215/urlfeature/internal/model"
)

// Writer outputs a feature table.
// Returns the number of bytes written and any error encountered.
type Writer interface {
	Write(t *model.Table) (int, error)
}

// MultiWriter writes a table to multiple Writers in turn.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the table to all configured Writers.
// Returns the total bytes written and stops on the first error.
func (m *MultiWriter) Write(t *model.Table) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(t)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// countingWriter tracks the bytes written through it for writers that
// stream into an encoder rather than a single Write call.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
