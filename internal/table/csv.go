package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/urlfeature/internal/model"
)

// ErrNoHeader is returned by ReadCSV when the input has no header row.
var ErrNoHeader = errors.New("csv input has no header row")

// ReadCSV reads a CSV feature table and normalizes it. label is used for
// rows when the input has no phishing column. Ragged rows are accepted.
func ReadCSV(r io.Reader, label float64) (*model.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv records: %w", err)
	}

	return Normalize(header, records, label), nil
}

// WriteOption configures WriteCSV.
type WriteOption func(*writeOptions)

type writeOptions struct {
	withURL bool
}

// WithURLColumn prepends a url column holding each row's source URL.
// Rows without a known URL get an empty cell.
func WithURLColumn() WriteOption {
	return func(o *writeOptions) {
		o.withURL = true
	}
}

// WriteCSV writes t with a header row. Values are formatted with
// FormatValue.
func WriteCSV(w io.Writer, t *model.Table, opts ...WriteOption) error {
	var o writeOptions
	for _, opt := range opts {
		opt(&o)
	}

	cw := csv.NewWriter(w)

	header := t.Columns
	if o.withURL {
		header = append([]string{URLColumn}, t.Columns...)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, 0, len(header))
	for i, row := range t.Rows {
		record = record[:0]
		if o.withURL {
			record = append(record, t.URL(i))
		}
		for _, v := range row {
			record = append(record, FormatValue(v))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
