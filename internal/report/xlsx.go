package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/nao1215/urlfeature/internal/model"
	"github.com/nao1215/urlfeature/internal/table"
)

// DefaultSheetName is the worksheet that holds the feature table.
const DefaultSheetName = "features"

// XLSXWriter outputs tables as an Excel workbook. Cells are numeric so the
// sheet can be filtered and charted directly.
type XLSXWriter struct {
	baseWriter

	sheet   string
	withURL bool
}

// XLSXWriterOption configures an XLSXWriter.
type XLSXWriterOption func(*XLSXWriter)

// WithSheetName sets the worksheet name.
func WithSheetName(name string) XLSXWriterOption {
	return func(w *XLSXWriter) {
		if name != "" {
			w.sheet = name
		}
	}
}

// WithXLSXURLColumn prepends a url column.
func WithXLSXURLColumn(enabled bool) XLSXWriterOption {
	return func(w *XLSXWriter) {
		w.withURL = enabled
	}
}

// NewXLSXWriter creates an XLSXWriter that outputs to the given writer.
func NewXLSXWriter(output io.Writer, opts ...XLSXWriterOption) *XLSXWriter {
	w := &XLSXWriter{
		baseWriter: newBaseWriter(output),
		sheet:      DefaultSheetName,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the table as a single-sheet workbook with a bold,
// frozen header row.
func (w *XLSXWriter) Write(t *model.Table) (int, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), w.sheet); err != nil {
		return 0, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}

	sw, err := f.NewStreamWriter(w.sheet)
	if err != nil {
		return 0, fmt.Errorf("failed to create stream writer: %w", err)
	}
	if err := sw.SetPanes(&excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return 0, fmt.Errorf("failed to freeze header: %w", err)
	}

	columns := t.Columns
	if w.withURL {
		columns = append([]string{table.URLColumn}, t.Columns...)
	}
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: c}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range t.Rows {
		values := make([]any, 0, len(columns))
		if w.withURL {
			values = append(values, t.URL(i))
		}
		for _, v := range row {
			values = append(values, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return 0, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return 0, fmt.Errorf("failed to flush sheet: %w", err)
	}

	n, err := f.WriteTo(w.output)
	if err != nil {
		return int(n), fmt.Errorf("failed to write workbook: %w", err)
	}
	return int(n), nil
}
