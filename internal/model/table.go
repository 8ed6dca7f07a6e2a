package model

import (
	"errors"
	"fmt"
)

// Table errors.
var (
	// ErrRowLength is returned when a table row does not match the header.
	ErrRowLength = errors.New("row length does not match the table columns")
	// ErrColumnOrder is returned when the header deviates from the canonical schema.
	ErrColumnOrder = errors.New("columns are not in canonical order")
)

// Table is a feature table: one row per URL, canonical feature columns
// followed by the label column.
type Table struct {
	// Columns is the header, always Columns() for tables built by this package.
	Columns []string `json:"columns"`

	// URLs records the input URL of each row. It is empty for tables read
	// back from a file that did not carry a url column.
	URLs []string `json:"urls,omitempty"`

	// Rows holds the numeric cells, len(Columns) values per row.
	Rows [][]float64 `json:"rows"`
}

// NewTable assembles a table from feature vectors in input order.
// Every row gets label as its trailing phishing value. urls may be nil;
// when given it must be the same length as vectors.
func NewTable(urls []string, vectors []FeatureVector, label float64) *Table {
	t := &Table{
		Columns: Columns(),
		Rows:    make([][]float64, len(vectors)),
	}
	if len(urls) == len(vectors) && len(urls) > 0 {
		t.URLs = append([]string(nil), urls...)
	}
	for i := range vectors {
		t.Rows[i] = append(vectors[i].Slice(), label)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// URL returns the source URL of row i, or "" when unknown.
func (t *Table) URL(i int) string {
	if i < 0 || i >= len(t.URLs) {
		return ""
	}
	return t.URLs[i]
}

// Vector returns the features of row i.
func (t *Table) Vector(i int) FeatureVector {
	var v FeatureVector
	copy(v[:], t.Rows[i])
	return v
}

// Label returns the label of row i.
func (t *Table) Label(i int) float64 {
	row := t.Rows[i]
	if len(row) <= NumFeatures {
		return DefaultLabel
	}
	return row[NumFeatures]
}

// SetLabels overwrites the label column with the given values.
// It is used when true labels are known, e.g. for training data.
func (t *Table) SetLabels(labels []float64) error {
	if len(labels) != len(t.Rows) {
		return ErrRowLength
	}
	for i, row := range t.Rows {
		if len(row) != NumFeatures+1 {
			return ErrRowLength
		}
		row[NumFeatures] = labels[i]
	}
	return nil
}

// Validate checks that the header is canonical and every row has one
// value per column.
func (t *Table) Validate() error {
	cols := Columns()
	if len(t.Columns) != len(cols) {
		return fmt.Errorf("%w: got %d columns, want %d", ErrColumnOrder, len(t.Columns), len(cols))
	}
	for i, c := range cols {
		if t.Columns[i] != c {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrColumnOrder, i, t.Columns[i], c)
		}
	}
	for _, row := range t.Rows {
		if len(row) != len(cols) {
			return ErrRowLength
		}
	}
	return nil
}
