package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/urlfeature/internal/model"
)

// JSONWriter outputs tables in JSON format for tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONRecord is one table row in JSON output.
type JSONRecord struct {
	// URL is the source URL, when known.
	URL string `json:"url,omitempty"`

	// Features is encoded as an object keyed by feature name.
	Features model.FeatureVector `json:"features"`

	// Phishing is the label column.
	Phishing float64 `json:"phishing"`
}

// JSONTable is the JSON form of a feature table. Columns keeps the
// canonical order, which JSON objects do not preserve.
type JSONTable struct {
	Columns []string     `json:"columns"`
	Records []JSONRecord `json:"records"`
}

// NewJSONTable converts t into its JSON form.
func NewJSONTable(t *model.Table) *JSONTable {
	jt := &JSONTable{
		Columns: t.Columns,
		Records: make([]JSONRecord, t.Len()),
	}
	for i := range t.Len() {
		jt.Records[i] = JSONRecord{
			URL:      t.URL(i),
			Features: t.Vector(i),
			Phishing: t.Label(i),
		}
	}
	return jt
}

// Write outputs the table in JSON format.
func (w *JSONWriter) Write(t *model.Table) (int, error) {
	return w.WriteValue(NewJSONTable(t))
}

// WriteValue marshals any value with the writer's settings. It is used for
// non-table output such as explanations and run listings.
func (w *JSONWriter) WriteValue(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONReport wraps a table with the metadata needed to reproduce it.
type JSONReport struct {
	// Version is the urlfeature version that generated this report.
	Version string `json:"version"`

	// ReferenceDigest identifies the reference sets used for domain_top
	// and domain_level.
	ReferenceDigest string `json:"referenceDigest,omitempty"`

	*JSONTable
}

// FullJSONWriter outputs tables with a metadata wrapper.
type FullJSONWriter struct {
	*JSONWriter

	version   string
	refDigest string
}

// NewFullJSONWriter creates a writer for tables with metadata.
func NewFullJSONWriter(output io.Writer, version, refDigest string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
		refDigest:  refDigest,
	}
}

// Write outputs the table wrapped with metadata.
func (w *FullJSONWriter) Write(t *model.Table) (int, error) {
	return w.WriteValue(&JSONReport{
		Version:         w.version,
		ReferenceDigest: w.refDigest,
		JSONTable:       NewJSONTable(t),
	})
}
