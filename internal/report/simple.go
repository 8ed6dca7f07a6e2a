package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/nao1215/urlfeature/internal/model"
	"github.com/nao1215/urlfeature/internal/table"
)

// SimpleWriter outputs a human-readable summary of a table for terminal
// display. It does not print the rows themselves.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether all-zero feature columns are listed.
	showEmpty bool

	// verbose adds min and max to the per-feature listing.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty lists feature columns that are zero in every row.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary of t.
func (w *SimpleWriter) Write(t *model.Table) (int, error) {
	return w.WriteSummary(model.NewSummary(t))
}

// WriteSummary outputs a precomputed summary.
func (w *SimpleWriter) WriteSummary(s *model.Summary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, s)
	w.writeIndicators(&sb, s)
	w.writeFeatures(&sb, s)
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, s *model.Summary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                     URL FEATURE TABLE SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "URLs:           %d\n", s.Rows)
	fmt.Fprintf(sb, "Labelled 1:     %d\n", s.Phishing)
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeIndicators(sb *strings.Builder, s *model.Summary) {
	writeSection(sb, "INDICATORS")

	fmt.Fprintf(sb, "  IP host:         %d\n", s.IPHosts)
	fmt.Fprintf(sb, "  Suspicious TLD:  %d\n", s.SuspiciousTLDs)
	fmt.Fprintf(sb, "  '@' in host:     %d\n", s.AtSignHosts)
	fmt.Fprintf(sb, "  Benign domain:   %d\n", s.BenignDomains)
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeFeatures(sb *strings.Builder, s *model.Summary) {
	if s.Rows == 0 {
		return
	}

	writeSection(sb, "FEATURES (mean)")

	for _, fs := range s.Features {
		if fs.NonZero == 0 && !w.showEmpty {
			continue
		}
		fmt.Fprintf(sb, "  %-34s %s", fs.Name, table.FormatValue(round(fs.Mean)))
		if w.verbose {
			fmt.Fprintf(sb, "  [min %s, max %s, non-zero %d]",
				table.FormatValue(fs.Min), table.FormatValue(fs.Max), fs.NonZero)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// round keeps four decimals for display.
func round(v float64) float64 {
	const scale = 1e4
	return math.Round(v*scale) / scale
}
