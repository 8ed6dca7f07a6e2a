package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/urlfeature/internal/feature"
	"github.com/nao1215/urlfeature/internal/model"
	"github.com/nao1215/urlfeature/internal/table"
)

// MarkdownWriter outputs tables and single-URL explanations in Markdown,
// for sharing in tickets and pull requests.
type MarkdownWriter struct {
	baseWriter

	// maxRows caps the rows listed by Write. 0 lists none.
	maxRows int
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMaxRows sets how many table rows Write lists after the summary.
func WithMaxRows(n int) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		if n >= 0 {
			w.maxRows = n
		}
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		maxRows:    20,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs a summary of the table followed by its first rows.
func (w *MarkdownWriter) Write(t *model.Table) (int, error) {
	md := markdown.NewMarkdown(w.output)
	s := model.NewSummary(t)

	md.H1("URL Feature Table")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Indicator", "URLs"},
		Rows: [][]string{
			{"Total", strconv.Itoa(s.Rows)},
			{"IP host", strconv.Itoa(s.IPHosts)},
			{"Suspicious TLD", strconv.Itoa(s.SuspiciousTLDs)},
			{"'@' in host", strconv.Itoa(s.AtSignHosts)},
			{"Benign domain", strconv.Itoa(s.BenignDomains)},
			{"Labelled phishing", strconv.Itoa(s.Phishing)},
		},
	})
	md.PlainText("")

	if s.Rows > 0 {
		w.writeIndicatorChart(md, s)
		w.writeMeans(md, s)
		w.writeRows(md, t)
	} else {
		md.Note("The table has no rows.")
		md.PlainText("")
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeIndicatorChart writes a mermaid pie chart of the host indicators.
func (w *MarkdownWriter) writeIndicatorChart(md *markdown.Markdown, s *model.Summary) {
	parts := []struct {
		label string
		count int
	}{
		{"IP host", s.IPHosts},
		{"Suspicious TLD", s.SuspiciousTLDs},
		{"At sign", s.AtSignHosts},
		{"Benign domain", s.BenignDomains},
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Host Indicators"),
		piechart.WithShowData(true),
	)
	hasData := false
	for _, p := range parts {
		if p.count > 0 {
			chart.LabelAndIntValue(p.label, uint64(p.count))
			hasData = true
		}
	}
	if !hasData {
		return
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeMeans(md *markdown.Markdown, s *model.Summary) {
	md.H2("Feature Means")
	md.PlainText("")

	rows := make([][]string, 0, len(s.Features))
	for _, fs := range s.Features {
		rows = append(rows, []string{
			fs.Name,
			table.FormatValue(round(fs.Mean)),
			table.FormatValue(fs.Min),
			table.FormatValue(fs.Max),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Feature", "Mean", "Min", "Max"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeRows(md *markdown.Markdown, t *model.Table) {
	if w.maxRows == 0 {
		return
	}

	md.H2("URLs")
	md.PlainText("")

	n := min(w.maxRows, t.Len())
	rows := make([][]string, n)
	for i := range n {
		v := t.Vector(i)
		rows[i] = []string{
			inlineCode(truncateString(t.URL(i), 60)),
			table.FormatValue(v[model.URLLength]),
			table.FormatValue(v[model.DomainContainsIP]),
			table.FormatValue(v[model.DomainLevel]),
			table.FormatValue(v[model.DomainTop]),
			table.FormatValue(t.Label(i)),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "url_length", "domain_contains_ip", "domain_level", "domain_top", model.LabelColumn},
		Rows:   rows,
	})
	md.PlainText("")

	if t.Len() > n {
		md.PlainTextf("%d more rows not shown.", t.Len()-n)
		md.PlainText("")
	}
}

// WriteExplanation outputs the per-feature breakdown of one URL.
func (w *MarkdownWriter) WriteExplanation(ex feature.Explanation) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("URL Feature Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Part", "Value"},
		Rows: [][]string{
			{"URL", inlineCode(ex.Parts.URL)},
			{"Host", inlineCode(ex.Parts.Host)},
			{"Path", inlineCode(ex.Parts.Path)},
			{"Query", inlineCode(ex.Parts.Query)},
		},
	})
	md.PlainText("")

	w.writeExplanationAlert(md, ex)
	w.writeFeatureGroups(md, ex.Vector)
	w.writeComposition(md, ex.Composition)
	w.writeHostDiagnostics(md, ex)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeExplanationAlert writes one alert for the strongest indicator.
func (w *MarkdownWriter) writeExplanationAlert(md *markdown.Markdown, ex feature.Explanation) {
	v := ex.Vector
	switch {
	case v[model.DomainNumAt] > 0:
		md.Caution("The host contains '@'. Everything before it is userinfo, not the destination.")
	case v[model.DomainContainsIP] > 0:
		md.Warningf("The host is an IP literal (%s).", ex.Parts.Host)
	case v[model.DomainLevel] > 0:
		md.Warning("The host ends in a suspicious TLD.")
	case v[model.DomainTop] > 0:
		md.Tip("The host is a known benign domain.")
	case ex.RegistrableBenign:
		md.Note("The registrable domain " + ex.RegistrableDomain +
			" is benign, but domain_top only matches the exact host.")
	default:
		return
	}
	md.PlainText("")
}

// writeFeatureGroups writes one table per feature name prefix
// (url, domain, sub, path, param, query).
func (w *MarkdownWriter) writeFeatureGroups(md *markdown.Markdown, v model.FeatureVector) {
	var (
		groups []string
		rows   = make(map[string][][]string)
	)
	for i, name := range model.FeatureNames() {
		prefix, _, _ := strings.Cut(name, "_")
		if _, ok := rows[prefix]; !ok {
			groups = append(groups, prefix)
		}
		rows[prefix] = append(rows[prefix], []string{name, table.FormatValue(v[i])})
	}

	// A Caser is stateful and must not be shared between goroutines.
	caser := cases.Title(language.English)
	for _, g := range groups {
		md.H2(caser.String(g) + " Features")
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"Feature", "Value"},
			Rows:   rows[g],
		})
		md.PlainText("")
	}
}

// writeComposition writes a mermaid pie chart of the URL's character classes.
func (w *MarkdownWriter) writeComposition(md *markdown.Markdown, c feature.Composition) {
	if c.Letters+c.Digits+c.Other == 0 {
		return
	}

	md.H2("Character Composition")
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("URL Characters"),
		piechart.WithShowData(true),
	)
	if c.Letters > 0 {
		chart.LabelAndIntValue("Letters", uint64(c.Letters))
	}
	if c.Digits > 0 {
		chart.LabelAndIntValue("Digits", uint64(c.Digits))
	}
	if c.Other > 0 {
		chart.LabelAndIntValue("Other", uint64(c.Other))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeHostDiagnostics(md *markdown.Markdown, ex feature.Explanation) {
	if ex.Hostname == "" {
		return
	}

	md.H2("Host Diagnostics")
	md.PlainText("")

	rows := [][]string{
		{"Hostname", inlineCode(ex.Hostname)},
	}
	if ex.PublicSuffix != "" {
		icann := "private"
		if ex.ICANN {
			icann = "ICANN"
		}
		rows = append(rows, []string{"Public suffix", inlineCode(ex.PublicSuffix) + " (" + icann + ")"})
	}
	if ex.RegistrableDomain != "" {
		rows = append(rows,
			[]string{"Registrable domain", inlineCode(ex.RegistrableDomain)},
			[]string{"Registrable domain benign", yesNo(ex.RegistrableBenign)},
		)
	}
	if ex.UnicodeHost != "" && ex.UnicodeHost != ex.Hostname {
		rows = append(rows, []string{"Unicode form", inlineCode(ex.UnicodeHost)})
	}
	rows = append(rows, []string{"Punycode label", yesNo(ex.Punycode)})

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
	md.PlainText("Diagnostics are informational. They are not part of the feature vector.")
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by urlfeature*")
}

func inlineCode(s string) string {
	if s == "" {
		return "-"
	}
	return "`" + strings.ReplaceAll(s, "|", `\|`) + "`"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
