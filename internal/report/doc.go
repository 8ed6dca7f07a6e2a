// Package report writes feature tables in the output formats of the CLI.
//
//   - CSVWriter: the canonical table, one row per URL
//   - JSONWriter, FullJSONWriter: records keyed by feature name, optionally
//     wrapped with version and reference-set metadata
//   - XLSXWriter: an Excel workbook with numeric cells
//   - MarkdownWriter: a summary for humans, and WriteExplanation for the
//     per-feature breakdown of a single URL
//   - SimpleWriter: a plain-text summary for the terminal
//
// All table writers implement Writer and can be combined with MultiWriter.
package report
