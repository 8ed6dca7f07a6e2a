package table

import (
	"math"
	"strconv"
	"strings"

	"github.com/nao1215/urlfeature/internal/model"
)

// URLColumn is the optional provenance column written by --with-url.
// It never becomes a feature; Normalize moves it to Table.URLs.
const URLColumn = "url"

// Normalize converts raw CSV records into a canonical table.
//
// header names the columns of records. Each canonical feature is looked up
// by name; when a name occurs more than once the first occurrence wins. A
// phishing column in the input keeps its values, otherwise every row gets
// label. Rows shorter than the header are padded with 0.
//
// Normalize never fails: every mismatch is resolved towards a valid table.
func Normalize(header []string, records [][]string, label float64) *model.Table {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = cleanHeader(name, i)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	cols := model.Columns()
	sources := make([]int, len(cols))
	for i, c := range cols {
		src, ok := index[c]
		if !ok {
			src = -1
		}
		sources[i] = src
	}
	labelIdx := sources[len(cols)-1]
	urlIdx, hasURL := index[URLColumn]

	t := &model.Table{
		Columns: cols,
		Rows:    make([][]float64, len(records)),
	}
	if hasURL && len(records) > 0 {
		t.URLs = make([]string, len(records))
	}

	for r, rec := range records {
		row := make([]float64, len(cols))
		for i, src := range sources[:model.NumFeatures] {
			row[i] = cell(rec, src)
		}
		if labelIdx >= 0 {
			row[model.NumFeatures] = cell(rec, labelIdx)
		} else {
			row[model.NumFeatures] = label
		}
		t.Rows[r] = row

		if hasURL && urlIdx < len(rec) {
			t.URLs[r] = strings.TrimSpace(rec[urlIdx])
		}
	}

	return t
}

// cleanHeader trims a column name. The first name also loses a UTF-8 BOM,
// which spreadsheet exports often prepend.
func cleanHeader(name string, pos int) string {
	if pos == 0 {
		name = strings.TrimPrefix(name, "\ufeff")
	}
	return strings.TrimSpace(name)
}

// cell returns the numeric value of rec[idx], or 0 when the column is
// absent or the text is not a finite number.
func cell(rec []string, idx int) float64 {
	if idx < 0 || idx >= len(rec) {
		return 0
	}
	return ParseValue(rec[idx])
}

// ParseValue parses one table cell. Missing-value markers ("?", ""),
// NaN, infinities and non-numeric text all yield 0.
func ParseValue(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "?" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatValue renders a cell as the shortest decimal that round-trips.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
