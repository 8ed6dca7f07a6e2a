package table

import (
	"bytes"
	"context"
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/nao1215/urlfeature/internal/feature"
	"github.com/nao1215/urlfeature/internal/model"
	"github.com/nao1215/urlfeature/internal/pipeline"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("restores canonical order from shuffled header", func(t *testing.T) {
		t.Parallel()

		names := model.FeatureNames()
		shuffled := slices.Clone(names)
		slices.Reverse(shuffled)

		rec := make([]string, len(shuffled))
		for i, name := range shuffled {
			f, _ := model.LookupFeature(name)
			rec[i] = FormatValue(float64(f) + 0.5)
		}

		tbl := Normalize(shuffled, [][]string{rec}, 0)
		if err := tbl.Validate(); err != nil {
			t.Fatalf("invalid table: %v", err)
		}
		for i := range model.NumFeatures {
			if got := tbl.Rows[0][i]; got != float64(i)+0.5 {
				t.Errorf("column %s = %v, want %v", names[i], got, float64(i)+0.5)
			}
		}
	})

	t.Run("missing markers become zero", func(t *testing.T) {
		t.Parallel()

		header := []string{"url_length", "domain_length", "path_num_zeros", "sub_num_dots", "query_num_params", "domain_top"}
		rec := []string{"?", "", "NaN", "+Inf", "-inf", "abc"}

		tbl := Normalize(header, [][]string{rec}, 0)
		for i, v := range tbl.Rows[0] {
			if v != 0 {
				t.Errorf("column %s = %v, want 0", tbl.Columns[i], v)
			}
		}
	})

	t.Run("extra columns dropped and missing filled", func(t *testing.T) {
		t.Parallel()

		header := []string{"extra", "url_length", "another"}
		tbl := Normalize(header, [][]string{{"x", "42", "y"}}, 0)

		if len(tbl.Columns) != model.NumFeatures+1 {
			t.Fatalf("expected %d columns, got %d", model.NumFeatures+1, len(tbl.Columns))
		}
		if tbl.Rows[0][model.URLLength] != 42 {
			t.Errorf("url_length = %v, want 42", tbl.Rows[0][model.URLLength])
		}
		if tbl.Rows[0][model.DomainLength] != 0 {
			t.Errorf("missing column should be 0, got %v", tbl.Rows[0][model.DomainLength])
		}
	})

	t.Run("label column kept when present", func(t *testing.T) {
		t.Parallel()

		header := []string{"url_length", model.LabelColumn}
		tbl := Normalize(header, [][]string{{"1", "1"}, {"2", "?"}}, 0.5)

		if tbl.Label(0) != 1 {
			t.Errorf("row 0 label = %v, want 1", tbl.Label(0))
		}
		if tbl.Label(1) != 0 {
			t.Errorf("row 1 label = %v, want 0", tbl.Label(1))
		}
	})

	t.Run("label applied when column absent", func(t *testing.T) {
		t.Parallel()

		tbl := Normalize([]string{"url_length"}, [][]string{{"1"}}, 1)
		if tbl.Label(0) != 1 {
			t.Errorf("label = %v, want 1", tbl.Label(0))
		}
	})

	t.Run("url column moves to provenance", func(t *testing.T) {
		t.Parallel()

		header := []string{URLColumn, "url_length"}
		tbl := Normalize(header, [][]string{{" http://a.com/ ", "13"}}, 0)

		if slices.Contains(tbl.Columns, URLColumn) {
			t.Error("url must not be a column")
		}
		if tbl.URL(0) != "http://a.com/" {
			t.Errorf("URL(0) = %q", tbl.URL(0))
		}
	})

	t.Run("ragged rows and BOM header", func(t *testing.T) {
		t.Parallel()

		header := []string{"\ufeffurl_length", " domain_length "}
		tbl := Normalize(header, [][]string{{"5"}, {"6", "7", "8"}}, 0)

		if tbl.Rows[0][model.URLLength] != 5 || tbl.Rows[0][model.DomainLength] != 0 {
			t.Errorf("unexpected short row: %v", tbl.Rows[0])
		}
		if tbl.Rows[1][model.DomainLength] != 7 {
			t.Errorf("unexpected long row: %v", tbl.Rows[1])
		}
	})

	t.Run("duplicate column first wins", func(t *testing.T) {
		t.Parallel()

		tbl := Normalize([]string{"url_length", "url_length"}, [][]string{{"1", "2"}}, 0)
		if tbl.Rows[0][model.URLLength] != 1 {
			t.Errorf("url_length = %v, want 1", tbl.Rows[0][model.URLLength])
		}
	})
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"0", 0},
		{"1", 1},
		{" 2.5 ", 2.5},
		{"-3", -3},
		{"1e3", 1000},
		{"?", 0},
		{"", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"-Infinity", 0},
		{"1e400", 0},
		{"true", 0},
	}
	for _, tt := range tests {
		if got := ParseValue(tt.in); got != tt.want {
			t.Errorf("ParseValue(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{34, "34"},
		{0.5, "0.5"},
		{1.0 / 3, "0.3333333333333333"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCSVRoundTrip(t *testing.T) {
	t.Parallel()

	ext := feature.NewExtractor()
	urls := []string{"a.com", "not a url"}
	tbl, err := pipeline.ComputeTable(context.Background(), ext, urls)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, tbl); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	out := buf.String()
	if strings.ContainsAny(out, "?") || strings.Contains(out, "NaN") {
		t.Errorf("output contains missing markers:\n%s", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(model.Columns(), ",") {
		t.Errorf("unexpected header: %s", lines[0])
	}

	back, err := ReadCSV(&buf, 0)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if back.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", back.Len())
	}
	for i := range back.Len() {
		if !slices.Equal(back.Rows[i], tbl.Rows[i]) {
			t.Errorf("row %d changed on round trip", i)
		}
	}
}

func TestWriteCSVWithURL(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable([]string{"http://a.com/x,y"}, make([]model.FeatureVector, 1), 1)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, tbl, WithURLColumn()); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "url,url_length,") {
		t.Errorf("expected url column first, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"http://a.com/x,y"`) {
		t.Error("expected URL with comma to be quoted")
	}

	back, err := ReadCSV(&buf, 0)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if back.URL(0) != "http://a.com/x,y" {
		t.Errorf("URL not preserved: %q", back.URL(0))
	}
	if back.Label(0) != 1 {
		t.Errorf("label not preserved: %v", back.Label(0))
	}
	if len(back.Columns) != model.NumFeatures+1 {
		t.Errorf("url column leaked into features")
	}
}

func TestReadCSV(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		_, err := ReadCSV(strings.NewReader(""), 0)
		if !errors.Is(err, ErrNoHeader) {
			t.Errorf("expected ErrNoHeader, got %v", err)
		}
	})

	t.Run("header only", func(t *testing.T) {
		t.Parallel()

		tbl, err := ReadCSV(strings.NewReader("url_length,phishing\n"), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tbl.Len() != 0 {
			t.Errorf("expected no rows, got %d", tbl.Len())
		}
	})

	t.Run("non-finite values are zeroed", func(t *testing.T) {
		t.Parallel()

		tbl, err := ReadCSV(strings.NewReader("url_length,domain_length\nNaN,?\n"), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, v := range tbl.Rows[0] {
			if math.IsNaN(v) || v != 0 {
				t.Errorf("expected 0, got %v", v)
			}
		}
	})
}
