package input

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestReadURLs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "one per line",
			input: "http://a.com/\nhttp://b.com/\n",
			want:  []string{"http://a.com/", "http://b.com/"},
		},
		{
			name:  "skips blanks and comments",
			input: "# header\n\nhttp://a.com/\n   \n  # indented comment\nhttp://b.com/",
			want:  []string{"http://a.com/", "http://b.com/"},
		},
		{
			name:  "trims whitespace and CRLF",
			input: "  http://a.com/  \r\n\thttp://b.com/\r\n",
			want:  []string{"http://a.com/", "http://b.com/"},
		},
		{
			name:  "drops UTF-8 BOM",
			input: "\ufeffhttp://a.com/\n",
			want:  []string{"http://a.com/"},
		},
		{
			name:  "keeps malformed lines",
			input: "not a url\n://\n",
			want:  []string{"not a url", "://"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ReadURLs(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadURLsWithEncoding(t *testing.T) {
	t.Parallel()

	t.Run("decodes GBK", func(t *testing.T) {
		t.Parallel()

		want := "http://例子.中国/路径?查询=值"
		encoded, err := simplifiedchinese.GBK.NewEncoder().String(want + "\n")
		if err != nil {
			t.Fatalf("failed to encode test input: %v", err)
		}

		got, err := ReadURLs(strings.NewReader(encoded), WithEncoding("gbk"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0] != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("decodes windows-1252", func(t *testing.T) {
		t.Parallel()

		got, err := ReadURLs(strings.NewReader("http://caf\xe9.example/\n"), WithEncoding("latin1"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0] != "http://café.example/" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("unknown encoding", func(t *testing.T) {
		t.Parallel()

		_, err := ReadURLs(strings.NewReader("x"), WithEncoding("no-such-charset"))
		if !errors.Is(err, ErrUnknownEncoding) {
			t.Errorf("expected ErrUnknownEncoding, got %v", err)
		}
	})
}

func TestLookupEncoding(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "utf-8", "UTF-8", "shift_jis", "gbk", "windows-1252"} {
		if _, err := LookupEncoding(name); err != nil {
			t.Errorf("LookupEncoding(%q) failed: %v", name, err)
		}
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads list from disk", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "urls.txt")
		if err := os.WriteFile(path, []byte("# list\nhttp://a.com/\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		got, err := ReadFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(got, []string{"http://a.com/"}) {
			t.Errorf("got %q", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})
}
