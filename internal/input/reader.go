package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxLineSize bounds a single URL line.
const maxLineSize = 1 << 20

// ErrUnknownEncoding is returned for an encoding label htmlindex does not know.
var ErrUnknownEncoding = errors.New("unknown text encoding")

// Option configures ReadURLs.
type Option func(*options)

type options struct {
	encoding string
}

// WithEncoding decodes the input from the named encoding. Any WHATWG label
// is accepted ("shift_jis", "gbk", "latin1", ...). An empty name means UTF-8.
func WithEncoding(name string) Option {
	return func(o *options) {
		o.encoding = name
	}
}

// LookupEncoding resolves a WHATWG encoding label.
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// ReadURLs reads a URL list from r. A leading byte order mark is dropped.
func ReadURLs(r io.Reader, opts ...Option) ([]string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	enc, err := LookupEncoding(o.encoding)
	if err != nil {
		return nil, err
	}

	// BOMOverride honours a UTF-8 or UTF-16 BOM and falls back to enc.
	decoder := unicode.BOMOverride(enc.NewDecoder())
	scanner := bufio.NewScanner(transform.NewReader(r, decoder))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var urls []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read url list: %w", err)
	}

	return urls, nil
}

// ReadFile reads a URL list from path. "-" reads standard input.
func ReadFile(path string, opts ...Option) ([]string, error) {
	if path == "-" {
		return ReadURLs(os.Stdin, opts...)
	}

	f, err := os.Open(path) //nolint:gosec // user-provided list path
	if err != nil {
		return nil, fmt.Errorf("failed to open url list: %w", err)
	}
	defer f.Close()

	return ReadURLs(f, opts...)
}
