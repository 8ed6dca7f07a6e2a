package config

import (
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"

	"github.com/nao1215/urlfeature/internal/refdata"
)

// Default configuration values.
const (
	// DefaultConcurrency is the number of URLs featurized in parallel.
	// Feature extraction is CPU-bound, so the value roughly tracks a small machine's core count.
	DefaultConcurrency = 8

	// DefaultFormat is the output format used when --format is not given.
	DefaultFormat = FormatCSV

	// DefaultLabel is the value written to the phishing column.
	DefaultLabel = 0.0

	// AppName is the application name used for XDG directory paths.
	AppName = "urlfeature"
)

// Format names an output format of the extract and history commands.
type Format string

// Supported output formats.
const (
	// FormatCSV writes the feature table as CSV with a header row.
	FormatCSV Format = "csv"
	// FormatJSON writes one record per URL with features keyed by name.
	FormatJSON Format = "json"
	// FormatXLSX writes an Excel workbook. Requires an output file.
	FormatXLSX Format = "xlsx"
	// FormatMarkdown writes a GitHub Flavored Markdown report.
	FormatMarkdown Format = "markdown"
	// FormatSummary writes a human-readable per-feature summary.
	FormatSummary Format = "summary"
)

// Formats returns every supported output format in display order.
func Formats() []Format {
	return []Format{FormatCSV, FormatJSON, FormatXLSX, FormatMarkdown, FormatSummary}
}

// ParseFormat converts a user-supplied name into a Format.
// Matching is case-insensitive and accepts "md" for markdown.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "md" {
		name = string(FormatMarkdown)
	}
	f := Format(name)
	if !slices.Contains(Formats(), f) {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

// Binary reports whether the format produces non-text output.
func (f Format) Binary() bool {
	return f == FormatXLSX
}

// Config holds all configuration options for urlfeature.
// It is populated from CLI flags and the optional config file and passed
// down explicitly rather than kept in global state.
type Config struct {
	// Inputs are URLs given as positional arguments.
	Inputs []string

	// ListFile is a file with one URL per line. "-" reads standard input.
	ListFile string

	// Encoding is the character encoding of ListFile, as an HTML encoding label
	// (for example "utf-8", "shift_jis", "gbk"). Empty means UTF-8.
	Encoding string

	// OutputPath is the file the table is written to.
	// Empty or "-" writes to standard output.
	OutputPath string

	// Format selects the output format.
	Format Format

	// Concurrency is the number of URLs featurized in parallel.
	Concurrency int

	// Label is the value written to the phishing column of every row.
	Label float64

	// WithURL adds the source URL as the first output column.
	WithURL bool

	// ReferenceFile points to a YAML file that replaces or extends the
	// built-in benign domain and suspicious TLD sets.
	ReferenceFile string

	// Reference is reference data declared inline in the config file.
	// ReferenceFile takes precedence when both are set.
	Reference *refdata.File

	// Verbose enables debug level logging.
	Verbose bool

	// LogJSON switches the log output to JSON lines.
	LogJSON bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the usual locations.
	ConfigFilePath string

	// DBDir is the directory holding the run history database.
	// Defaults to the XDG data directory (~/.local/share/urlfeature on Linux).
	DBDir string

	// SaveToDB records each extract run in the history database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Format:      DefaultFormat,
		Concurrency: DefaultConcurrency,
		Label:       DefaultLabel,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for urlfeature.
// On Linux: ~/.local/share/urlfeature
// On macOS: ~/Library/Application Support/urlfeature
// On Windows: %LOCALAPPDATA%\urlfeature
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for urlfeature.
// On Linux: ~/.config/urlfeature
// On macOS: ~/Library/Application Support/urlfeature
// On Windows: %APPDATA%\urlfeature
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// WritesToStdout reports whether output goes to standard output.
func (c *Config) WritesToStdout() bool {
	return c.OutputPath == "" || c.OutputPath == "-"
}

// Validate checks if the configuration is valid for an extract run.
// It returns the first problem found.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 && c.ListFile == "" {
		return ErrNoInput
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if !slices.Contains(Formats(), c.Format) {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}

	// Binary output on a terminal is never what the user wants.
	if c.Format.Binary() && c.WritesToStdout() {
		return ErrXLSXRequiresFile
	}

	if math.IsNaN(c.Label) || math.IsInf(c.Label, 0) {
		return ErrInvalidLabel
	}

	return nil
}

// ReferenceSets resolves the reference data for this configuration:
// ReferenceFile first, then inline config data, then the built-in sets.
func (c *Config) ReferenceSets() (*refdata.Sets, error) {
	if c.ReferenceFile != "" {
		return refdata.LoadFile(c.ReferenceFile)
	}
	if c.Reference != nil {
		sets, err := c.Reference.Sets()
		if err != nil {
			return nil, fmt.Errorf("invalid reference data in config file: %w", err)
		}
		return sets, nil
	}
	return refdata.Default(), nil
}
