package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/urlfeature/internal/refdata"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".urlfeature"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file. Every field is optional; unset
// fields leave the corresponding Config value untouched.
//
//	concurrency: 16
//	format: json
//	withURL: true
//	reference:
//	  extend: true
//	  benignDomains:
//	    - example.org
type File struct {
	Concurrency   *int          `yaml:"concurrency,omitempty"`
	Format        string        `yaml:"format,omitempty"`
	Label         *float64      `yaml:"label,omitempty"`
	Encoding      string        `yaml:"encoding,omitempty"`
	WithURL       *bool         `yaml:"withURL,omitempty"`
	ReferenceFile string        `yaml:"referenceFile,omitempty"`
	Reference     *refdata.File `yaml:"reference,omitempty"`
	Save          *bool         `yaml:"save,omitempty"`
	DBDir         string        `yaml:"dbDir,omitempty"`
}

// Flag names that a config file value can be overridden by.
const (
	FlagConcurrency = "concurrency"
	FlagFormat      = "format"
	FlagLabel       = "label"
	FlagEncoding    = "encoding"
	FlagWithURL     = "with-url"
	FlagReference   = "reference"
	FlagSave        = "save"
	FlagDBDir       = "db-dir"
)

// LoadConfigFile loads a configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cf, nil
}

// Apply copies the file's values onto c. A value is skipped when changed
// reports that the matching flag was set on the command line, so flags
// always win over the file. A nil changed applies everything.
func (f *File) Apply(c *Config, changed func(flag string) bool) error {
	if changed == nil {
		changed = func(string) bool { return false }
	}

	if f.Concurrency != nil && !changed(FlagConcurrency) {
		c.Concurrency = *f.Concurrency
	}
	if f.Format != "" && !changed(FlagFormat) {
		format, err := ParseFormat(f.Format)
		if err != nil {
			return err
		}
		c.Format = format
	}
	if f.Label != nil && !changed(FlagLabel) {
		c.Label = *f.Label
	}
	if f.Encoding != "" && !changed(FlagEncoding) {
		c.Encoding = f.Encoding
	}
	if f.WithURL != nil && !changed(FlagWithURL) {
		c.WithURL = *f.WithURL
	}
	if f.ReferenceFile != "" && !changed(FlagReference) {
		c.ReferenceFile = f.ReferenceFile
	}
	if f.Reference != nil {
		c.Reference = f.Reference
	}
	if f.Save != nil && !changed(FlagSave) {
		c.SaveToDB = *f.Save
	}
	if f.DBDir != "" && !changed(FlagDBDir) {
		c.DBDir = f.DBDir
	}
	return nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .urlfeature in the current directory
// 3. Look for config.yaml in the XDG config directory
// 4. Look for .urlfeature in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
