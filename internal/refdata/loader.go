package refdata

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyReference is returned when an override file would leave both
// reference sets empty.
var ErrEmptyReference = errors.New("reference data is empty: provide benignDomains or suspiciousTLDs")

// File is the YAML representation of a reference data override.
//
//	extend: true
//	benignDomains:
//	  - example.org
//	suspiciousTLDs:
//	  - .zip
type File struct {
	// Extend merges the listed entries onto the built-in sets.
	// When false the listed entries replace the built-in sets entirely.
	Extend bool `yaml:"extend,omitempty"`

	// BenignDomains are exact-match host names.
	BenignDomains []string `yaml:"benignDomains,omitempty"`

	// SuspiciousTLDs are TLD suffixes, with or without the leading dot.
	SuspiciousTLDs []string `yaml:"suspiciousTLDs,omitempty"`
}

// LoadFile reads a reference data override from a YAML file.
func LoadFile(path string) (*Sets, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided reference path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read reference file: %w", err)
	}
	return Parse(data)
}

// Parse builds reference sets from YAML data in the File format.
func Parse(data []byte) (*Sets, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse reference file: %w", err)
	}
	return f.Sets()
}

// Sets converts the file contents into reference sets.
func (f File) Sets() (*Sets, error) {
	benign := f.BenignDomains
	tlds := f.SuspiciousTLDs
	if f.Extend {
		def := Default()
		benign = append(def.Benign(), benign...)
		tlds = append(def.TLDs(), tlds...)
	}

	s := New(benign, tlds)
	if b, t := s.Len(); b == 0 && t == 0 {
		return nil, ErrEmptyReference
	}
	return s, nil
}
