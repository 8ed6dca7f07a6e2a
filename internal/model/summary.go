package model

import "math"

// FeatureStats summarizes one feature column.
type FeatureStats struct {
	Name    string  `json:"name"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	NonZero int     `json:"nonZero"`
}

// Summary is an aggregate view of a feature table for quick inspection.
type Summary struct {
	// Rows is the number of URLs in the table.
	Rows int `json:"rows"`

	// Flag counts: rows whose host is an IP literal, ends in a suspicious
	// TLD, is a benign domain, or contains '@'.
	IPHosts        int `json:"ipHosts"`
	SuspiciousTLDs int `json:"suspiciousTLDs"`
	BenignDomains  int `json:"benignDomains"`
	AtSignHosts    int `json:"atSignHosts"`

	// Phishing is the number of rows labelled non-zero.
	Phishing int `json:"phishing"`

	// Features holds per-column statistics in canonical order.
	Features []FeatureStats `json:"features"`
}

// NewSummary computes a Summary of t. An empty table yields zero statistics.
func NewSummary(t *Table) *Summary {
	s := &Summary{
		Rows:     t.Len(),
		Features: make([]FeatureStats, NumFeatures),
	}
	for i, name := range featureNames {
		s.Features[i] = FeatureStats{Name: name, Min: math.Inf(1), Max: math.Inf(-1)}
	}

	for r := range t.Len() {
		v := t.Vector(r)
		for i, value := range v {
			fs := &s.Features[i]
			fs.Min = math.Min(fs.Min, value)
			fs.Max = math.Max(fs.Max, value)
			fs.Mean += value
			if value != 0 {
				fs.NonZero++
			}
		}

		if v[DomainContainsIP] != 0 {
			s.IPHosts++
		}
		if v[DomainLevel] != 0 {
			s.SuspiciousTLDs++
		}
		if v[DomainTop] != 0 {
			s.BenignDomains++
		}
		if v[DomainNumAt] != 0 {
			s.AtSignHosts++
		}
		if t.Label(r) != 0 {
			s.Phishing++
		}
	}

	for i := range s.Features {
		fs := &s.Features[i]
		if s.Rows == 0 {
			fs.Min, fs.Max = 0, 0
			continue
		}
		fs.Mean /= float64(s.Rows)
	}

	return s
}
