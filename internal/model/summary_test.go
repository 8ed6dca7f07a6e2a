package model

import "testing"

func TestNewSummary(t *testing.T) {
	t.Parallel()

	t.Run("aggregates rows", func(t *testing.T) {
		t.Parallel()

		var a, b FeatureVector
		a.Set(URLLength, 10)
		a.Set(DomainContainsIP, 1)
		a.Set(DomainNumAt, 1)
		b.Set(URLLength, 20)
		b.Set(DomainLevel, 1)
		b.Set(DomainTop, 1)

		tbl := NewTable(nil, []FeatureVector{a, b}, 0)
		if err := tbl.SetLabels([]float64{1, 0}); err != nil {
			t.Fatal(err)
		}

		s := NewSummary(tbl)
		if s.Rows != 2 {
			t.Errorf("Rows = %d, want 2", s.Rows)
		}
		if s.IPHosts != 1 || s.SuspiciousTLDs != 1 || s.BenignDomains != 1 || s.AtSignHosts != 1 {
			t.Errorf("unexpected indicator counts: %+v", s)
		}
		if s.Phishing != 1 {
			t.Errorf("Phishing = %d, want 1", s.Phishing)
		}

		ul := s.Features[URLLength]
		if ul.Name != "url_length" || ul.Min != 10 || ul.Max != 20 || ul.Mean != 15 || ul.NonZero != 2 {
			t.Errorf("unexpected url_length stats: %+v", ul)
		}
		if s.Features[PathNumZeros].NonZero != 0 {
			t.Error("expected path_num_zeros to be all zero")
		}
	})

	t.Run("empty table", func(t *testing.T) {
		t.Parallel()

		s := NewSummary(NewTable(nil, nil, 0))
		if s.Rows != 0 || len(s.Features) != NumFeatures {
			t.Fatalf("unexpected summary: %+v", s)
		}
		for _, fs := range s.Features {
			if fs.Min != 0 || fs.Max != 0 || fs.Mean != 0 {
				t.Errorf("%s: expected zero stats, got %+v", fs.Name, fs)
			}
		}
	})
}
