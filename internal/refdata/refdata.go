package refdata

import (
	"encoding/hex"
	"slices"
	"strings"
	"sync"

	"golang.org/x/crypto/sha3"
)

// Sets holds the two reference collections used by the feature engine.
// A Sets value is immutable after construction; all accessors are safe for
// concurrent use without locking.
type Sets struct {
	benign map[string]struct{}
	tlds   map[string]struct{}
}

// New creates reference sets from the given domain and TLD lists.
//
// Domains are stored exactly as given (after trimming surrounding space)
// because the benign-domain feature is an exact host match. TLD entries are
// normalized to a lower-case, dot-prefixed suffix, so "top", ".top" and
// ".TOP" all produce ".top". Empty entries are ignored.
func New(benignDomains, suspiciousTLDs []string) *Sets {
	s := &Sets{
		benign: make(map[string]struct{}, len(benignDomains)),
		tlds:   make(map[string]struct{}, len(suspiciousTLDs)),
	}
	for _, d := range benignDomains {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		s.benign[d] = struct{}{}
	}
	for _, t := range suspiciousTLDs {
		t = normalizeTLD(t)
		if t == "" {
			continue
		}
		s.tlds[t] = struct{}{}
	}
	return s
}

// defaultSets is built on first use and shared for the process lifetime.
var defaultSets = sync.OnceValue(func() *Sets {
	return New(defaultBenignDomains, defaultSuspiciousTLDs)
})

// Default returns the built-in reference sets.
// Every call returns the same instance.
func Default() *Sets {
	return defaultSets()
}

// Empty returns reference sets with no entries.
// With empty sets domain_top and domain_level are always 0.
func Empty() *Sets {
	return New(nil, nil)
}

// normalizeTLD converts a TLD entry into the ".suffix" form used for lookups.
func normalizeTLD(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if t == "" || t == "." {
		return ""
	}
	if !strings.HasPrefix(t, ".") {
		t = "." + t
	}
	return t
}

// IsBenign reports whether host exactly equals a benign domain.
// Sub-domains of a benign domain do not match.
func (s *Sets) IsBenign(host string) bool {
	if s == nil {
		return false
	}
	_, ok := s.benign[host]
	return ok
}

// IsSuspiciousTLD reports whether the dot-prefixed suffix is a suspicious TLD.
func (s *Sets) IsSuspiciousTLD(suffix string) bool {
	if s == nil {
		return false
	}
	_, ok := s.tlds[suffix]
	return ok
}

// Benign returns the benign domains in sorted order.
func (s *Sets) Benign() []string {
	if s == nil {
		return nil
	}
	return sortedKeys(s.benign)
}

// TLDs returns the suspicious TLD suffixes in sorted order.
func (s *Sets) TLDs() []string {
	if s == nil {
		return nil
	}
	return sortedKeys(s.tlds)
}

// Len returns the number of benign domains and suspicious TLDs.
func (s *Sets) Len() (benign, tlds int) {
	if s == nil {
		return 0, 0
	}
	return len(s.benign), len(s.tlds)
}

// Digest returns a hex-encoded SHA3-256 fingerprint of both sets.
// Two Sets with the same entries have the same digest regardless of the
// order the entries were supplied in. The history store records it so a
// saved feature table can be traced back to the reference data that
// produced it.
func (s *Sets) Digest() string {
	h := sha3.New256()
	for _, d := range s.Benign() {
		h.Write([]byte("b:" + d + "\n"))
	}
	for _, t := range s.TLDs() {
		h.Write([]byte("t:" + t + "\n"))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
