package feature

import (
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"

	"github.com/nao1215/urlfeature/internal/model"
)

// Composition counts the character classes of the full URL.
type Composition struct {
	Letters int `json:"letters"`
	Digits  int `json:"digits"`
	Other   int `json:"other"`
}

// Explanation is a human-oriented breakdown of one URL.
//
// Only Vector is model input. The host diagnostics exist to help an analyst
// read the vector: for instance RegistrableBenign shows when a sub-domain of
// a benign domain scored domain_top=0 because that feature is an exact match.
type Explanation struct {
	Parts  model.URLParts      `json:"parts"`
	Vector model.FeatureVector `json:"features"`

	// Hostname is the lower-cased host without userinfo or port.
	Hostname string `json:"hostname,omitempty"`

	// PublicSuffix is the effective TLD of Hostname, e.g. "co.uk".
	PublicSuffix string `json:"publicSuffix,omitempty"`

	// ICANN reports whether PublicSuffix is an ICANN-managed suffix.
	ICANN bool `json:"icann"`

	// RegistrableDomain is the eTLD+1 of Hostname, e.g. "example.co.uk".
	RegistrableDomain string `json:"registrableDomain,omitempty"`

	// RegistrableBenign reports whether RegistrableDomain is a benign domain.
	RegistrableBenign bool `json:"registrableBenign"`

	// UnicodeHost is Hostname with punycode labels decoded.
	UnicodeHost string `json:"unicodeHost,omitempty"`

	// Punycode reports whether Hostname has an "xn--" label.
	Punycode bool `json:"punycode"`

	Composition Composition `json:"composition"`
}

// Explain computes the feature vector of raw along with host diagnostics.
func (e *Extractor) Explain(raw string) Explanation {
	parts := model.Decompose(raw)
	ex := Explanation{
		Parts:  parts,
		Vector: Compute(parts, e.refs),
	}

	c := countChars(raw)
	ex.Composition = Composition{
		Letters: c.letters,
		Digits:  c.digits,
		Other:   c.total - c.letters - c.digits,
	}

	host := strings.TrimSuffix(strings.ToLower(hostname(parts.Host)), ".")
	if host == "" {
		return ex
	}
	ex.Hostname = host

	if isIPLiteral(host) {
		return ex
	}

	ex.PublicSuffix, ex.ICANN = publicsuffix.PublicSuffix(host)
	if etld1, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		ex.RegistrableDomain = etld1
		ex.RegistrableBenign = e.refs.IsBenign(etld1)
	}

	ex.UnicodeHost = host
	if decoded, err := idna.ToUnicode(host); err == nil {
		ex.UnicodeHost = decoded
	}
	for label := range strings.SplitSeq(host, ".") {
		if strings.HasPrefix(label, "xn--") {
			ex.Punycode = true
			break
		}
	}

	return ex
}

// hostname strips userinfo, port and IPv6 brackets from an authority.
func hostname(authority string) string {
	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		authority = authority[i+1:]
	}
	if rest, ok := strings.CutPrefix(authority, "["); ok {
		host, _, _ := strings.Cut(rest, "]")
		return host
	}
	host, _, _ := strings.Cut(authority, ":")
	return host
}
