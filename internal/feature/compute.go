package feature

import (
	"net/netip"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nao1215/urlfeature/internal/model"
	"github.com/nao1215/urlfeature/internal/refdata"
)

// epsilon keeps the digit/letter ratio defined for URLs without letters.
const epsilon = 1e-6

// Compute derives the feature vector of parts using refs.
//
// Compute is pure and total: it performs no I/O, touches no shared mutable
// state and returns a fully populated vector for every input. A nil refs is
// treated as empty reference sets.
func Compute(parts model.URLParts, refs *refdata.Sets) model.FeatureVector {
	var v model.FeatureVector

	u, h, p, q := parts.URL, parts.Host, parts.Path, parts.Query

	// url
	uc := countChars(u)
	v.Set(model.URLLength, float64(uc.total))
	v.Set(model.URLNumSpecialChars, float64(uc.special))
	v.Set(model.URLRatioDigitLetter, float64(uc.digits)/(float64(uc.letters)+epsilon))

	// domain
	hc := countChars(h)
	v.Set(model.DomainLevel, boolValue(suspiciousTLD(u, refs)))
	v.Set(model.DomainContainsIP, boolValue(isIPLiteral(h)))
	v.Set(model.DomainLength, float64(hc.total))
	v.Set(model.DomainNumDigits, float64(hc.digits))
	v.Set(model.DomainNumNonLetter, float64(hc.special))
	v.Set(model.DomainNumHyphen, float64(strings.Count(h, "-")))
	v.Set(model.DomainNumAt, float64(strings.Count(h, "@")))
	v.Set(model.DomainTop, boolValue(refs.IsBenign(h)))

	// subdomain
	v.Set(model.SubNumDots, float64(strings.Count(h, ".")))
	v.Set(model.SubNumSubdomains, float64(max(len(strings.Split(h, "."))-2, 0)))

	// path
	pc := countChars(p)
	segments := pathSegments(p)
	v.Set(model.PathNumSlash, float64(strings.Count(p, "/")))
	v.Set(model.PathNumSubdirectories, float64(len(segments)))
	v.Set(model.PathPresence, boolValue(strings.Contains(p, "%20")))
	v.Set(model.PathPresenceUpperDirectories, boolValue(anySegment(segments, isUpperSegment)))
	v.Set(model.PathPresenceSingleDirectories, boolValue(anySegment(segments, isSingleRune)))
	v.Set(model.PathNumSpecialChars, float64(pc.special))
	v.Set(model.PathNumZeros, float64(strings.Count(p, "0")))
	v.Set(model.PathRatioUpperLower, upperLowerRatio(pc.upper, pc.lower))

	// query
	v.Set(model.ParamQueryLength, float64(utf8.RuneCountInString(q)))
	v.Set(model.QueryNumParams, float64(countParams(q)))

	return v
}

// charCounts holds rune-class tallies for one string.
type charCounts struct {
	total   int
	letters int
	digits  int
	special int // neither letter nor number
	upper   int
	lower   int
}

func countChars(s string) charCounts {
	var c charCounts
	for _, r := range s {
		c.total++
		switch {
		case unicode.IsLetter(r):
			c.letters++
			if unicode.IsUpper(r) {
				c.upper++
			} else if unicode.IsLower(r) {
				c.lower++
			}
		case unicode.IsDigit(r):
			c.digits++
		case unicode.IsNumber(r):
			// e.g. '½': alphanumeric but not a digit
		default:
			c.special++
		}
	}
	return c
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// isIPLiteral reports whether host is an IPv4 or IPv6 address. The host is
// taken as is: brackets, a port or userinfo make it a non-literal.
func isIPLiteral(host string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	_, err := netip.ParseAddr(host)
	return err == nil
}

// suspiciousTLD re-splits the raw URL and reports whether the last
// dot-separated label of its lower-cased authority is a suspicious TLD.
// The authority keeps userinfo and port, so "evil.top:8080" ends in
// ".top:8080" and does not match.
func suspiciousTLD(raw string, refs *refdata.Sets) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	host := strings.ToLower(model.Decompose(raw).Host)
	i := strings.LastIndexByte(host, '.')
	if i < 0 {
		return false
	}
	return refs.IsSuspiciousTLD(host[i:])
}

// pathSegments returns the non-empty '/'-separated segments of p.
func pathSegments(p string) []string {
	var segs []string
	for seg := range strings.SplitSeq(p, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}

func anySegment(segs []string, pred func(string) bool) bool {
	for _, s := range segs {
		if pred(s) {
			return true
		}
	}
	return false
}

// isUpperSegment reports whether s has at least one upper-case letter and
// no lower-case or title-case letter. Digits and punctuation are ignored,
// so "ADMIN-2" counts as upper case.
func isUpperSegment(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r) || unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}

func isSingleRune(s string) bool {
	return utf8.RuneCountInString(s) == 1
}

func upperLowerRatio(upper, lower int) float64 {
	switch {
	case lower > 0:
		return float64(upper) / float64(lower)
	case upper > 0:
		return 1
	default:
		return 0
	}
}

// countParams counts the non-empty '&'-separated parameters of q.
func countParams(q string) int {
	if q == "" {
		return 0
	}
	n := 0
	for param := range strings.SplitSeq(q, "&") {
		if param != "" {
			n++
		}
	}
	return n
}
