package model

import (
	"net/netip"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// URLParts is the structural decomposition of a raw URL string.
// All fields are plain strings; an absent component is the empty string.
type URLParts struct {
	// URL is the original input, unmodified.
	URL string `json:"url"`

	// Host is the authority component exactly as written, including any
	// userinfo and port (e.g. "user@example.com:8080").
	Host string `json:"host"`

	// Path is the raw, still percent-encoded path.
	Path string `json:"path"`

	// Query is the raw query string without the leading '?'.
	Query string `json:"query"`
}

// Decompose splits raw into its URL, host, path and query parts.
//
// Decompose never fails and splits leniently instead of validating like
// net/url: bad
// percent-escapes, non-numeric ports, spaces and control characters are
// kept as written. Leading C0 controls and spaces are skipped and tab, CR
// and LF are removed before splitting. The components are sliced from the
// input without percent-decoding or case folding, so "%20" in a path stays
// "%20" and "EXAMPLE.com" stays upper case.
//
// The only inputs that yield empty parts are those with a malformed
// authority: an unbalanced '[' or ']', brackets around something other than
// an IPv6 or IPvFuture address, or non-ASCII text whose NFKC form contains
// a URL delimiter.
//
// Inputs without a scheme or "//" prefix have no authority, so
// Decompose("example.com/a") yields an empty Host and the path
// "example.com/a".
func Decompose(raw string) URLParts {
	parts := URLParts{URL: raw}

	rest := strings.TrimLeftFunc(raw, func(r rune) bool { return r <= ' ' })
	rest = unsafeBytes.Replace(rest)

	if _, after, ok := splitScheme(rest); ok {
		rest = after
	}

	var host string
	if authority, ok := strings.CutPrefix(rest, "//"); ok {
		end := strings.IndexAny(authority, "/?#")
		if end < 0 {
			end = len(authority)
		}
		host, rest = authority[:end], authority[end:]
		if !validAuthority(host) {
			return parts
		}
	}

	rest, _, _ = strings.Cut(rest, "#")
	if before, query, ok := strings.Cut(rest, "?"); ok {
		rest = before
		parts.Query = query
	}

	parts.Host = host
	parts.Path = rest
	return parts
}

// unsafeBytes removes the characters dropped anywhere in a URL before it
// is split.
var unsafeBytes = strings.NewReplacer("\t", "", "\r", "", "\n", "")

// validAuthority reports whether the brackets in an authority are usable:
// balanced, enclosing the whole host, and around an IPv6 address or an
// IPvFuture literal.
func validAuthority(authority string) bool {
	open, closing := strings.Contains(authority, "["), strings.Contains(authority, "]")
	if open != closing {
		return false
	}
	if open && !validBracketedHost(authority) {
		return false
	}
	return validUnicodeAuthority(authority)
}

func validBracketedHost(authority string) bool {
	hostport := authority
	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		hostport = authority[i+1:]
	}

	var host string
	if before, bracketed, found := strings.Cut(hostport, "["); found {
		if before != "" {
			return false
		}
		var port string
		host, port, _ = strings.Cut(bracketed, "]")
		if port != "" && !strings.HasPrefix(port, ":") {
			return false
		}
	} else {
		host, _, _ = strings.Cut(hostport, ":")
	}

	if strings.HasPrefix(host, "v") {
		return ipvFuture.MatchString(host)
	}
	addr, err := netip.ParseAddr(host)
	return err == nil && addr.Is6()
}

// validUnicodeAuthority rejects non-ASCII authorities whose NFKC form
// introduces a delimiter, e.g. a fullwidth solidus.
func validUnicodeAuthority(authority string) bool {
	if isASCII(authority) {
		return true
	}
	n := authorityDelims.Replace(authority)
	folded := norm.NFKC.String(n)
	if folded == n {
		return true
	}
	return !strings.ContainsAny(folded, "/?#@:")
}

var (
	authorityDelims = strings.NewReplacer("@", "", ":", "", "#", "", "?", "")
	ipvFuture       = regexp.MustCompile(`^v[a-fA-F0-9]+\..+$`)
)

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// splitScheme separates a leading "scheme:" from s.
// A scheme starts with a letter followed by letters, digits, '+', '-' or '.'.
func splitScheme(s string) (scheme, rest string, ok bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' || c == '+' || c == '-' || c == '.':
			if i == 0 {
				return "", s, false
			}
		case c == ':':
			if i == 0 {
				return "", s, false
			}
			return s[:i], s[i+1:], true
		default:
			return "", s, false
		}
	}
	return "", s, false
}
