package urlnorm

import (
	"errors"
	"net"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"

	"github.com/nao1215/phishscan/internal/model"
)

// DefaultScheme is prepended to inputs that carry no http(s) scheme.
const DefaultScheme = "http://"

var (
	// ErrEmptyURL is returned when the input is empty or whitespace.
	ErrEmptyURL = errors.New("url is required")

	schemePattern = regexp.MustCompile(`(?i)^https?:`)

	// anySchemePattern matches a generic URI scheme such as "ftp:".
	anySchemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)
)

// Normalize returns the canonical form of raw. Surrounding whitespace is
// trimmed and "http://" is prepended when raw does not already start with
// "http:" or "https:". The only error is a model.AnalysisError of kind
// KindInvalidInput for empty input; an unparsable host is not an error and
// simply leaves the derived fields empty.
func Normalize(raw string) (*model.NormalizedURL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, model.NewInvalidInputError(ErrEmptyURL)
	}

	normalized := trimmed
	if !HasScheme(trimmed) {
		normalized = DefaultScheme + trimmed
	}

	host := Host(normalized)
	domain, suffix := splitHost(host)

	return &model.NormalizedURL{
		Raw:              raw,
		URL:              normalized,
		Host:             host,
		RegisteredDomain: domain,
		Suffix:           suffix,
	}, nil
}

// HasScheme reports whether s starts with "http:" or "https:", ignoring case.
func HasScheme(s string) bool {
	return schemePattern.MatchString(s)
}

// Split returns the registrable domain and public suffix of rawURL. The
// input may be absolute or scheme-less ("evil.com/collect"). Both values are
// empty when no registrable domain exists, e.g. for IP literals.
func Split(rawURL string) (registeredDomain, suffix string) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return "", ""
	}
	if !strings.Contains(s, "://") && !strings.HasPrefix(s, "//") {
		s = DefaultScheme + s
	}
	return splitHost(Host(s))
}

// Host extracts the lower-cased ASCII hostname from an absolute URL. Only
// the authority is read, so an invalid escape in the path, query or
// fragment does not hide the host. It returns "" when there is no authority.
func Host(absoluteURL string) string {
	authority, ok := authorityOf(absoluteURL)
	if !ok {
		return ""
	}
	host := strings.TrimSuffix(strings.ToLower(hostOf(authority)), ".")
	if host == "" {
		return ""
	}
	if ascii, err := idna.Lookup.ToASCII(host); err == nil && ascii != "" {
		host = ascii
	}
	return host
}

// authorityOf returns the text after "//" up to the next delimiter. A
// backslash ends the authority as it does in browsers.
func authorityOf(s string) (string, bool) {
	if scheme := anySchemePattern.FindString(s); scheme != "" {
		s = s[len(scheme):]
	}
	rest, ok := strings.CutPrefix(s, "//")
	if !ok {
		return "", false
	}
	if i := strings.IndexAny(rest, `/?#\`); i >= 0 {
		rest = rest[:i]
	}
	return rest, true
}

// hostOf strips userinfo and port from an authority. Brackets around an
// IPv6 literal are removed.
func hostOf(authority string) string {
	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		authority = authority[i+1:]
	}
	if strings.HasPrefix(authority, "[") {
		end := strings.IndexByte(authority, ']')
		if end < 0 {
			return ""
		}
		return authority[1:end]
	}
	if i := strings.IndexByte(authority, ':'); i >= 0 {
		authority = authority[:i]
	}
	if strings.Contains(authority, "%") {
		if unescaped, err := url.PathUnescape(authority); err == nil {
			authority = unescaped
		}
	}
	return authority
}

// splitHost applies the public suffix list to an ASCII hostname.
func splitHost(host string) (string, string) {
	if host == "" || net.ParseIP(host) != nil {
		return "", ""
	}

	suffix := icannSuffix(host)
	if suffix == "" {
		return "", ""
	}
	if host == suffix {
		return "", suffix
	}

	// EffectiveTLDPlusOne also honors private suffixes, so its answer is
	// only usable when it sits directly on the ICANN suffix.
	if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		label, ok := strings.CutSuffix(domain, "."+suffix)
		if ok && label != "" && !strings.Contains(label, ".") {
			return domain, suffix
		}
	}

	rest := strings.TrimSuffix(host, "."+suffix)
	if i := strings.LastIndexByte(rest, '.'); i >= 0 {
		rest = rest[i+1:]
	}
	if rest == "" {
		return "", suffix
	}
	return rest + "." + suffix, suffix
}

// icannSuffix returns the ICANN public suffix of host, or "" when the top
// label is unknown to the list.
func icannSuffix(host string) string {
	suffix, icann := publicsuffix.PublicSuffix(host)
	for !icann {
		i := strings.IndexByte(suffix, '.')
		if i < 0 {
			return ""
		}
		suffix, icann = publicsuffix.PublicSuffix(suffix[i+1:])
	}
	return suffix
}
