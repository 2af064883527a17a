package detector

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/phishscan/internal/config"
	"github.com/nao1215/phishscan/internal/model"
)

// ipv4Pattern matches a dotted quad anywhere in the URL, not just in the host.
var ipv4Pattern = regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`)

// Length scores overly long URLs.
type Length struct {
	long, medium             int
	longPoints, mediumPoints int
}

// NewLength creates a Length detector.
func NewLength(s config.Scoring) *Length {
	return &Length{
		long:         s.LongURLLength,
		medium:       s.MediumURLLength,
		longPoints:   s.LongURLPoints,
		mediumPoints: s.MediumURLPoints,
	}
}

// Feature returns model.FeatureLength.
func (d *Length) Feature() model.Feature { return model.FeatureLength }

// Name returns the detector name.
func (d *Length) Name() string { return "length" }

// Detect scores the length of the normalized URL in characters.
func (d *Length) Detect(_ context.Context, u *model.NormalizedURL) model.FeatureScore {
	n := utf8.RuneCountInString(u.URL)
	switch {
	case n > d.long:
		return model.NewFeatureScore(d.Feature(), d.longPoints)
	case n > d.medium:
		return model.NewFeatureScore(d.Feature(), d.mediumPoints)
	default:
		return model.NewFeatureScore(d.Feature(), 0)
	}
}

// IPAddress scores URLs that contain a dotted-quad IPv4 literal.
type IPAddress struct {
	points int
}

// NewIPAddress creates an IPAddress detector.
func NewIPAddress(s config.Scoring) *IPAddress {
	return &IPAddress{points: s.IPAddressPoints}
}

// Feature returns model.FeatureIPAddress.
func (d *IPAddress) Feature() model.Feature { return model.FeatureIPAddress }

// Name returns the detector name.
func (d *IPAddress) Name() string { return "ip_address" }

// Detect scores d.points when the URL contains a dotted quad.
func (d *IPAddress) Detect(_ context.Context, u *model.NormalizedURL) model.FeatureScore {
	if ipv4Pattern.MatchString(u.URL) {
		return model.NewFeatureScore(d.Feature(), d.points)
	}
	return model.NewFeatureScore(d.Feature(), 0)
}

// SuspiciousTLD scores public suffixes commonly abused for phishing.
type SuspiciousTLD struct {
	tlds   map[string]struct{}
	points int
}

// NewSuspiciousTLD creates a SuspiciousTLD detector. Leading dots in the
// configured suffixes are ignored.
func NewSuspiciousTLD(s config.Scoring) *SuspiciousTLD {
	tlds := make(map[string]struct{}, len(s.SuspiciousTLDs))
	for _, tld := range s.SuspiciousTLDs {
		tld = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tld), "."))
		if tld != "" {
			tlds[tld] = struct{}{}
		}
	}
	return &SuspiciousTLD{tlds: tlds, points: s.SuspiciousTLDPoints}
}

// Feature returns model.FeatureSuspiciousTLD.
func (d *SuspiciousTLD) Feature() model.Feature { return model.FeatureSuspiciousTLD }

// Name returns the detector name.
func (d *SuspiciousTLD) Name() string { return "suspicious_tld" }

// Detect compares the whole public suffix, so "co.xyz" does not match "xyz".
func (d *SuspiciousTLD) Detect(_ context.Context, u *model.NormalizedURL) model.FeatureScore {
	if _, ok := d.tlds[u.Suffix]; ok {
		return model.NewFeatureScore(d.Feature(), d.points)
	}
	return model.NewFeatureScore(d.Feature(), 0)
}

// Keywords scores phishing-bait words. Every non-overlapping,
// case-insensitive occurrence of every keyword adds points; the total has no
// upper bound.
type Keywords struct {
	keywords []string
	points   int
}

// NewKeywords creates a Keywords detector.
func NewKeywords(s config.Scoring) *Keywords {
	keywords := make([]string, 0, len(s.Keywords))
	for _, kw := range s.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return &Keywords{keywords: keywords, points: s.KeywordPoints}
}

// Feature returns model.FeatureKeywords.
func (d *Keywords) Feature() model.Feature { return model.FeatureKeywords }

// Name returns the detector name.
func (d *Keywords) Name() string { return "keywords" }

// Detect counts keyword occurrences in the lower-cased URL.
func (d *Keywords) Detect(_ context.Context, u *model.NormalizedURL) model.FeatureScore {
	lower := strings.ToLower(u.URL)
	hits := 0
	for _, kw := range d.keywords {
		hits += strings.Count(lower, kw)
	}
	return model.NewFeatureScore(d.Feature(), hits*d.points)
}
