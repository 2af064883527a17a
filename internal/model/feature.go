package model

import "fmt"

// Feature identifies one heuristic signal. The numeric value is the
// evaluation order used when building the explanation list, so findings are
// always reported in the same sequence regardless of which detector finished
// first.
type Feature int

const (
	// FeatureLength scores overly long URLs.
	FeatureLength Feature = iota

	// FeatureIPAddress scores URLs that embed a dotted-quad IPv4 literal.
	FeatureIPAddress

	// FeatureSuspiciousTLD scores public suffixes commonly abused for phishing.
	FeatureSuspiciousTLD

	// FeatureDomainAge scores recently registered domains and failed lookups.
	FeatureDomainAge

	// FeatureKeywords scores phishing-bait words in the URL.
	FeatureKeywords

	// FeatureFormAction scores pages whose forms post to another domain.
	FeatureFormAction

	// featureCount must stay last.
	featureCount
)

// FeatureCount is the number of features evaluated per analysis.
const FeatureCount = int(featureCount)

// featureInfo holds the stable name and human-readable finding text of a feature.
type featureInfo struct {
	name        string
	description string
}

var featureInfoMapping = map[Feature]featureInfo{
	FeatureLength:        {name: "length", description: "Suspiciously long URL"},
	FeatureIPAddress:     {name: "ip_address", description: "URL uses an IP address"},
	FeatureSuspiciousTLD: {name: "suspicious_tld", description: "Uses a suspicious TLD"},
	FeatureDomainAge:     {name: "domain_age", description: "Domain is very new"},
	FeatureKeywords:      {name: "keywords", description: "URL contains suspicious keywords"},
	FeatureFormAction:    {name: "form_action", description: "Forms may submit data to an external domain"},
}

// Features returns every feature in evaluation order.
func Features() []Feature {
	out := make([]Feature, 0, FeatureCount)
	for f := FeatureLength; f < featureCount; f++ {
		out = append(out, f)
	}
	return out
}

// String returns the stable machine name of the feature.
func (f Feature) String() string {
	if info, ok := featureInfoMapping[f]; ok {
		return info.name
	}
	return "unknown"
}

// Description returns the finding text shown to users.
func (f Feature) Description() string {
	if info, ok := featureInfoMapping[f]; ok {
		return info.description
	}
	return "Unknown finding"
}

// Valid reports whether f is a known feature.
func (f Feature) Valid() bool {
	return f >= FeatureLength && f < featureCount
}

// FeatureScore is the result of one detector. Zero points means the detector
// had nothing to report and the score is left out of the explanation.
type FeatureScore struct {
	// Feature is the signal that produced the points.
	Feature Feature `json:"-"`

	// Name is Feature.String(), kept for serialization.
	Name string `json:"name"`

	// Points is never negative.
	Points int `json:"points"`

	// Degraded is set when the points are a fixed penalty for an external
	// lookup that failed rather than an observed property of the URL.
	Degraded bool `json:"degraded,omitempty"`
}

// NewFeatureScore creates a FeatureScore, clamping negative points to zero.
func NewFeatureScore(feature Feature, points int) FeatureScore {
	if points < 0 {
		points = 0
	}
	return FeatureScore{
		Feature: feature,
		Name:    feature.String(),
		Points:  points,
	}
}

// DegradedScore creates a FeatureScore carrying a lookup-failure penalty.
func DegradedScore(feature Feature, penalty int) FeatureScore {
	s := NewFeatureScore(feature, penalty)
	s.Degraded = true
	return s
}

// IsFinding reports whether the score contributes to the explanation.
func (s FeatureScore) IsFinding() bool {
	return s.Points > 0
}

// Label renders the score the way it appears in the details string,
// e.g. "URL uses an IP address (30 points)".
func (s FeatureScore) Label() string {
	return fmt.Sprintf("%s (%d points)", s.Feature.Description(), s.Points)
}
