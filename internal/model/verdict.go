package model

import (
	"encoding/json"
	"fmt"
)

// Verdict is the final classification of an analyzed URL.
type Verdict int

const (
	// VerdictSafe means the raw total stayed at or below the suspicious threshold.
	VerdictSafe Verdict = iota

	// VerdictSuspicious means the raw total is above the suspicious threshold
	// but not above the malicious threshold.
	VerdictSuspicious

	// VerdictMalicious means the raw total is above the malicious threshold.
	VerdictMalicious
)

// String returns the verdict as serialized in API responses.
func (v Verdict) String() string {
	switch v {
	case VerdictSafe:
		return "Safe"
	case VerdictSuspicious:
		return "Suspicious"
	case VerdictMalicious:
		return "Malicious"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the verdict as its string form.
func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a verdict from its string form.
func (v *Verdict) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVerdict(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVerdict converts "Safe", "Suspicious" or "Malicious" to a Verdict.
func ParseVerdict(s string) (Verdict, error) {
	switch s {
	case "Safe":
		return VerdictSafe, nil
	case "Suspicious":
		return VerdictSuspicious, nil
	case "Malicious":
		return VerdictMalicious, nil
	default:
		return VerdictSafe, fmt.Errorf("unknown verdict %q", s)
	}
}

// Thresholds are the raw-total boundaries between verdicts. Both bounds are
// exclusive: a total equal to SuspiciousAbove is still Safe.
type Thresholds struct {
	// SuspiciousAbove is the total that must be exceeded for Suspicious.
	SuspiciousAbove int `yaml:"suspiciousAbove" json:"suspicious_above"`

	// MaliciousAbove is the total that must be exceeded for Malicious.
	MaliciousAbove int `yaml:"maliciousAbove" json:"malicious_above"`
}

// DefaultThresholds returns the 40/70 boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SuspiciousAbove: 40,
		MaliciousAbove:  70,
	}
}

// Classify maps a raw total to a verdict.
func (t Thresholds) Classify(rawTotal int) Verdict {
	switch {
	case rawTotal > t.MaliciousAbove:
		return VerdictMalicious
	case rawTotal > t.SuspiciousAbove:
		return VerdictSuspicious
	default:
		return VerdictSafe
	}
}

// Classify maps a raw total to a verdict using the default thresholds.
func Classify(rawTotal int) Verdict {
	return DefaultThresholds().Classify(rawTotal)
}

// MaxRawScore caps the raw total when computing the safety score.
const MaxRawScore = 100

// SafetyScore converts a raw total into the 0-100 safety score, where 100 is
// the safest. Totals above MaxRawScore all map to 0.
func SafetyScore(rawTotal int) int {
	if rawTotal < 0 {
		rawTotal = 0
	}
	return MaxRawScore - min(rawTotal, MaxRawScore)
}
