package model

import (
	"strings"
	"time"
)

// NoFindingsDetail is the explanation used when no detector scored.
const NoFindingsDetail = "No major risk factors detected by our analysis."

// keyFindingsPrefix starts every non-empty explanation.
const keyFindingsPrefix = "Key findings: "

// AnalysisResult is the aggregated outcome of one URL analysis.
type AnalysisResult struct {
	// URL is the schemed form the detectors evaluated.
	URL string `json:"url"`

	// Input is the string exactly as submitted.
	Input string `json:"input"`

	// SafetyScore is 100 - min(RawTotal, 100).
	SafetyScore int `json:"safety_score"`

	// RawTotal is the sum of every feature's points.
	RawTotal int `json:"raw_total"`

	// Verdict is derived from RawTotal.
	Verdict Verdict `json:"verdict"`

	// Scores holds one entry per feature in evaluation order, including
	// features that scored zero.
	Scores []FeatureScore `json:"scores"`

	// Findings is the rendered label of each positive score, in order.
	Findings []string `json:"findings"`

	// AnalyzedAt is when the analysis completed.
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// NewAnalysisResult aggregates feature scores into a result. Scores must be
// in evaluation order; the caller is responsible for that ordering.
func NewAnalysisResult(normalized *NormalizedURL, scores []FeatureScore, thresholds Thresholds) *AnalysisResult {
	total := 0
	findings := make([]string, 0, len(scores))
	for _, s := range scores {
		total += s.Points
		if s.IsFinding() {
			findings = append(findings, s.Label())
		}
	}

	return &AnalysisResult{
		URL:         normalized.String(),
		Input:       normalized.Raw,
		SafetyScore: SafetyScore(total),
		RawTotal:    total,
		Verdict:     thresholds.Classify(total),
		Scores:      scores,
		Findings:    findings,
		AnalyzedAt:  time.Now(),
	}
}

// Explanation returns the human-readable details string.
func (r *AnalysisResult) Explanation() string {
	if len(r.Findings) == 0 {
		return NoFindingsDetail
	}
	return keyFindingsPrefix + strings.Join(r.Findings, ", ")
}

// DegradedFeatures returns the features whose points came from a failed lookup.
func (r *AnalysisResult) DegradedFeatures() []Feature {
	var out []Feature
	for _, s := range r.Scores {
		if s.Degraded {
			out = append(out, s.Feature)
		}
	}
	return out
}

// Response is the wire shape returned by the analyze endpoint.
type Response struct {
	URL     string `json:"url"`
	Score   int    `json:"score"`
	Status  string `json:"status"`
	Details string `json:"details"`
}

// Response converts the result into its API representation.
func (r *AnalysisResult) Response() Response {
	return Response{
		URL:     r.URL,
		Score:   r.SafetyScore,
		Status:  r.Verdict.String(),
		Details: r.Explanation(),
	}
}
