package model

import (
	"errors"
	"fmt"
	"testing"
)

func scoresOf(points map[Feature]int) []FeatureScore {
	scores := make([]FeatureScore, 0, FeatureCount)
	for _, f := range Features() {
		scores = append(scores, NewFeatureScore(f, points[f]))
	}
	return scores
}

// TestNewAnalysisResult tests aggregation of feature scores.
func TestNewAnalysisResult(t *testing.T) {
	t.Parallel()

	t.Run("ip and keyword url", func(t *testing.T) {
		t.Parallel()

		n := &NormalizedURL{Raw: "192.168.1.1/login", URL: "http://192.168.1.1/login"}
		scores := scoresOf(map[Feature]int{FeatureIPAddress: 30, FeatureKeywords: 5})
		r := NewAnalysisResult(n, scores, DefaultThresholds())

		if r.RawTotal != 35 {
			t.Errorf("got raw total %d, expected 35", r.RawTotal)
		}
		if r.SafetyScore != 65 {
			t.Errorf("got safety score %d, expected 65", r.SafetyScore)
		}
		if r.Verdict != VerdictSafe {
			t.Errorf("got verdict %s, expected Safe", r.Verdict)
		}
		expected := "Key findings: URL uses an IP address (30 points), URL contains suspicious keywords (5 points)"
		if got := r.Explanation(); got != expected {
			t.Errorf("got %q, expected %q", got, expected)
		}
		if r.URL != "http://192.168.1.1/login" {
			t.Errorf("got url %q, expected normalized url", r.URL)
		}
		if r.Input != "192.168.1.1/login" {
			t.Errorf("got input %q, expected raw input", r.Input)
		}
	})

	t.Run("no findings", func(t *testing.T) {
		t.Parallel()

		n := &NormalizedURL{Raw: "https://example.com", URL: "https://example.com"}
		r := NewAnalysisResult(n, scoresOf(nil), DefaultThresholds())

		if r.SafetyScore != 100 {
			t.Errorf("got safety score %d, expected 100", r.SafetyScore)
		}
		if got := r.Explanation(); got != NoFindingsDetail {
			t.Errorf("got %q, expected %q", got, NoFindingsDetail)
		}
		if len(r.Scores) != FeatureCount {
			t.Errorf("got %d scores, expected %d", len(r.Scores), FeatureCount)
		}
	})

	t.Run("total above cap", func(t *testing.T) {
		t.Parallel()

		n := &NormalizedURL{Raw: "x", URL: "http://x"}
		scores := scoresOf(map[Feature]int{
			FeatureLength:        20,
			FeatureIPAddress:     30,
			FeatureSuspiciousTLD: 25,
			FeatureDomainAge:     30,
			FeatureFormAction:    35,
		})
		r := NewAnalysisResult(n, scores, DefaultThresholds())

		if r.RawTotal != 140 {
			t.Errorf("got raw total %d, expected 140", r.RawTotal)
		}
		if r.SafetyScore != 0 {
			t.Errorf("got safety score %d, expected 0", r.SafetyScore)
		}
		if r.Verdict != VerdictMalicious {
			t.Errorf("got verdict %s, expected Malicious", r.Verdict)
		}
	})
}

// TestAnalysisResultDegradedFeatures tests that penalty scores are reported.
func TestAnalysisResultDegradedFeatures(t *testing.T) {
	t.Parallel()

	scores := scoresOf(map[Feature]int{FeatureLength: 20})
	scores[FeatureDomainAge] = DegradedScore(FeatureDomainAge, 10)

	r := NewAnalysisResult(&NormalizedURL{Raw: "u", URL: "http://u"}, scores, DefaultThresholds())
	degraded := r.DegradedFeatures()
	if len(degraded) != 1 || degraded[0] != FeatureDomainAge {
		t.Errorf("got %v, expected [domain_age]", degraded)
	}
	if r.RawTotal != 30 {
		t.Errorf("got raw total %d, expected 30", r.RawTotal)
	}
}

// TestAnalysisResultResponse tests the API projection of a result.
func TestAnalysisResultResponse(t *testing.T) {
	t.Parallel()

	scores := scoresOf(map[Feature]int{FeatureFormAction: 35})
	r := NewAnalysisResult(&NormalizedURL{Raw: "shop.example.com", URL: "https://shop.example.com"}, scores, DefaultThresholds())
	resp := r.Response()

	if resp.URL != "https://shop.example.com" {
		t.Errorf("got url %q", resp.URL)
	}
	if resp.Score != 65 {
		t.Errorf("got score %d, expected 65", resp.Score)
	}
	if resp.Status != "Safe" {
		t.Errorf("got status %q, expected Safe", resp.Status)
	}
	if resp.Details != "Key findings: Forms may submit data to an external domain (35 points)" {
		t.Errorf("got details %q", resp.Details)
	}
}

// TestFeatureScore tests FeatureScore helpers.
func TestFeatureScore(t *testing.T) {
	t.Parallel()

	t.Run("negative points clamp to zero", func(t *testing.T) {
		t.Parallel()
		s := NewFeatureScore(FeatureKeywords, -3)
		if s.Points != 0 || s.IsFinding() {
			t.Errorf("got %+v, expected zero non-finding", s)
		}
	})

	t.Run("label", func(t *testing.T) {
		t.Parallel()
		s := NewFeatureScore(FeatureSuspiciousTLD, 25)
		if got := s.Label(); got != "Uses a suspicious TLD (25 points)" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("features are in evaluation order", func(t *testing.T) {
		t.Parallel()
		fs := Features()
		for i, f := range fs {
			if int(f) != i {
				t.Errorf("feature %s at index %d", f, i)
			}
		}
		if Feature(99).Valid() {
			t.Error("expected out of range feature to be invalid")
		}
	})
}

// TestAnalysisError tests the error kinds.
func TestAnalysisError(t *testing.T) {
	t.Parallel()

	cause := errors.New("url is empty")

	t.Run("invalid input", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("analyze: %w", NewInvalidInputError(cause))
		if !errors.Is(err, ErrInvalidInput) {
			t.Error("expected ErrInvalidInput")
		}
		if errors.Is(err, ErrInternalFailure) {
			t.Error("did not expect ErrInternalFailure")
		}
		if !errors.Is(err, cause) {
			t.Error("expected cause to be reachable")
		}
		if !IsInvalidInput(err) {
			t.Error("expected IsInvalidInput to be true")
		}
	})

	t.Run("internal failure", func(t *testing.T) {
		t.Parallel()
		err := NewInternalFailureError(cause)
		var ae *AnalysisError
		if !errors.As(err, &ae) || ae.Kind != KindInternalFailure {
			t.Errorf("got %v, expected internal failure", err)
		}
		if err.Error() != "internal failure: url is empty" {
			t.Errorf("got %q", err.Error())
		}
	})
}
