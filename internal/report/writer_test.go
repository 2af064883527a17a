package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/phishscan/internal/model"
	"github.com/nao1215/phishscan/internal/pipeline"
	"github.com/nao1215/phishscan/internal/urlnorm"
)

// createTestResult creates a result with an IP finding, a keyword finding
// and a degraded age lookup.
func createTestResult(t *testing.T) *model.AnalysisResult {
	t.Helper()

	u, err := urlnorm.Normalize("192.168.1.1/login")
	if err != nil {
		t.Fatalf("failed to normalize: %v", err)
	}
	scores := []model.FeatureScore{
		model.NewFeatureScore(model.FeatureLength, 0),
		model.NewFeatureScore(model.FeatureIPAddress, 30),
		model.NewFeatureScore(model.FeatureSuspiciousTLD, 0),
		model.DegradedScore(model.FeatureDomainAge, 10),
		model.NewFeatureScore(model.FeatureKeywords, 5),
		model.NewFeatureScore(model.FeatureFormAction, 0),
	}
	return model.NewAnalysisResult(u, scores, model.DefaultThresholds())
}

// createCleanResult creates a result without findings.
func createCleanResult(t *testing.T) *model.AnalysisResult {
	t.Helper()

	u, err := urlnorm.Normalize("https://example.com")
	if err != nil {
		t.Fatalf("failed to normalize: %v", err)
	}
	return model.NewAnalysisResult(u, []model.FeatureScore{model.NewFeatureScore(model.FeatureLength, 0)}, model.DefaultThresholds())
}

func createTestBatch(t *testing.T) []pipeline.BatchItem {
	t.Helper()

	return []pipeline.BatchItem{
		{URL: "192.168.1.1/login", Result: createTestResult(t)},
		{URL: "", Err: model.NewInvalidInputError(urlnorm.ErrEmptyURL)},
		{URL: "https://example.com", Result: createCleanResult(t)},
		{URL: "https://broken.example", Err: model.NewInternalFailureError(errors.New("detector exploded"))},
	}
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestResult(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"PHISHSCAN REPORT",
			"http://192.168.1.1/login",
			"Safety Score:  55/100",
			"[!] Suspicious",
			"Key findings: URL uses an IP address (30 points)",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("marks degraded scores", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestResult(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "(lookup failed)") {
			t.Error("expected degraded marker")
		}
		if strings.Contains(buf.String(), "Suspicious Tld") {
			t.Error("zero scores should be hidden by default")
		}
	})

	t.Run("shows zero scores when requested", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithShowZero(true), WithVerbose(true)).Write(createTestResult(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "Suspicious Tld") {
			t.Error("expected zero score row")
		}
		if !strings.Contains(buf.String(), "Raw Total:     45") {
			t.Error("expected raw total in verbose output")
		}
	})

	t.Run("writes batch summary without internal detail", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteBatch(createTestBatch(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "BATCH SUMMARY") {
			t.Error("expected batch summary")
		}
		if !strings.Contains(output, "Failed:     2") {
			t.Error("expected two failed items")
		}
		if strings.Contains(output, "detector exploded") {
			t.Error("internal failure detail leaked into report")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes response fields and findings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestResult(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got map[string]any
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got["url"] != "http://192.168.1.1/login" {
			t.Errorf("got url %v", got["url"])
		}
		if got["score"] != float64(55) {
			t.Errorf("got score %v, expected 55", got["score"])
		}
		if got["status"] != "Suspicious" {
			t.Errorf("got status %v", got["status"])
		}
		if got["input"] != "192.168.1.1/login" {
			t.Errorf("got input %v", got["input"])
		}

		findings, ok := got["findings"].([]any)
		if !ok || len(findings) != 3 {
			t.Fatalf("expected 3 findings, got %v", got["findings"])
		}
		age, _ := findings[1].(map[string]any)
		if age["name"] != "domain_age" || age["degraded"] != true || age["label"] != "Domain is very new (10 points)" {
			t.Errorf("unexpected age finding %v", age)
		}
	})

	t.Run("compact output is one line", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createCleanResult(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Errorf("expected single line, got %q", buf.String())
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createCleanResult(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"url\"") {
			t.Errorf("expected indented output, got %q", buf.String())
		}
	})

	t.Run("writes batch in order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WriteBatch(createTestBatch(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got []JSONBatchItem
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(got) != 4 {
			t.Fatalf("expected 4 items, got %d", len(got))
		}
		if got[0].Report == nil || got[0].Report.Score != 55 {
			t.Errorf("unexpected first item %+v", got[0])
		}
		if got[1].Error == "" || got[1].Report != nil {
			t.Errorf("expected error item, got %+v", got[1])
		}
		if got[3].Error != "an error occurred during analysis" {
			t.Errorf("got %q", got[3].Error)
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes tables and chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestResult(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Phishscan Report",
			"Safety Score",
			"55/100",
			"Ip Address",
			"lookup failed",
			"pie",
			"[!WARNING]",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("clean result gets a tip", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createCleanResult(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "[!TIP]") {
			t.Error("expected tip alert")
		}
		if strings.Contains(buf.String(), "mermaid") {
			t.Error("did not expect a chart without findings")
		}
	})

	t.Run("writes batch table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteBatch(createTestBatch(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()
		if !strings.Contains(output, "# Phishscan Batch Report") {
			t.Error("expected batch header")
		}
		if !strings.Contains(output, "🟢 Safe") {
			t.Error("expected safe badge for clean url")
		}
	})
}

// TestMultiWriter tests writing to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var text, js bytes.Buffer
	m := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&js))

	n, err := m.Write(createTestResult(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != text.Len()+js.Len() {
		t.Errorf("got %d bytes, expected %d", n, text.Len()+js.Len())
	}
	if !json.Valid(js.Bytes()) {
		t.Error("expected valid JSON output")
	}
}
