package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/nao1215/phishscan/internal/model"
	"github.com/nao1215/phishscan/internal/pipeline"
)

// JSONWriter outputs reports in JSON format for tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Finding is one scoring detector in a JSON report.
type Finding struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Points   int    `json:"points"`
	Degraded bool   `json:"degraded"`
}

// JSONReport extends the API response with the score breakdown.
type JSONReport struct {
	model.Response

	// Input is the URL as submitted.
	Input string `json:"input"`

	// RawTotal is the unclamped sum of points.
	RawTotal int `json:"raw_total"`

	// Findings lists every detector that scored, in evaluation order.
	Findings []Finding `json:"findings"`

	// AnalyzedAt is when the analysis completed.
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// NewJSONReport builds the JSON form of result.
func NewJSONReport(result *model.AnalysisResult) *JSONReport {
	findings := make([]Finding, 0, len(result.Findings))
	for _, s := range result.Scores {
		if !s.IsFinding() {
			continue
		}
		findings = append(findings, Finding{
			Name:     s.Name,
			Label:    s.Label(),
			Points:   s.Points,
			Degraded: s.Degraded,
		})
	}
	return &JSONReport{
		Response:   result.Response(),
		Input:      result.Input,
		RawTotal:   result.RawTotal,
		Findings:   findings,
		AnalyzedAt: result.AnalyzedAt,
	}
}

// JSONBatchItem is one entry of a JSON batch report. Exactly one of Report
// and Error is set.
type JSONBatchItem struct {
	URL    string      `json:"url"`
	Report *JSONReport `json:"report,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Write outputs the result in JSON format.
func (w *JSONWriter) Write(result *model.AnalysisResult) (int, error) {
	return w.writeJSON(NewJSONReport(result))
}

// WriteBatch outputs the batch as a JSON array in input order.
func (w *JSONWriter) WriteBatch(items []pipeline.BatchItem) (int, error) {
	out := make([]JSONBatchItem, len(items))
	for i, item := range items {
		out[i].URL = item.URL
		if item.Err != nil {
			out[i].Error = errorText(item.Err)
			continue
		}
		out[i].Report = NewJSONReport(item.Result)
	}
	return w.writeJSON(out)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
