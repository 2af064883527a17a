package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/phishscan/internal/model"
	"github.com/nao1215/phishscan/internal/pipeline"
)

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// showZero lists detectors that scored nothing in the breakdown.
	showZero bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowZero configures the writer to list detectors that scored zero.
func WithShowZero(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showZero = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the result in human-readable format.
func (w *SimpleWriter) Write(result *model.AnalysisResult) (int, error) {
	var sb strings.Builder
	w.writeResult(&sb, result)
	w.writeFooter(&sb)
	return w.output.Write([]byte(sb.String()))
}

// WriteBatch outputs each item followed by a verdict summary.
func (w *SimpleWriter) WriteBatch(items []pipeline.BatchItem) (int, error) {
	var sb strings.Builder
	counts := make(map[model.Verdict]int)
	failed := 0

	for _, item := range items {
		if item.Err != nil {
			failed++
			w.writeFailure(&sb, item)
			continue
		}
		counts[item.Result.Verdict]++
		w.writeResult(&sb, item.Result)
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("BATCH SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "  URLs:       %d\n", len(items))
	fmt.Fprintf(&sb, "  Safe:       %d\n", counts[model.VerdictSafe])
	fmt.Fprintf(&sb, "  Suspicious: %d\n", counts[model.VerdictSuspicious])
	fmt.Fprintf(&sb, "  Malicious:  %d\n", counts[model.VerdictMalicious])
	fmt.Fprintf(&sb, "  Failed:     %d\n", failed)
	sb.WriteString("\n")

	w.writeFooter(&sb)
	return w.output.Write([]byte(sb.String()))
}

// writeResult writes the header and score breakdown of one result.
func (w *SimpleWriter) writeResult(sb *strings.Builder, result *model.AnalysisResult) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         PHISHSCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "URL:           %s\n", result.URL)
	fmt.Fprintf(sb, "Safety Score:  %d/100\n", result.SafetyScore)
	fmt.Fprintf(sb, "Verdict:       [%s] %s\n", verdictIndicator(result.Verdict), result.Verdict)
	if w.verbose {
		fmt.Fprintf(sb, "Raw Total:     %d\n", result.RawTotal)
		fmt.Fprintf(sb, "Analyzed At:   %s\n", result.AnalyzedAt.Format("2006-01-02 15:04:05 MST"))
	}
	sb.WriteString("\n")
	fmt.Fprintf(sb, "%s\n\n", result.Explanation())

	w.writeBreakdown(sb, result)
}

// writeBreakdown writes one line per scoring detector.
func (w *SimpleWriter) writeBreakdown(sb *strings.Builder, result *model.AnalysisResult) {
	if len(result.Findings) == 0 && !w.showZero {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SCORE BREAKDOWN\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, s := range result.Scores {
		if !s.IsFinding() && !w.showZero {
			continue
		}
		line := fmt.Sprintf("  %-18s %3d", featureTitle(s.Feature), s.Points)
		if s.Degraded {
			line += "  (lookup failed)"
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")
}

// writeFailure writes a failed batch item.
func (w *SimpleWriter) writeFailure(sb *strings.Builder, item pipeline.BatchItem) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "URL:           %s\n", item.URL)
	fmt.Fprintf(sb, "Status:        ERROR - %s\n\n", errorText(item.Err))
}

// verdictIndicator returns a visual indicator for the verdict.
func verdictIndicator(v model.Verdict) string {
	switch v {
	case model.VerdictMalicious:
		return "!!!"
	case model.VerdictSuspicious:
		return "!"
	case model.VerdictSafe:
		return "ok"
	default:
		return "?"
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Heuristic score only. Verify before trusting any link.\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
