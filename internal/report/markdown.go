package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/phishscan/internal/model"
	"github.com/nao1215/phishscan/internal/pipeline"
)

// MarkdownWriter outputs reports in Markdown format for sharing in issues
// and tickets.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the result in Markdown format.
func (w *MarkdownWriter) Write(result *model.AnalysisResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Phishscan Report")
	md.PlainText("")
	w.writeResult(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBatch outputs a summary table followed by a section per URL.
func (w *MarkdownWriter) WriteBatch(items []pipeline.BatchItem) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Phishscan Batch Report")
	md.PlainText("")

	rows := make([][]string, len(items))
	for i, item := range items {
		if item.Err != nil {
			rows[i] = []string{"`" + item.URL + "`", "-", "❌ " + errorText(item.Err)}
			continue
		}
		rows[i] = []string{
			"`" + item.Result.URL + "`",
			strconv.Itoa(item.Result.SafetyScore),
			verdictBadge(item.Result.Verdict),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Score", "Verdict"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, item := range items {
		if item.Err != nil {
			continue
		}
		w.writeResult(md, item.Result)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeResult writes the property table, alert and breakdown of one result.
func (w *MarkdownWriter) writeResult(md *markdown.Markdown, result *model.AnalysisResult) {
	md.H2("`" + result.URL + "`")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Safety Score", strconv.Itoa(result.SafetyScore) + "/100"},
			{"Verdict", verdictBadge(result.Verdict)},
			{"Raw Total", strconv.Itoa(result.RawTotal)},
			{"Analyzed At", result.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")

	w.writeAlert(md, result)

	if len(result.Findings) == 0 {
		return
	}

	rows := make([][]string, 0, len(result.Findings))
	for _, s := range result.Scores {
		if !s.IsFinding() {
			continue
		}
		note := "-"
		if s.Degraded {
			note = "lookup failed"
		}
		rows = append(rows, []string{featureTitle(s.Feature), s.Feature.Description(), strconv.Itoa(s.Points), note})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Signal", "Finding", "Points", "Note"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(rows) > 1 {
		w.writePieChart(md, result)
	}
}

// writeAlert writes an alert matching the verdict.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, result *model.AnalysisResult) {
	switch result.Verdict {
	case model.VerdictMalicious:
		md.Cautionf("Likely phishing. %s", result.Explanation())
	case model.VerdictSuspicious:
		md.Warningf("Suspicious. %s", result.Explanation())
	default:
		if len(result.Findings) > 0 {
			md.Note(result.Explanation())
		} else {
			md.Tip(model.NoFindingsDetail)
		}
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of points per signal.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, result *model.AnalysisResult) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Risk Points by Signal"),
		piechart.WithShowData(true),
	)
	for _, s := range result.Scores {
		if s.IsFinding() {
			chart.LabelAndIntValue(featureTitle(s.Feature), uint64(s.Points))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// verdictBadge returns the verdict with an emoji marker.
func verdictBadge(v model.Verdict) string {
	switch v {
	case model.VerdictMalicious:
		return "🔴 " + v.String()
	case model.VerdictSuspicious:
		return "🟡 " + v.String()
	default:
		return "🟢 " + v.String()
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [phishscan](https://github.com/nao1215/phishscan)*")
}
