package report

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/phishscan/internal/model"
	"github.com/nao1215/phishscan/internal/pipeline"
)

// Writer defines the interface for report output.
// Implementations write analysis results in various formats.
type Writer interface {
	// Write outputs a single analysis result.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.AnalysisResult) (int, error)

	// WriteBatch outputs the items of a batch in order. Failed items are
	// reported with their error instead of a result.
	WriteBatch(items []pipeline.BatchItem) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the result to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(result *model.AnalysisResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteBatch outputs the batch to all configured Writers.
func (m *MultiWriter) WriteBatch(items []pipeline.BatchItem) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteBatch(items)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// featureTitle turns a machine name such as "suspicious_tld" into
// "Suspicious Tld" for table headers.
func featureTitle(f model.Feature) string {
	return cases.Title(language.English).String(strings.ReplaceAll(f.String(), "_", " "))
}

// errorText returns the message shown for a failed batch item. Internal
// failures are not detailed in reports.
func errorText(err error) string {
	if model.IsInvalidInput(err) {
		return "invalid input: URL is required"
	}
	if errors.Is(err, model.ErrInternalFailure) {
		return "an error occurred during analysis"
	}
	return err.Error()
}
