package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/phishscan/internal/model"
)

// DefaultConcurrency is the number of URLs analyzed at once when no
// concurrency is configured.
const DefaultConcurrency = 10

// URLAnalyzer analyzes one URL. *Analyzer satisfies it.
type URLAnalyzer interface {
	Analyze(ctx context.Context, rawURL string) (*model.AnalysisResult, error)
}

// BatchItem is the outcome for one URL of a batch. Exactly one of Result and
// Err is set.
type BatchItem struct {
	// URL is the input as given.
	URL string

	// Result is the analysis, nil on error.
	Result *model.AnalysisResult

	// Err is the analysis error or the context error for URLs that never
	// started.
	Err error
}

// BatchProcessor analyzes many URLs with bounded concurrency.
type BatchProcessor struct {
	analyzer URLAnalyzer

	// concurrency is the maximum number of concurrent analyses.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(analyzer URLAnalyzer, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		analyzer:    analyzer,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch analyzes urls concurrently and returns one item per URL in
// input order. A failing URL does not stop the others; once ctx is done,
// URLs that have not started are reported with ctx.Err().
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, urls []string) []BatchItem {
	bp.logger.Info("starting batch analysis",
		"total_urls", len(urls),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()
	items := make([]BatchItem, len(urls))

	var g errgroup.Group
	g.SetLimit(bp.concurrency)

	for i, u := range urls {
		items[i].URL = u
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				items[i].Err = err
				return nil
			}

			result, err := bp.analyzer.Analyze(ctx, u)
			if err != nil {
				bp.logger.Warn("analysis failed",
					"url", u,
					"index", i+1,
					"total", len(urls),
					"error", err,
				)
				items[i].Err = err
				return nil
			}
			items[i].Result = result
			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // goroutines record errors per item

	bp.logger.Info("batch analysis complete",
		"total_urls", len(urls),
		"elapsed", time.Since(startTime),
	)

	return items
}
