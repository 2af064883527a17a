package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/phishscan/internal/config"
	"github.com/nao1215/phishscan/internal/detector"
	"github.com/nao1215/phishscan/internal/model"
	"github.com/nao1215/phishscan/internal/urlnorm"
)

// Analyzer normalizes a URL, runs every detector against it and aggregates
// the scores into a verdict. An Analyzer holds no per-request state and is
// safe for concurrent use; build one at startup and share it.
type Analyzer struct {
	// detectors are run concurrently. Their scores are re-ordered by
	// model.Feature afterwards, so the order here does not matter.
	detectors []detector.Detector

	// thresholds map the raw total to a verdict.
	thresholds model.Thresholds

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets a custom logger for the analyzer.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithThresholds overrides the verdict thresholds.
func WithThresholds(t model.Thresholds) Option {
	return func(a *Analyzer) {
		a.thresholds = t
	}
}

// New creates an Analyzer running the given detectors.
func New(detectors []detector.Detector, opts ...Option) *Analyzer {
	a := &Analyzer{
		detectors:  slices.Clone(detectors),
		thresholds: model.DefaultThresholds(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.Default()
	}

	return a
}

// NewDefault creates an Analyzer with the lexical, registration-age and
// content detectors configured from cfg.
func NewDefault(cfg *config.Config, registry detector.Registry, fetcher detector.Fetcher, opts ...Option) *Analyzer {
	a := New(nil, append([]Option{WithThresholds(cfg.Scoring.Thresholds)}, opts...)...)

	detectors := detector.Lexical(cfg.Scoring)
	detectors = append(detectors,
		detector.NewRegistrationAge(registry, cfg.Scoring, detector.WithAgeLogger(a.logger)),
		detector.NewContent(fetcher, cfg.Scoring, detector.WithContentLogger(a.logger)),
	)
	a.detectors = detectors

	return a
}

// DetectorCount returns the number of detectors.
func (a *Analyzer) DetectorCount() int {
	return len(a.detectors)
}

// DetectorNames returns the names of all detectors in evaluation order.
func (a *Analyzer) DetectorNames() []string {
	ordered := slices.Clone(a.detectors)
	slices.SortStableFunc(ordered, func(x, y detector.Detector) int {
		return int(x.Feature()) - int(y.Feature())
	})
	names := make([]string, len(ordered))
	for i, d := range ordered {
		names[i] = d.Name()
	}
	return names
}

// Analyze scores rawURL. It returns a *model.AnalysisError of kind
// KindInvalidInput for empty input, in which case no detector runs, and of
// kind KindInternalFailure when a detector panics or reports an unknown
// feature. Lookup and fetch failures are not errors; the detectors absorb
// them as penalties.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*model.AnalysisResult, error) {
	normalized, err := urlnorm.Normalize(rawURL)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	scores := make([]model.FeatureScore, len(a.detectors))

	g, gctx := errgroup.WithContext(ctx)
	for i, d := range a.detectors {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("detector %s panicked: %v\n%s", d.Name(), r, debug.Stack())
				}
			}()

			score := d.Detect(gctx, normalized)
			if !score.Feature.Valid() {
				return fmt.Errorf("detector %s returned unknown feature %d", d.Name(), score.Feature)
			}
			// Each goroutine owns exactly one slot.
			scores[i] = score
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		a.logger.Error("analysis failed",
			"url", normalized.URL,
			"error", err,
		)
		return nil, model.NewInternalFailureError(err)
	}

	slices.SortStableFunc(scores, func(x, y model.FeatureScore) int {
		return int(x.Feature) - int(y.Feature)
	})

	result := model.NewAnalysisResult(normalized, scores, a.thresholds)

	a.logger.Info("analysis complete",
		"url", result.URL,
		"score", result.SafetyScore,
		"verdict", result.Verdict.String(),
		"findings", len(result.Findings),
		"elapsed", time.Since(startTime),
	)

	return result, nil
}
