package detector

import (
	"context"

	"github.com/nao1215/phishscan/internal/config"
	"github.com/nao1215/phishscan/internal/model"
)

// Detector scores one feature of a normalized URL.
//
// Detect must not return an error: lookup failures are converted into a
// degraded score by the detector itself. A detector is constructed once and
// shared between concurrent analyses, so it must not keep per-call state.
type Detector interface {
	// Feature identifies the score slot this detector fills.
	Feature() model.Feature

	// Name returns the detector's name for logging purposes.
	Name() string

	// Detect scores u.
	Detect(ctx context.Context, u *model.NormalizedURL) model.FeatureScore
}

// Lexical returns the four network-free detectors built from s, in
// evaluation order.
func Lexical(s config.Scoring) []Detector {
	return []Detector{
		NewLength(s),
		NewIPAddress(s),
		NewSuspiciousTLD(s),
		NewKeywords(s),
	}
}
