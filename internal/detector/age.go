package detector

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/phishscan/internal/config"
	"github.com/nao1215/phishscan/internal/log"
	"github.com/nao1215/phishscan/internal/model"
	"github.com/nao1215/phishscan/internal/whois"
)

// Registry looks up domain registration metadata. *whois.Client satisfies it.
type Registry interface {
	Lookup(ctx context.Context, domain string) whois.Result
}

// RegistrationAge scores recently registered domains.
type RegistrationAge struct {
	registry Registry

	newDays, newPoints     int
	youngDays, youngPoints int

	// penalty is returned, marked degraded, when the lookup fails.
	penalty int

	now    func() time.Time
	logger *slog.Logger
}

// AgeOption configures a RegistrationAge detector.
type AgeOption func(*RegistrationAge)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) AgeOption {
	return func(d *RegistrationAge) {
		if now != nil {
			d.now = now
		}
	}
}

// WithAgeLogger sets the logger.
func WithAgeLogger(logger *slog.Logger) AgeOption {
	return func(d *RegistrationAge) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewRegistrationAge creates a RegistrationAge detector backed by registry.
func NewRegistrationAge(registry Registry, s config.Scoring, opts ...AgeOption) *RegistrationAge {
	d := &RegistrationAge{
		registry:    registry,
		newDays:     s.NewDomainDays,
		newPoints:   s.NewDomainPoints,
		youngDays:   s.YoungDomainDays,
		youngPoints: s.YoungDomainPoints,
		penalty:     s.AgeLookupFailedPenalty,
		now:         time.Now,
		logger:      log.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Feature returns model.FeatureDomainAge.
func (d *RegistrationAge) Feature() model.Feature { return model.FeatureDomainAge }

// Name returns the detector name.
func (d *RegistrationAge) Name() string { return "registration_age" }

// Detect looks up the registrable domain and scores its age. A failed lookup
// yields the degraded penalty; a successful lookup without a creation date
// yields zero.
func (d *RegistrationAge) Detect(ctx context.Context, u *model.NormalizedURL) model.FeatureScore {
	result := d.registry.Lookup(ctx, u.RegisteredDomain)

	if !result.OK() {
		d.logger.Debug("registration lookup degraded",
			"domain", u.RegisteredDomain,
			"error", result.Err,
			"penalty", d.penalty,
		)
		return model.DegradedScore(d.Feature(), d.penalty)
	}

	created, ok := result.Created.Earliest()
	if !ok {
		return model.NewFeatureScore(d.Feature(), 0)
	}

	ageDays := int(d.now().Sub(created).Hours() / 24)
	d.logger.Debug("registration age resolved",
		"domain", u.RegisteredDomain,
		"created", created.Format(time.DateOnly),
		"age_days", ageDays,
		"candidates", len(result.Created.Dates()),
	)

	switch {
	case ageDays < d.newDays:
		return model.NewFeatureScore(d.Feature(), d.newPoints)
	case ageDays < d.youngDays:
		return model.NewFeatureScore(d.Feature(), d.youngPoints)
	default:
		return model.NewFeatureScore(d.Feature(), 0)
	}
}
