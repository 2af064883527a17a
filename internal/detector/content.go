package detector

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nao1215/phishscan/internal/config"
	"github.com/nao1215/phishscan/internal/fetch"
	"github.com/nao1215/phishscan/internal/htmlform"
	"github.com/nao1215/phishscan/internal/log"
	"github.com/nao1215/phishscan/internal/model"
	"github.com/nao1215/phishscan/internal/urlnorm"
)

// Fetcher downloads a page. *fetch.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) fetch.Result
}

// FormExtractor returns the forms of an HTML document.
type FormExtractor func(body string) ([]htmlform.Form, error)

// DomainSplitter returns the registrable domain and public suffix of a URL.
type DomainSplitter func(rawURL string) (registeredDomain, suffix string)

// Content scores pages whose forms submit to a different registrable domain.
type Content struct {
	fetcher Fetcher
	extract FormExtractor
	split   DomainSplitter

	crossDomainPoints int

	// penalty is returned, marked degraded, when the fetch fails.
	penalty int

	logger *slog.Logger
}

// ContentOption configures a Content detector.
type ContentOption func(*Content)

// WithFormExtractor replaces the HTML form extractor.
func WithFormExtractor(extract FormExtractor) ContentOption {
	return func(d *Content) {
		if extract != nil {
			d.extract = extract
		}
	}
}

// WithDomainSplitter replaces the public suffix splitter used on form actions.
func WithDomainSplitter(split DomainSplitter) ContentOption {
	return func(d *Content) {
		if split != nil {
			d.split = split
		}
	}
}

// WithContentLogger sets the logger.
func WithContentLogger(logger *slog.Logger) ContentOption {
	return func(d *Content) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewContent creates a Content detector backed by fetcher.
func NewContent(fetcher Fetcher, s config.Scoring, opts ...ContentOption) *Content {
	d := &Content{
		fetcher:           fetcher,
		extract:           htmlform.Extract,
		split:             urlnorm.Split,
		crossDomainPoints: s.CrossDomainFormPoints,
		penalty:           s.ContentFetchFailedPenalty,
		logger:            log.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Feature returns model.FeatureFormAction.
func (d *Content) Feature() model.Feature { return model.FeatureFormAction }

// Name returns the detector name.
func (d *Content) Name() string { return "content" }

// Detect fetches the page and inspects its forms. Empty actions and actions
// starting with "/" are same-origin and skipped. The first form whose action
// has a registrable domain that does not contain the page's registrable
// domain scores the cross-domain points; later forms are not examined.
func (d *Content) Detect(ctx context.Context, u *model.NormalizedURL) model.FeatureScore {
	page := d.fetcher.Fetch(ctx, u.URL)
	if !page.OK() {
		d.logger.Debug("page fetch degraded",
			"url", u.URL,
			"error", page.Err,
			"penalty", d.penalty,
		)
		return model.DegradedScore(d.Feature(), d.penalty)
	}

	forms, err := d.extract(page.Body)
	if err != nil {
		d.logger.Debug("page markup unreadable", "url", u.URL, "error", err)
		return model.NewFeatureScore(d.Feature(), 0)
	}

	for i, form := range forms {
		if form.Action == "" || strings.HasPrefix(form.Action, "/") {
			continue
		}
		actionDomain, _ := d.split(form.Action)
		if actionDomain == "" || strings.Contains(actionDomain, u.RegisteredDomain) {
			continue
		}
		d.logger.Debug("form submits to external domain",
			"url", u.URL,
			"form_index", i,
			"action_domain", actionDomain,
			"page_domain", u.RegisteredDomain,
			"password_field", form.HasPasswordField(),
		)
		return model.NewFeatureScore(d.Feature(), d.crossDomainPoints)
	}
	return model.NewFeatureScore(d.Feature(), 0)
}
