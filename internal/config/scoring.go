package config

import (
	"fmt"
	"strings"

	"github.com/nao1215/phishscan/internal/model"
)

// Scoring is the weight table shared by all detectors. Every field can be
// overridden from the scoring section of the config file.
type Scoring struct {
	// LongURLLength and MediumURLLength are exclusive lower bounds on the
	// normalized URL length.
	LongURLLength   int `yaml:"longUrlLength"`
	MediumURLLength int `yaml:"mediumUrlLength"`
	LongURLPoints   int `yaml:"longUrlPoints"`
	MediumURLPoints int `yaml:"mediumUrlPoints"`

	IPAddressPoints int `yaml:"ipAddressPoints"`

	SuspiciousTLDs      []string `yaml:"suspiciousTlds"`
	SuspiciousTLDPoints int      `yaml:"suspiciousTldPoints"`

	// KeywordPoints is added once per occurrence of any keyword.
	Keywords      []string `yaml:"keywords"`
	KeywordPoints int      `yaml:"keywordPoints"`

	// Domains younger than NewDomainDays score NewDomainPoints, otherwise
	// younger than YoungDomainDays score YoungDomainPoints.
	NewDomainDays     int `yaml:"newDomainDays"`
	NewDomainPoints   int `yaml:"newDomainPoints"`
	YoungDomainDays   int `yaml:"youngDomainDays"`
	YoungDomainPoints int `yaml:"youngDomainPoints"`

	// AgeLookupFailedPenalty applies when the registration lookup fails.
	AgeLookupFailedPenalty int `yaml:"ageLookupFailedPenalty"`

	// ContentFetchFailedPenalty applies when the page cannot be fetched.
	ContentFetchFailedPenalty int `yaml:"contentFetchFailedPenalty"`

	CrossDomainFormPoints int `yaml:"crossDomainFormPoints"`

	Thresholds model.Thresholds `yaml:"thresholds"`
}

// DefaultScoring returns the built-in weight table.
func DefaultScoring() Scoring {
	return Scoring{
		LongURLLength:             75,
		MediumURLLength:           50,
		LongURLPoints:             20,
		MediumURLPoints:           10,
		IPAddressPoints:           30,
		SuspiciousTLDs:            []string{"xyz", "top", "link", "click", "live", "loan", "gdn"},
		SuspiciousTLDPoints:       25,
		Keywords:                  []string{"login", "secure", "account", "verify", "update", "signin", "bank", "paypal"},
		KeywordPoints:             5,
		NewDomainDays:             180,
		NewDomainPoints:           30,
		YoungDomainDays:           365,
		YoungDomainPoints:         15,
		AgeLookupFailedPenalty:    10,
		ContentFetchFailedPenalty: 10,
		CrossDomainFormPoints:     35,
		Thresholds:                model.DefaultThresholds(),
	}
}

// Validate checks that the table is internally consistent.
func (s Scoring) Validate() error {
	points := map[string]int{
		"longUrlPoints":             s.LongURLPoints,
		"mediumUrlPoints":           s.MediumURLPoints,
		"ipAddressPoints":           s.IPAddressPoints,
		"suspiciousTldPoints":       s.SuspiciousTLDPoints,
		"keywordPoints":             s.KeywordPoints,
		"newDomainPoints":           s.NewDomainPoints,
		"youngDomainPoints":         s.YoungDomainPoints,
		"ageLookupFailedPenalty":    s.AgeLookupFailedPenalty,
		"contentFetchFailedPenalty": s.ContentFetchFailedPenalty,
		"crossDomainFormPoints":     s.CrossDomainFormPoints,
	}
	for name, p := range points {
		if p < 0 {
			return fmt.Errorf("%w: %s must be non-negative", ErrInvalidScoring, name)
		}
	}
	if s.MediumURLLength < 0 || s.MediumURLLength >= s.LongURLLength {
		return fmt.Errorf("%w: mediumUrlLength must be below longUrlLength", ErrInvalidScoring)
	}
	if s.NewDomainDays < 0 || s.NewDomainDays >= s.YoungDomainDays {
		return fmt.Errorf("%w: newDomainDays must be below youngDomainDays", ErrInvalidScoring)
	}
	if s.Thresholds.SuspiciousAbove < 0 || s.Thresholds.SuspiciousAbove >= s.Thresholds.MaliciousAbove {
		return fmt.Errorf("%w: thresholds.suspiciousAbove must be below thresholds.maliciousAbove", ErrInvalidScoring)
	}
	for _, kw := range s.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("%w: keywords must not be empty", ErrInvalidScoring)
		}
	}
	return nil
}
