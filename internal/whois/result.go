package whois

import (
	"slices"
	"time"
)

// Status tells whether a lookup produced registration metadata.
type Status int

const (
	// StatusFound means the registry answered for the domain.
	StatusFound Status = iota
	// StatusFailed means no usable answer was obtained.
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	if s == StatusFound {
		return "found"
	}
	return "failed"
}

// dateKind tags how many creation dates a record carried.
type dateKind int

const (
	dateNone dateKind = iota
	dateSingle
	dateMultiple
)

// CreationDate is a registry creation date that may be absent, single, or
// reported several times.
type CreationDate struct {
	kind  dateKind
	dates []time.Time
}

// NoCreationDate returns an absent creation date.
func NoCreationDate() CreationDate {
	return CreationDate{kind: dateNone}
}

// SingleCreationDate returns a creation date with exactly one value.
func SingleCreationDate(t time.Time) CreationDate {
	return CreationDate{kind: dateSingle, dates: []time.Time{t}}
}

// NewCreationDate picks the right variant for the given candidates, keeping
// their order. Zero times are dropped.
func NewCreationDate(candidates ...time.Time) CreationDate {
	dates := make([]time.Time, 0, len(candidates))
	for _, c := range candidates {
		if !c.IsZero() {
			dates = append(dates, c)
		}
	}
	switch len(dates) {
	case 0:
		return NoCreationDate()
	case 1:
		return SingleCreationDate(dates[0])
	default:
		return CreationDate{kind: dateMultiple, dates: dates}
	}
}

// IsPresent reports whether at least one date is known.
func (c CreationDate) IsPresent() bool {
	return c.kind != dateNone
}

// IsMultiple reports whether the record carried more than one date.
func (c CreationDate) IsMultiple() bool {
	return c.kind == dateMultiple
}

// Dates returns a copy of the candidates in the order they were reported.
func (c CreationDate) Dates() []time.Time {
	return slices.Clone(c.dates)
}

// Earliest returns the oldest candidate. The second value is false when no
// date is present.
func (c CreationDate) Earliest() (time.Time, bool) {
	if c.kind == dateNone || len(c.dates) == 0 {
		return time.Time{}, false
	}
	return slices.MinFunc(c.dates, func(a, b time.Time) int {
		return a.Compare(b)
	}), true
}

// Result is the outcome of one lookup.
type Result struct {
	// Domain is the name that was queried.
	Domain string
	// Status is StatusFound or StatusFailed.
	Status Status
	// Created is meaningful only when Status is StatusFound.
	Created CreationDate
	// Err holds the failure cause when Status is StatusFailed.
	Err error
}

// Found builds a successful result.
func Found(domain string, created CreationDate) Result {
	return Result{Domain: domain, Status: StatusFound, Created: created}
}

// Failed builds a failed result.
func Failed(domain string, err error) Result {
	return Result{Domain: domain, Status: StatusFailed, Err: err}
}

// OK reports whether the lookup succeeded.
func (r Result) OK() bool {
	return r.Status == StatusFound
}
