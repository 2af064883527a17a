package whois

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	whoisparser "github.com/likexian/whois-parser"
)

// dateLayouts are tried in order against every creation date value.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 MST",
	"2006-01-02",
	"02-Jan-2006",
	"02-Jan-2006 15:04:05 MST",
	"2006.01.02",
	"2006.01.02 15:04:05",
	"02.01.2006",
	"2006/01/02",
	"January 2 2006",
	"Mon Jan 2 15:04:05 MST 2006",
}

// creationKeys are the lower-cased field names registries use for the
// creation date.
var creationKeys = map[string]struct{}{
	"creation date":            {},
	"created":                  {},
	"created on":               {},
	"created date":             {},
	"domain create date":       {},
	"domain registration date": {},
	"registered":               {},
	"registered on":            {},
	"registration date":        {},
	"registration time":        {},
	"record created":           {},
}

// ParseCreationDate extracts every creation date candidate from a raw WHOIS
// record. The structured parser runs first to detect "not found" answers and
// registry refusals; the raw text is then scanned line by line so records
// listing several creation dates keep all of them.
func ParseCreationDate(raw string) (CreationDate, error) {
	if strings.TrimSpace(raw) == "" {
		return NoCreationDate(), fmt.Errorf("%w: empty response", ErrNotRegistered)
	}

	var candidates []time.Time

	info, err := whoisparser.Parse(raw)
	switch {
	case err == nil:
		if info.Domain != nil {
			if t, ok := parseDate(info.Domain.CreatedDate); ok {
				candidates = append(candidates, t)
			}
		}
	case errors.Is(err, whoisparser.ErrNotFoundDomain):
		return NoCreationDate(), ErrNotRegistered
	case errors.Is(err, whoisparser.ErrDomainLimitExceed):
		return NoCreationDate(), fmt.Errorf("%w: %w", ErrRateLimited, err)
	case errors.Is(err, whoisparser.ErrReservedDomain),
		errors.Is(err, whoisparser.ErrPremiumDomain),
		errors.Is(err, whoisparser.ErrBlockedDomain):
		return NoCreationDate(), fmt.Errorf("registry refused lookup: %w", err)
	}

	for _, t := range scanCreationDates(raw) {
		if !containsTime(candidates, t) {
			candidates = append(candidates, t)
		}
	}
	return NewCreationDate(candidates...), nil
}

// scanCreationDates returns the parsable creation dates found in raw, in the
// order they appear.
func scanCreationDates(raw string) []time.Time {
	var out []time.Time
	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if _, wanted := creationKeys[key]; !wanted {
			continue
		}
		if t, ok := parseDate(value); ok {
			out = append(out, t)
		}
	}
	return out
}

// parseDate parses a creation date value. Registries sometimes append
// commentary such as "(YYYY-MM-DD)", so the first field is tried too.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	attempts := []string{value}
	if fields := strings.Fields(value); len(fields) > 1 {
		attempts = append(attempts, fields[0])
	}
	for _, v := range attempts {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

func containsTime(ts []time.Time, t time.Time) bool {
	for _, x := range ts {
		if x.Equal(t) {
			return true
		}
	}
	return false
}
