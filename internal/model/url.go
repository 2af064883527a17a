package model

// NormalizedURL is the canonical form of a submitted URL that every detector
// reads. It is derived once per analysis and never modified afterwards.
type NormalizedURL struct {
	// Raw is the string exactly as the caller supplied it.
	Raw string `json:"raw"`

	// URL is Raw with a scheme guaranteed to be present.
	URL string `json:"url"`

	// Host is the hostname part of URL without port, lower-cased.
	// It is empty when URL has no parsable authority.
	Host string `json:"host,omitempty"`

	// RegisteredDomain is the effective second-level domain plus the
	// public suffix (e.g. "example.co.uk"). Empty for IP literals and
	// hosts that are themselves a public suffix.
	RegisteredDomain string `json:"registered_domain,omitempty"`

	// Suffix is the public suffix alone (e.g. "co.uk").
	Suffix string `json:"suffix,omitempty"`
}

// String returns the normalized URL string.
func (u *NormalizedURL) String() string {
	if u == nil {
		return ""
	}
	return u.URL
}
