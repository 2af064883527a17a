// Package urlnorm turns caller-supplied URL strings into the canonical form
// every detector evaluates.
//
// Normalization is deliberately small: a missing scheme is replaced by
// "http://" and nothing else about the string changes, so lexical detectors
// see what the user typed. The host is then split against the public suffix
// list into its registrable domain ("example.co.uk") and suffix ("co.uk").
//
// Only ICANN suffixes are honored. Privately registered suffixes such as
// "github.io" are folded back to their ICANN parent, and hosts whose top
// label is not on the list at all yield an empty domain and suffix.
package urlnorm
