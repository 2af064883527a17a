// Package whois looks up domain registration metadata.
//
// A lookup never returns an error. It returns a Result whose Status is
// either StatusFound, possibly without a creation date, or StatusFailed with
// the cause attached. Timeouts, unknown domains, throttling and protocol
// errors all map to StatusFailed so that callers decide the penalty in one
// place instead of inspecting transport errors.
//
// Registries are inconsistent about creation dates: some omit them, some
// print one, and some print several (registry and registrar records).
// CreationDate keeps that distinction explicit and Earliest picks the oldest
// candidate deterministically.
package whois
