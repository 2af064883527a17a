// Package detector implements the heuristic signals that make up a URL's
// risk score.
//
// # Lexical detectors
//
// Length, IPAddress, SuspiciousTLD and Keywords look only at the normalized
// URL string. They never touch the network and never fail.
//
// # Network detectors
//
// RegistrationAge asks a WHOIS collaborator for the registrable domain's
// creation date and Content fetches the page to inspect where its forms
// submit. Both follow the same degrade-not-fail policy: when the lookup or
// fetch fails, the detector returns a fixed penalty marked as degraded
// instead of an error, so one unreachable registry cannot abort an analysis.
//
// All weights come from config.Scoring.
package detector
