// Package config provides the runtime configuration for phishscan: network
// timeouts, the API listen address, report preferences, and the scoring
// table (detector weights, suspicious TLDs, keywords and verdict thresholds).
package config
