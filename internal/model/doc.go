// Package model defines the data structures shared by every stage of a
// URL safety analysis.
//
// This package contains the following main types:
//   - NormalizedURL: the schemed URL plus its registrable domain and public suffix
//   - FeatureScore: the points one detector assigned to the URL
//   - Verdict: Safe, Suspicious or Malicious
//   - AnalysisResult: the aggregated, explainable outcome of one analysis
//   - AnalysisError: the two failure outcomes a caller has to handle
//
// All values are request-scoped. Nothing in this package is cached or shared
// between analyses, and the types are serializable to JSON for the CLI
// reports and the HTTP API.
package model
