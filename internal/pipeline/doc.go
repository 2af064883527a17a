// Package pipeline aggregates detector scores into a verdict.
//
// An Analyzer normalizes the submitted URL, runs every detector
// concurrently, restores the fixed evaluation order of their scores and
// builds a model.AnalysisResult. Detector panics are recovered and reported
// as internal failures so a single request can never take the caller down.
//
// BatchProcessor runs an Analyzer over many URLs with bounded concurrency
// using errgroup, returning results in input order.
package pipeline
