// Package report renders analysis results for people and tools.
//
// SimpleWriter prints a terminal summary with a per-signal breakdown,
// JSONWriter emits the API response enriched with raw points and findings,
// and MarkdownWriter produces a document with a verdict alert and a pie
// chart of risk points. Each writer handles a single result and a batch;
// MultiWriter fans a report out to several of them.
package report
