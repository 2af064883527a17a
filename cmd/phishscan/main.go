// Package main provides the entry point for the phishscan CLI.
//
// phishscan assigns an explainable safety score to URLs using lexical,
// registration-age and page-content heuristics.
//
// Usage:
//
//	phishscan analyze <url>...
//	phishscan serve --listen 127.0.0.1:5000
//
// See --help for all available options.
package main

// main is the entry point for phishscan.
func main() {
	Execute()
}
