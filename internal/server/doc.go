// Package server exposes the analyzer over HTTP.
//
// Routes:
//   - POST /analyze  {"url": "..."} -> {"url", "score", "status", "details"}
//   - GET  /healthz  -> {"status": "ok"}
//
// Missing URLs get 400 {"error": "URL is required"}. Internal failures get
// 500 with a generic message; the cause is logged with the request ID.
// Every response allows any origin.
package server
