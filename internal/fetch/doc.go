// Package fetch downloads the page behind an analyzed URL.
//
// Fetch returns a Result instead of an error: a transport failure or timeout
// is reported in Result.Err so the caller can apply its penalty without
// treating it as a fatal fault. Non-2xx responses are not failures; their
// bodies are returned like any other, because phishing kits frequently
// serve their forms behind odd status codes.
//
// Requests carry a desktop browser User-Agent and Accept headers so that
// pages which cloak content from scripted clients still render their forms.
package fetch
