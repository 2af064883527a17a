// Package htmlform extracts <form> elements from an HTML document.
//
// Action attributes are returned as written in the markup (surrounding
// whitespace removed) and are not resolved against the page URL. Callers
// decide what a relative or empty action means.
package htmlform
