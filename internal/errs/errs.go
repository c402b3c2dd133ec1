// Package errs defines the error shapes returned to API clients.
//
// Handlers and middleware return *HTTPError values; the global error
// handler renders them as JSON (or as a bare status when the error asks
// for an empty body).
package errs
