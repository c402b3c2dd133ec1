// Package middleware holds the Echo middleware wrapped around every route.
//
// It covers request ids, the request-scoped logger, request logging,
// CORS, optional rate limiting, New Relic tracing, panic recovery and
// the global error handler.
package middleware
