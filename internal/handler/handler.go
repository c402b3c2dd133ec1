// Package handler is the HTTP layer: it binds and validates requests,
// calls the service layer and picks the response shape.
package handler
