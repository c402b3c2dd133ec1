// Package validation binds request data and validates it.
//
// It uses the `validator` library to enforce rules declared in
// struct tags and converts failures into field-level errors the
// client can act on.
package validation
