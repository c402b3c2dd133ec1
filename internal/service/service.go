// Package service sits between the handler and repository layers.
//
// It receives bound requests from handlers, calls the repositories,
// and emits item lifecycle events. Response semantics are decided by
// the repository results, never here.
package service
