// Package errs provides standardized error types for the shop application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type carrying the error details
//   - constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() for errors.Is support
//
// ConfigurationError stands apart from the value errors: it marks invalid
// static wiring (duplicate transition rules, colliding modifier identifiers,
// unknown modifier factories) and is raised exactly once, while preparing
// transition tables and pricing pipelines. Callers treat it as fatal.
package errs
