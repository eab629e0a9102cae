// Package errs provides standardized error types for the dispatch service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type carrying the error details
//   - constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// Callers classify failures with errors.Is against the sentinels rather than
// matching message text, which keeps error handling stable as messages evolve.
package errs
