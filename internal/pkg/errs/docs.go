// Package errs provides the typed errors shared by the domain model, the application layer
// and the persistence adapters.
//
// Each error type follows the same pattern:
//   - a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ErrValueIsOutOfRange, ErrValueIsRequired)
//   - a struct carrying the offending parameter and an optional Cause
//   - constructors with and without cause
//   - Unwrap returning the sentinel, so callers branch with errors.Is
//
// Repositories return ObjectNotFoundError for missing rows; the HTTP adapter maps it to 404
// and the validation errors to 400.
package errs
