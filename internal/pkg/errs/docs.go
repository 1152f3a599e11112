// Package errs provides the standardized error types used across the order
// wizard engine.
//
// Two groups of errors live here:
//
//   - Generic validation errors (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError, VersionIsInvalidError)
//     raised by domain constructors and stage completion predicates. They are
//     local and non-retryable: correcting the input always recovers.
//   - Session coordination errors (StaleSessionError, SessionExpiredError)
//     raised when the authoritative backend disagrees with the local
//     optimistic state. They drive the resync and session-lost paths of the
//     synchronization layer.
//
// Each error type follows a consistent pattern: a sentinel error variable,
// a struct carrying the offending field(s), constructors with and without
// cause, and Unwrap support so callers can classify with errors.Is.
package errs
