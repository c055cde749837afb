// Package errs provides standardized error types for the orderlink integration core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers two groups of errors.
//
// Validation errors, resolved locally and never counted as network failures:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value fails a client-side precondition
//   - OrderBusyError: For when an order already has an action in flight
//
// Integration errors, produced by endpoint negotiation:
//   - AuthRequiredError: The credential is missing or rejected; terminal for
//     the whole negotiation and actionable only by re-authentication
//   - IntegrationExhaustedError: Every known endpoint/payload shape rejected
//     the request; carries a truncated diagnostic of the last failure
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrAuthRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify failures with errors.Is against the sentinels, which keeps
// the set of user-visible failure modes stable across the codebase.
package errs
