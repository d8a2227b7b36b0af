// Package errs provides standardized error types for the folio service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found in the caller's scope
//   - InvalidTransitionError: For when an order status change is not an allowed edge
//   - TransactionAbortError: For when a unit of work was rolled back
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Classify reduces any error to a Kind so that callers can decide between
// fixing the input, retrying, or giving up.
package errs
