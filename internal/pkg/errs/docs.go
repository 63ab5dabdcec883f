// Package errs provides the error types shared by the encomendas domain,
// application and adapter layers.
//
// Every error kind follows the same pattern:
//   - a sentinel variable (e.g. ErrCrossTenantReference) usable with errors.Is
//   - a struct carrying the details of the failure
//   - New... constructors, with a ...WithCause variant where a cause is useful
//   - Error() for the message and Unwrap() returning the sentinel
//
// Generic kinds (ObjectNotFoundError, ValueIsRequiredError, ValueIsInvalidError,
// ValueIsOutOfRangeError) live in errs.go. Order lifecycle kinds such as
// StatusTransitionError and DuplicateCodeError live in domain.go.
//
// ValidationError aggregates per-field failures so that a request with several
// bad fields reports all of them. It unwraps to every recorded error, which
// keeps errors.Is working for the individual kinds.
package errs
