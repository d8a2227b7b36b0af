package commands

import (
	"folio/internal/pkg/errs"
)

// abort passes domain errors through and wraps anything else as a
// TransactionAbortError, so a caller sees either a rule it broke or one
// opaque failure.
func abort(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errs.Classify(err) != errs.KindUnknown {
		return err
	}
	return errs.NewTransactionAbortError(operation, err)
}
