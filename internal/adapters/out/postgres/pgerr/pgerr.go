// Package pgerr translates PostgreSQL failures into the core's error kinds.
package pgerr

import (
	"errors"
	"fmt"

	"folio/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the adapters react to.
const (
	UniqueViolation      = "23505"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	LockNotAvailable     = "55P03"
	QueryCanceled        = "57014"
)

// IsRetryable reports whether err is lock contention that a retry with the
// same input may get past.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case SerializationFailure, DeadlockDetected, LockNotAvailable, QueryCanceled:
		return true
	default:
		return false
	}
}

// IsUniqueViolation reports a duplicate key, returning the violated constraint.
func IsUniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == UniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// Wrap annotates err with operation. Lock contention becomes a retryable
// TransactionAbortError and duplicates become a validation error on param.
func Wrap(operation string, param string, err error) error {
	if err == nil {
		return nil
	}
	if IsRetryable(err) {
		return errs.NewRetryableTransactionAbortError(operation, err)
	}
	if constraint, ok := IsUniqueViolation(err); ok {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("duplicate key %s: %w", constraint, err))
	}
	return fmt.Errorf("%s: %w", operation, err)
}
