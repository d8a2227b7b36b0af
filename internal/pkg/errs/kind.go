package errs

import "errors"

// Kind is the caller-facing category of an error.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindInvalidTransition
	KindAborted
	KindRetryable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindAborted:
		return "aborted"
	case KindRetryable:
		return "retryable"
	default:
		return "unknown"
	}
}

// IsValidation reports whether err is one of the input validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

// Classify maps err to its Kind. Domain kinds win over an enclosing abort so a
// validation failure raised inside a transaction still reads as validation.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	switch {
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case IsValidation(err):
		return KindValidation
	}

	var abortErr *TransactionAbortError
	if errors.As(err, &abortErr) {
		if abortErr.Retryable {
			return KindRetryable
		}
		return KindAborted
	}

	return KindUnknown
}
