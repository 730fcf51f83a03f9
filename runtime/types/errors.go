package types

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Kind classifies an Error into one of the failure categories callers can
// act on: transport and pool failures are usually retryable, IO and
// validation failures are permanent.
type Kind int

const (
	// KindGeneric is an uncategorized failure carrying only a message.
	KindGeneric Kind = iota
	// KindTransport is a network or protocol failure reported by the store.
	KindTransport
	// KindPool is a connection-pool failure (exhaustion, acquisition).
	KindPool
	// KindIO is a file read failure while resolving a File or Lib source.
	KindIO
	// KindValidation is a caller error: empty update list, cardinality
	// mismatch in one/optional queries, missing pool handle for Lib sources.
	KindValidation
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindPool:
		return "pool"
	case KindIO:
		return "io"
	case KindValidation:
		return "validation"
	default:
		return "generic"
	}
}

// Error is the single error type returned by every pgq operation. It wraps
// the collaborator error that caused it, so errors.Is/As keep working
// through it.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		if e.msg != "" {
			return fmt.Sprintf("pgq: %s: %s: %v", e.kind, e.msg, e.cause)
		}
		return fmt.Sprintf("pgq: %s: %v", e.kind, e.cause)
	}
	return fmt.Sprintf("pgq: %s: %s", e.kind, e.msg)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// Kind returns the error category.
func (e *Error) Kind() Kind { return e.kind }

// Transport wraps a driver or network error.
func Transport(msg string, cause error) *Error {
	return &Error{kind: KindTransport, msg: msg, cause: cause}
}

// Pool wraps a connection-pool error.
func Pool(msg string, cause error) *Error {
	return &Error{kind: KindPool, msg: msg, cause: cause}
}

// IO wraps a file read error.
func IO(msg string, cause error) *Error {
	return &Error{kind: KindIO, msg: msg, cause: cause}
}

// Validation reports a caller error. It never wraps a cause; validation
// failures originate in this library.
func Validation(format string, args ...any) *Error {
	return &Error{kind: KindValidation, msg: fmt.Sprintf(format, args...)}
}

// Generic reports an uncategorized error.
func Generic(msg string, cause error) *Error {
	return &Error{kind: KindGeneric, msg: msg, cause: cause}
}

// KindOf returns the category of err, or KindGeneric if err is not a pgq
// Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindGeneric
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// FromDriver maps a database/sql error to the taxonomy: pool-lifecycle
// failures (closed connections, exhausted waits cancelled by a deadline)
// become pool errors, everything else the driver reports is a transport
// error. Errors that already carry a kind pass through unchanged.
func FromDriver(msg string, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	switch {
	case errors.Is(err, sql.ErrConnDone):
		return Pool(msg, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return Pool(msg, err)
	default:
		return Transport(msg, err)
	}
}
