package errs

import (
	"errors"
	"fmt"
)

// Kind categorises a storage error independently of the backend.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotConfigured
	KindAlreadyConfigured
	KindInvalidConfig
	KindInvalidKey
	KindNotFound
	KindAuth
	KindQuota
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindNotConfigured:
		return "not_configured"
	case KindAlreadyConfigured:
		return "already_configured"
	case KindInvalidConfig:
		return "invalid_config"
	case KindInvalidKey:
		return "invalid_key"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindQuota:
		return "quota"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the storage layer.
type Error struct {
	Kind Kind
	// Op is the operation that failed (put, get, delete, exists, stat, config).
	Op string
	// Key is the object key involved, if any.
	Key     string
	Message string
	// Cause is the underlying backend error, kept for logging and errors.Is.
	Cause error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	if e.Op != "" {
		msg = fmt.Sprintf("[%s] %s", e.Kind, e.Op)
		if e.Key != "" {
			msg += " " + e.Key
		}
		if e.Message != "" {
			msg += ": " + e.Message
		}
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, errs.New(errs.KindNotFound, "")) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an *Error with the given kind and message and no cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates an *Error with the given kind, message and cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// Op creates an *Error for a failed operation on key.
func Op(kind Kind, op, key string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Key: key, Cause: cause}
}

// KindOf extracts the Kind of the first *Error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotConfigured reports whether err comes from an unconfigured facade.
func IsNotConfigured(err error) bool { return KindOf(err) == KindNotConfigured }

// IsAlreadyConfigured reports whether err is a rejected reconfiguration.
func IsAlreadyConfigured(err error) bool { return KindOf(err) == KindAlreadyConfigured }

// IsInvalidConfig reports whether err is a configuration validation failure.
func IsInvalidConfig(err error) bool { return KindOf(err) == KindInvalidConfig }

// IsInvalidKey reports whether err was caused by a malformed key.
func IsInvalidKey(err error) bool { return KindOf(err) == KindInvalidKey }

// IsNotFound reports whether err represents a missing object.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsAuth reports whether err is a credential or permission rejection.
func IsAuth(err error) bool { return KindOf(err) == KindAuth }

// IsQuota reports whether err is a space or limit failure.
func IsQuota(err error) bool { return KindOf(err) == KindQuota }

// IsIO reports whether err is a transient or connectivity failure.
func IsIO(err error) bool { return KindOf(err) == KindIO }
