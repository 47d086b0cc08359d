// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
var ErrInternal = errors.New("internal")

// Kind classifies an error into one of the outcomes callers are expected to handle.
type Kind uint8

// Supported error kinds.
const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidRequest
	KindInsufficientFunds
	KindConflict
	KindTransferFailed
)

var kindNames = map[Kind]string{
	KindUnknown:           "unknown",
	KindNotFound:          "not_found",
	KindInvalidRequest:    "invalid_request",
	KindInsufficientFunds: "insufficient_funds",
	KindConflict:          "conflict",
	KindTransferFailed:    "transfer_failed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return kindNames[KindUnknown]
}

// Error is an error with a stable kind and a message that is safe to show to API users.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New returns an Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap returns an Error of the given kind keeping err as its cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Error returns only the public message, the cause stays server side.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the cause of the error.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first Error found in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}
