package domain

import "errors"

// Kind classifies failures for callers: NotFound, BadRequest or Internal.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindBadRequest:
		return "BadRequest"
	default:
		return "Internal"
	}
}

// Error is a classified failure with a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewNotFound creates a NotFound error.
func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NewBadRequest creates a BadRequest error.
func NewBadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// NewInternal creates an Internal error.
func NewInternal(message string) *Error {
	return &Error{Kind: KindInternal, Message: message}
}

var (
	// ErrRetryable marks failures the caller may retry as-is.
	ErrRetryable = errors.New("retryable")

	// ErrUnknownStatus is returned for a status outside the closed set.
	ErrUnknownStatus = NewInternal("unknown appointment status")
)

// KindOf returns the kind of the first classified error in the chain.
// Unclassified errors are Internal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// MessageOf returns the message of the first classified error in the chain.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}

// IsRetryable reports whether err is marked retryable.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRetryable)
}
