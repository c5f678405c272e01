package election

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the response envelope.
type Kind int

const (
	KindUnknown Kind = iota
	ValidationError
	InitializationError
	NoAccountsError
	UpstreamReadError
	UpstreamWriteError
)

func (k Kind) String() string {
	switch k {
	case ValidationError:
		return "validation"
	case InitializationError:
		return "initialization"
	case NoAccountsError:
		return "no_accounts"
	case UpstreamReadError:
		return "upstream_read"
	case UpstreamWriteError:
		return "upstream_write"
	}
	return "unknown"
}

// Error is a classified failure. Message and Details are safe to show to a
// caller; Err is the internal cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Details []string
	// Index is the failing candidate id of a candidate scan, 0 if none.
	Index int64
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func validationError(message string, details ...string) *Error {
	return &Error{Kind: ValidationError, Message: message, Details: details}
}

func initializationError(err error) *Error {
	return &Error{Kind: InitializationError, Message: "Failed to initialize contract", Err: err}
}

func readError(message string, err error) *Error {
	return &Error{Kind: UpstreamReadError, Message: message, Err: err}
}

func writeError(message string, err error) *Error {
	return &Error{Kind: UpstreamWriteError, Message: message, Err: err}
}
