package cdda

import (
	"fmt"
	"strings"
)

// Kind classifies a conversion failure. Every Kind is fatal to the run.
type Kind int

const (
	MalformedContainer Kind = iota + 1
	MissingChunk
	UnsupportedFormat
	TruncatedPayload
	OutputWriteFailed
	ResourceExhausted
	UsageError
)

func (k Kind) Error() string {
	return k.name()
}

func (k Kind) name() string {
	switch k {
	case MalformedContainer:
		return "malformed container"
	case MissingChunk:
		return "missing chunk"
	case UnsupportedFormat:
		return "unsupported format"
	case TruncatedPayload:
		return "truncated payload"
	case OutputWriteFailed:
		return "output write failed"
	case ResourceExhausted:
		return "resource exhausted"
	case UsageError:
		return "usage error"
	default:
		return fmt.Sprintf("unknown error kind: %d", int(k))
	}
}

// Error carries a Kind together with the input it concerns and the
// underlying cause, if any.
type Error struct {
	Kind   Kind
	Input  string
	Detail string
	Err    error
}

// Errorf builds an *Error without an underlying cause.
func Errorf(kind Kind, input, format string, args ...any) *Error {
	return &Error{Kind: kind, Input: input, Detail: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error around cause.
func Wrap(kind Kind, input string, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Input: input, Detail: fmt.Sprintf(format, args...), Err: cause}
}

func (e *Error) Error() string {
	parts := make([]string, 0, 4)
	if e.Input != "" {
		parts = append(parts, e.Input)
	}
	parts = append(parts, e.Kind.Error())
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap exposes both the Kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
