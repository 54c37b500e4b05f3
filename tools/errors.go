package tools

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finmcp/adapters"
	"github.com/effective-security/finmcp/store"
)

var (
	// ErrFailedUnmarshalInput is returned when the tool arguments do not match the schema
	ErrFailedUnmarshalInput = errors.New("failed to unmarshal input: check the schema and try again")
	// ErrToolNotFound is returned for an unknown tool name
	ErrToolNotFound = errors.New("tool not found")
)

// ArgumentError describes malformed tool input.
type ArgumentError struct {
	Tool   string
	Field  string
	Reason string
	Err    error
}

func (e *ArgumentError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid argument for %s: %s: %s", e.Tool, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid argument for %s: %s", e.Tool, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// Error codes of the result envelope
const (
	CodeToolNotFound    = "tool_not_found"
	CodeInvalidArgument = "invalid_argument"
	CodeNotFound        = "not_found"
	CodeTimeout         = "timeout"
	CodeUnavailable     = "unavailable"
	CodeInternal        = "internal"
)

// ErrorCode returns the envelope code of err
func ErrorCode(err error) string {
	var ae *ArgumentError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrToolNotFound):
		return CodeToolNotFound
	case errors.As(err, &ae), errors.Is(err, ErrFailedUnmarshalInput):
		return CodeInvalidArgument
	case store.IsNotFound(err):
		return CodeNotFound
	}
	if kind, ok := adapters.KindOf(err); ok {
		if kind == adapters.KindTimeout {
			return CodeTimeout
		}
		return CodeUnavailable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeTimeout
	}
	return CodeInternal
}
