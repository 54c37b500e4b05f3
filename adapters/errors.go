package adapters

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind classifies an external service failure
type Kind string

const (
	// KindTimeout is returned when the call exceeded its deadline
	KindTimeout Kind = "Timeout"
	// KindNetwork is returned when the service could not be reached
	KindNetwork Kind = "Network"
	// KindRemoteRejected is returned on a non-success status
	KindRemoteRejected Kind = "RemoteRejected"
	// KindDecodeFailed is returned when the response body is missing or malformed
	KindDecodeFailed Kind = "DecodeFailed"
)

// Error is the failure of a single external service call.
type Error struct {
	Adapter string
	Kind    Kind
	// Status is the HTTP status for KindRemoteRejected
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("%s: %s: status %d: %s", e.Adapter, e.Kind, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s: %s", e.Adapter, e.Kind, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Adapter, e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the adapter error in the chain
func KindOf(err error) (Kind, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return "", false
}

// IsKind returns true if err is an adapter error of the given kind
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
