package tracker

import (
	"errors"
	"fmt"
)

// PersistenceError reports a failed local durable write. It is fatal to the
// call that produced it but recoverable: the store rolls back to its pre-call
// state, so a retry is effect-free until it succeeds.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ValidationError reports a field that is missing, mistyped, or out of range,
// either on capture input or on a document pulled from the remote collection.
// During a pull the offending document is skipped; the batch continues.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrRemoteUnavailable marks a failed remote push or pull. Remote failures
// are logged and never unwind a successful local append; there is no
// automatic retry beyond the next explicit sync.
var ErrRemoteUnavailable = errors.New("remote store unavailable")
