package sequencer

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySession    = errors.New("session has no segments")
	ErrInvalidDuration = errors.New("segment duration must be positive")
	ErrNoCatalog       = errors.New("sequencer has no catalog")
)

// StateError reports an operation that does not apply in the current state.
// The call is a no-op; the sequencer is unchanged.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: not valid while %s", e.Op, e.State)
}

// IsStateError reports whether err is a stray-call StateError.
func IsStateError(err error) bool {
	var se *StateError
	return errors.As(err, &se)
}
