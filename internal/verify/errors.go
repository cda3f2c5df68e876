package verify

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindNavigation
	KindAssertion
	KindMismatch
)

func (k Kind) String() string {
	switch k {
	case KindNavigation:
		return "navigation"
	case KindAssertion:
		return "assertion"
	case KindMismatch:
		return "mismatch"
	default:
		return "unexpected"
	}
}

var ErrMismatch = errors.New("expected substring not found")

// Error is the failure of one verification step.
type Error struct {
	Kind Kind
	Step string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed (%s): %v", e.Step, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func stepErr(kind Kind, step string, err error) error {
	return &Error{Kind: kind, Step: step, Err: err}
}

// KindOf reports the failure category of err, KindUnexpected for foreign
// errors.
func KindOf(err error) Kind {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return KindUnexpected
}

// ExitCode maps a run result to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
