package ledger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidAddress = fmt.Errorf("%w: malformed account address", ErrInvalidInput)
	ErrUnauthorized   = errors.New("no connected account")
	ErrAccessDenied   = errors.New("access denied by owner")
)

// RemoteError is any ledger or blob store failure that is not a denial:
// network, contract revert, timeout.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("ledger %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Remote wraps err as a RemoteError unless it already carries a known kind.
func Remote(op string, err error) error {
	if err == nil {
		return nil
	}
	if Classify(err) != KindRemoteFailure {
		return err
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return err
	}
	return &RemoteError{Op: op, Err: err}
}

type Kind int

const (
	KindNone Kind = iota
	KindInvalidInput
	KindUnauthorized
	KindAccessDenied
	KindRemoteFailure
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthorized:
		return "unauthorized"
	case KindAccessDenied:
		return "access_denied"
	}
	return "remote_failure"
}

// Classify places err in the error taxonomy. Anything unrecognised is a remote failure.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrAccessDenied):
		return KindAccessDenied
	}
	return KindRemoteFailure
}

// isDenial recognises the contract's revert reason for refused cross-owner reads.
func isDenial(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "access denied")
}
