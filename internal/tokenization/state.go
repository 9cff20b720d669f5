package tokenization

import (
	"errors"
	"slices"
)

// State is a flow's position in the tokenization lifecycle.
type State string

const (
	StateIdle                State = "idle"
	StateAwaitingFingerprint State = "awaiting_fingerprint"
	StateAwaitingAuth        State = "awaiting_auth"
	StateTokenizing          State = "tokenizing"
	StateSucceeded           State = "succeeded"
	StateFailed              State = "failed"
)

var (
	ErrInvalidTransition = errors.New("invalid flow state transition")
	ErrAlreadyStarted    = errors.New("flow already started")
	ErrNotAwaitingAuth   = errors.New("flow is not awaiting an auth answer")
)

func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

func (s State) canTransitionTo(target State) error {
	switch s {
	case StateIdle:
		return allow(target, StateAwaitingFingerprint, StateFailed)
	case StateAwaitingFingerprint:
		return allow(target, StateAwaitingAuth, StateTokenizing, StateFailed)
	case StateAwaitingAuth:
		// A resent code or a follow-up challenge replaces the session in place.
		return allow(target, StateAwaitingAuth, StateTokenizing, StateFailed)
	case StateTokenizing:
		return allow(target, StateSucceeded, StateFailed)
	}
	return ErrInvalidTransition
}

func allow(target State, allowed ...State) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return ErrInvalidTransition
}
