package contact

import (
	"errors"
	"fmt"
	"time"
)

// State is the stage a contact submission is in.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	ErrInvalidTransition     = errors.New("invalid state transition")
	ErrSubmissionInFlight    = errors.New("submission already in flight")
	ErrAcknowledgmentPending = errors.New("previous submission not yet acknowledged")
)

// Failed is left implicitly, so a new attempt may start straight from it.
var transitions = map[State][]State{
	StateIdle:       {StateSubmitting},
	StateSubmitting: {StateSucceeded, StateFailed},
	StateSucceeded:  {StateIdle},
	StateFailed:     {StateIdle, StateSubmitting},
}

// Transition reports whether moving from one state to another is allowed.
func Transition(from, to State) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Session is the contact state owned by a single visitor. It is passed by
// value; the store holds the only shared copy.
type Session struct {
	ID          string
	Form        FormData
	State       State
	Acknowledge bool
	Notice      string
	UpdatedAt   time.Time
}

// Busy reports whether the submit control should be disabled.
func (s Session) Busy() bool {
	return s.State == StateSubmitting
}

// beginSubmit moves the session into Submitting, guarding against duplicates.
func (s Session) beginSubmit(form FormData, now time.Time) (Session, error) {
	switch s.State {
	case StateSubmitting:
		return s, ErrSubmissionInFlight
	case StateSucceeded:
		return s, ErrAcknowledgmentPending
	}
	if err := Transition(s.State, StateSubmitting); err != nil {
		return s, err
	}
	s.Form = form
	s.State = StateSubmitting
	s.Notice = ""
	s.Acknowledge = false
	s.UpdatedAt = now
	return s, nil
}

func (s Session) succeed(now time.Time) Session {
	s.Form.Reset()
	s.State = StateSucceeded
	s.Acknowledge = true
	s.Notice = ""
	s.UpdatedAt = now
	return s
}

func (s Session) fail(notice string, now time.Time) Session {
	s.State = StateFailed
	s.Acknowledge = false
	s.Notice = notice
	s.UpdatedAt = now
	return s
}

func (s Session) dismiss(now time.Time) Session {
	if s.State != StateSucceeded {
		return s
	}
	s.State = StateIdle
	s.Acknowledge = false
	s.UpdatedAt = now
	return s
}
