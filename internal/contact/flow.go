package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// FailureNotice is the transient message shown when a submission fails.
const FailureNotice = "Failed to send, please try again."

// Store holds sessions between requests. Update must run fn atomically with
// respect to other calls for the same id; a missing session is passed to fn
// as an Idle session carrying only its id.
type Store interface {
	Get(id string) (Session, bool, error)
	Update(id string, fn func(Session) (Session, error)) (Session, error)
}

// Flow runs the contact submission state machine for many sessions.
type Flow struct {
	relay Relay
	store Store
	log   *zap.Logger
	now   func() time.Time
}

// NewFlow wires a relay and a session store. A nil logger discards output.
func NewFlow(relay Relay, store Store, log *zap.Logger) *Flow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Flow{
		relay: relay,
		store: store,
		log:   log.Named("contact"),
		now:   time.Now,
	}
}

// Session returns the current snapshot for id. Unknown ids read as Idle.
func (f *Flow) Session(id string) (Session, error) {
	s, ok, err := f.store.Get(id)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{ID: id}, nil
	}
	return s, nil
}

// Submit sends form through the relay once. The returned session is the end
// state of the attempt. On failure the error wraps ErrSubmissionFailed and the
// form is left exactly as submitted.
func (f *Flow) Submit(ctx context.Context, id string, form FormData) (Session, error) {
	s, err := f.store.Update(id, func(cur Session) (Session, error) {
		return cur.beginSubmit(form, f.now())
	})
	if err != nil {
		return s, err
	}

	start := f.now()
	sendErr := f.relay.Send(ctx, form)
	if sendErr != nil {
		if !errors.Is(sendErr, ErrSubmissionFailed) {
			sendErr = fmt.Errorf("%w: %w", ErrSubmissionFailed, sendErr)
		}
		s, err = f.store.Update(id, func(cur Session) (Session, error) {
			return cur.fail(FailureNotice, f.now()), nil
		})
		if err != nil {
			return s, errors.Join(sendErr, err)
		}
		fields := []zap.Field{zap.String("session", id), zap.Duration("took", f.now().Sub(start)), zap.Error(sendErr)}
		var se *StatusError
		if errors.As(sendErr, &se) {
			fields = append(fields, zap.Int("status", se.StatusCode))
		}
		f.log.Warn("contact submission failed", fields...)
		return s, sendErr
	}

	s, err = f.store.Update(id, func(cur Session) (Session, error) {
		return cur.succeed(f.now()), nil
	})
	if err != nil {
		return s, err
	}
	f.log.Info("contact submission sent", zap.String("session", id), zap.Duration("took", f.now().Sub(start)))
	return s, nil
}

// Dismiss closes the success acknowledgment. Other states are left alone.
func (f *Flow) Dismiss(id string) (Session, error) {
	return f.store.Update(id, func(cur Session) (Session, error) {
		return cur.dismiss(f.now()), nil
	})
}

// Edit records field values typed but not yet sent. A failed attempt drops
// back to Idle here, which also retires its notice. The form of a Succeeded
// session stays empty until the acknowledgment is dismissed.
func (f *Flow) Edit(id string, form FormData) (Session, error) {
	return f.store.Update(id, func(cur Session) (Session, error) {
		switch cur.State {
		case StateSubmitting:
			return cur, ErrSubmissionInFlight
		case StateSucceeded:
			return cur, ErrAcknowledgmentPending
		}
		if cur.State == StateFailed {
			if err := Transition(cur.State, StateIdle); err != nil {
				return cur, err
			}
			cur.State = StateIdle
			cur.Notice = ""
		}
		cur.Form = form
		cur.UpdatedAt = f.now()
		return cur, nil
	})
}
