package contact_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/AnjaliSharma2212/portfolio-app/internal/contact"
	"github.com/AnjaliSharma2212/portfolio-app/internal/session"
)

var ana = contact.FormData{Name: "Ana", Email: "a@x.com", Message: "hi"}

func newFlow(t *testing.T, relay contact.Relay) (*contact.Flow, *session.Store) {
	t.Helper()
	store, err := session.New()
	require.NoError(t, err)
	return contact.NewFlow(relay, store, zaptest.NewLogger(t)), store
}

// relayServer answers every request with code and records the decoded bodies.
func relayServer(t *testing.T, code int) (*httptest.Server, *[]contact.FormData) {
	t.Helper()
	var mu sync.Mutex
	var bodies []contact.FormData
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var f contact.FormData
		require.NoError(t, json.Unmarshal(raw, &f))
		mu.Lock()
		bodies = append(bodies, f)
		mu.Unlock()
		w.WriteHeader(code)
	}))
	t.Cleanup(srv.Close)
	return srv, &bodies
}

func TestSubmitSuccess(t *testing.T) {
	srv, bodies := relayServer(t, http.StatusOK)
	flow, _ := newFlow(t, contact.NewHTTPRelay(srv.URL))

	s, err := flow.Submit(context.Background(), "s1", ana)
	require.NoError(t, err)

	assert.Equal(t, []contact.FormData{ana}, *bodies)
	assert.Equal(t, contact.StateSucceeded, s.State)
	assert.True(t, s.Form.IsZero())
	assert.True(t, s.Acknowledge)

	stored, err := flow.Session("s1")
	require.NoError(t, err)
	assert.Equal(t, s, stored)
}

func TestSubmitRejected(t *testing.T) {
	srv, bodies := relayServer(t, http.StatusInternalServerError)
	flow, _ := newFlow(t, contact.NewHTTPRelay(srv.URL))

	s, err := flow.Submit(context.Background(), "s1", ana)
	require.ErrorIs(t, err, contact.ErrSubmissionFailed)

	assert.Len(t, *bodies, 1)
	assert.Equal(t, contact.StateFailed, s.State)
	assert.Equal(t, ana, s.Form)
	assert.Equal(t, contact.FailureNotice, s.Notice)
	assert.False(t, s.Acknowledge)
}

func TestSubmitThenDismiss(t *testing.T) {
	srv, _ := relayServer(t, http.StatusOK)
	flow, _ := newFlow(t, contact.NewHTTPRelay(srv.URL))

	_, err := flow.Submit(context.Background(), "s1", ana)
	require.NoError(t, err)

	_, err = flow.Submit(context.Background(), "s1", ana)
	assert.ErrorIs(t, err, contact.ErrAcknowledgmentPending)

	s, err := flow.Dismiss("s1")
	require.NoError(t, err)
	assert.Equal(t, contact.StateIdle, s.State)
	assert.False(t, s.Acknowledge)
	assert.True(t, s.Form.IsZero())
}

func TestRetryAfterFailure(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	flow, _ := newFlow(t, contact.NewHTTPRelay(srv.URL))

	s, err := flow.Submit(context.Background(), "s1", ana)
	require.Error(t, err)
	assert.Equal(t, contact.StateFailed, s.State)

	fail.Store(false)
	s, err = flow.Submit(context.Background(), "s1", s.Form)
	require.NoError(t, err)
	assert.Equal(t, contact.StateSucceeded, s.State)
}

// blockingRelay holds every Send until release is closed, then returns err.
type blockingRelay struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	err     error
}

func (b *blockingRelay) Send(ctx context.Context, _ contact.FormData) error {
	b.calls.Add(1)
	close(b.started)
	<-b.release
	return b.err
}

func TestSubmitInFlightGuard(t *testing.T) {
	relay := &blockingRelay{
		started: make(chan struct{}),
		release: make(chan struct{}),
		err:     errors.New("connection reset by peer"),
	}
	flow, _ := newFlow(t, relay)

	type outcome struct {
		s   contact.Session
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		s, err := flow.Submit(context.Background(), "s1", ana)
		done <- outcome{s, err}
	}()
	<-relay.started

	s, err := flow.Session("s1")
	require.NoError(t, err)
	assert.Equal(t, contact.StateSubmitting, s.State)
	assert.True(t, s.Busy())

	_, err = flow.Submit(context.Background(), "s1", ana)
	assert.ErrorIs(t, err, contact.ErrSubmissionInFlight)
	_, err = flow.Edit("s1", contact.FormData{Name: "x"})
	assert.ErrorIs(t, err, contact.ErrSubmissionInFlight)

	close(relay.release)
	out := <-done
	require.ErrorIs(t, out.err, contact.ErrSubmissionFailed)
	assert.Equal(t, contact.StateFailed, out.s.State)
	assert.Equal(t, ana, out.s.Form)
	assert.EqualValues(t, 1, relay.calls.Load())
}

func TestEditClearsFailure(t *testing.T) {
	srv, _ := relayServer(t, http.StatusUnprocessableEntity)
	flow, _ := newFlow(t, contact.NewHTTPRelay(srv.URL))

	_, err := flow.Submit(context.Background(), "s1", ana)
	require.Error(t, err)

	edited := ana
	edited.Message = "hi again"
	s, err := flow.Edit("s1", edited)
	require.NoError(t, err)
	assert.Equal(t, contact.StateIdle, s.State)
	assert.Empty(t, s.Notice)
	assert.Equal(t, edited, s.Form)
}

func TestUnknownSessionIsIdle(t *testing.T) {
	flow, _ := newFlow(t, contact.NewHTTPRelay("http://127.0.0.1:0"))
	s, err := flow.Session("nobody")
	require.NoError(t, err)
	assert.Equal(t, contact.Session{ID: "nobody"}, s)
}

func TestEditWhileAcknowledgmentPending(t *testing.T) {
	srv, _ := relayServer(t, http.StatusOK)
	flow, _ := newFlow(t, contact.NewHTTPRelay(srv.URL))

	_, err := flow.Submit(context.Background(), "s1", ana)
	require.NoError(t, err)

	s, err := flow.Edit("s1", ana)
	require.ErrorIs(t, err, contact.ErrAcknowledgmentPending)
	assert.Equal(t, contact.StateSucceeded, s.State)
	assert.True(t, s.Form.IsZero())

	s, err = flow.Dismiss("s1")
	require.NoError(t, err)
	assert.Equal(t, contact.StateIdle, s.State)
	assert.True(t, s.Form.IsZero())
}
