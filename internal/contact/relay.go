package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultEndpoint is the Formspree form that receives portfolio messages.
const DefaultEndpoint = "https://formspree.io/f/xjkoadkq"

// ErrSubmissionFailed covers every way a submission can fail: the relay
// rejected it or it never reached the relay.
var ErrSubmissionFailed = errors.New("submission failed")

// StatusError is returned when the relay answers outside the 2xx range.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("relay responded %s", e.Status)
}

// Relay delivers a form to whatever forwards it to the site owner.
type Relay interface {
	Send(ctx context.Context, form FormData) error
}

// HTTPRelay posts forms as JSON to a form-relay endpoint.
type HTTPRelay struct {
	endpoint string
	client   *http.Client
}

// RelayOption configures an HTTPRelay.
type RelayOption func(*HTTPRelay)

// WithHTTPClient replaces the default client. The default has no timeout;
// a request runs until the transport gives up.
func WithHTTPClient(c *http.Client) RelayOption {
	return func(r *HTTPRelay) {
		if c != nil {
			r.client = c
		}
	}
}

// NewHTTPRelay posts to endpoint, or DefaultEndpoint when it is empty.
func NewHTTPRelay(endpoint string, opts ...RelayOption) *HTTPRelay {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	r := &HTTPRelay{
		endpoint: endpoint,
		client:   &http.Client{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Endpoint is the URL forms are posted to.
func (r *HTTPRelay) Endpoint() string {
	return r.endpoint
}

// Send makes a single attempt. Only the status class of the reply is looked
// at; the body is drained and discarded.
func (r *HTTPRelay) Send(ctx context.Context, form FormData) error {
	body, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("%w: encode form: %v", ErrSubmissionFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		})
	}
	return nil
}
