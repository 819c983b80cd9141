package contact

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingField is returned by Validate when a required field is blank.
var ErrMissingField = errors.New("missing required field")

// FormData is the body posted to the form relay.
type FormData struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// Validate mirrors the browser's required attribute. Nothing else is checked
// locally; the relay does its own validation.
func (f FormData) Validate() error {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return fmt.Errorf("%w: name", ErrMissingField)
	case strings.TrimSpace(f.Email) == "":
		return fmt.Errorf("%w: email", ErrMissingField)
	case strings.TrimSpace(f.Message) == "":
		return fmt.Errorf("%w: message", ErrMissingField)
	}
	return nil
}

// Reset empties every field.
func (f *FormData) Reset() {
	*f = FormData{}
}

// IsZero reports whether every field is empty.
func (f FormData) IsZero() bool {
	return f == FormData{}
}
