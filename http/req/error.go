package req

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xy-planning-network/relay"
)

// A ValidationError is an issue with a concrete value not matching the rule set on its field.
type ValidationError struct {
	Field string `json:"field"`
	Got   any    `json:"got"`
	Rule  string `json:"rule,omitempty"`
}

// ValidationErrors is a set of ValidationError.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msg := fmt.Sprintf("field=%q rule=%q got=%q", err.Field, err.Rule, fmt.Sprint(err.Got))
		msgs = append(msgs, msg)
	}

	return strings.Join(msgs, "\n")
}

func (v ValidationErrors) MarshalJSON() ([]byte, error) {
	var errs struct {
		E []ValidationError `json:"validationErrors,omitempty"`
	}

	for _, err := range v {
		errs.E = append(errs.E, err)
	}

	return json.Marshal(errs)
}

func (ValidationErrors) Unwrap() error { return relay.ErrNotValid }

// An InvalidArgumentError reports a request body that could not be decoded
// or that its schema rejected.
//
// Error returns only Message, which is safe to show clients.
type InvalidArgumentError struct {
	Message string
	cause   error
}

func newInvalidArgErr(msg string, cause error) *InvalidArgumentError {
	return &InvalidArgumentError{Message: msg, cause: cause}
}

func (e *InvalidArgumentError) Error() string { return e.Message }

// Unwrap exposes relay.ErrNotValid and, if set, the error causing e.
func (e *InvalidArgumentError) Unwrap() []error {
	if e.cause == nil {
		return []error{relay.ErrNotValid}
	}

	return []error{relay.ErrNotValid, e.cause}
}
