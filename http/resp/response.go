package resp

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/relay/logger"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w      http.ResponseWriter
	r      *http.Request
	code   int
	data   any
	errs   []string
	header http.Header
}

// Code sets the response status code.
//
// Code returns ErrInvalid for values outside the range net/http accepts.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		if c < 100 || c > 999 {
			return fmt.Errorf("%w: status code %d", ErrInvalid, c)
		}

		r.code = c
		return nil
	}
}

// Data stores the provided value for writing to the client under the "data" key.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err sets the status code http.StatusInternalServerError and logs the error.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if e != nil {
			d.logger.Error(e.Error(), &logger.LogContext{Error: e, Request: r.r, Data: map[string]any{"data": r.data}})
		}

		return Code(http.StatusInternalServerError)(d, r)
	}
}

// Header sets the header key to val on the response.
func Header(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		r.header.Set(key, val)
		return nil
	}
}

// Messages appends msgs to the list written under the "errors" key.
func Messages(msgs ...string) Fn {
	return func(_ Responder, r *Response) error {
		r.errs = append(r.errs, msgs...)
		return nil
	}
}
