package resp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/logger"
)

const (
	jsonMediaType = "application/json; charset=UTF-8"

	// responderFrames is an Fn closure, do, and the Responder method.
	responderFrames = 3
)

// Responder maintains reusable pieces for responding to HTTP requests.
// It exposes methods for writing JSON envelopes as an HTTP response:
//
//	Json
//	Errors
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
//
// When handling a specific HTTP request, calling code supplies additional data, status codes,
// and so forth through Fn functions.
type Responder struct {
	logger logger.Logger

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool

	// Message replacing unexpected errors in client-facing responses
	genericErrMsg string
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New(nil)
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(l.Skip() + responderFrames)
	}

	if d.genericErrMsg == "" {
		d.genericErrMsg = DefaultErrMsg
	}

	return d
}

type dataSchema struct {
	Data any `json:"data"`
}

type errorsSchema struct {
	Errors []string `json:"errors"`
}

// Json responds with data in JSON format, wrapping whatever Data() set under the "data" key:
//
//	{
//		"data": {}
//	}
//
// The status code defaults to http.StatusOK.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	return doer.write(rr, dataSchema{Data: rr.data})
}

// Errors responds with the error's message in JSON format:
//
//	{
//		"errors": ["message"]
//	}
//
// Errors wrapping relay.ErrNotAuthorized respond with http.StatusUnauthorized,
// those wrapping relay.ErrNotValid with http.StatusBadRequest.
// relay.ErrNotFound, relay.ErrMethodNotAllowed and relay.ErrTooManyReqs
// respond with their matching 4xx status.
// Any other error is logged and the client receives the generic error message
// with http.StatusInternalServerError.
//
// Code() overrides the status code chosen.
func (doer *Responder) Errors(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) error {
	var pre []Fn
	switch {
	case err == nil:
		pre = []Fn{Err(fmt.Errorf("%w: nil error", relay.ErrUnexpected)), Messages(doer.genericErrMsg)}
	case errors.Is(err, relay.ErrNotAuthorized):
		pre = []Fn{Code(http.StatusUnauthorized), Messages(err.Error())}
	case errors.Is(err, relay.ErrNotFound):
		pre = []Fn{Code(http.StatusNotFound), Messages(err.Error())}
	case errors.Is(err, relay.ErrMethodNotAllowed):
		pre = []Fn{Code(http.StatusMethodNotAllowed), Messages(err.Error())}
	case errors.Is(err, relay.ErrTooManyReqs):
		pre = []Fn{Code(http.StatusTooManyRequests), Messages(err.Error())}
	case errors.Is(err, relay.ErrNotValid):
		pre = []Fn{Code(http.StatusBadRequest), Messages(err.Error())}
	default:
		pre = []Fn{Err(err), Messages(doer.genericErrMsg)}
	}

	rr, nested := doer.do(w, r, append(pre, opts...)...)
	if nested != nil {
		return nested
	}

	return doer.write(rr, errorsSchema{Errors: rr.errs})
}

// do applies all options to the passed in http.ResponseWriter and *http.Request.
//
// Should all options apply successfully, do returns a validly formed *Response.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{
		w:      w,
		r:      r,
		header: make(http.Header),
	}

	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w: %s", ErrDone, r.Context().Err())
		default:
			if err := opt(*doer, resp); err != nil {
				return nil, err
			}
		}
	}

	return resp, nil
}

// write encodes payload into a pooled buffer before sending headers,
// so an encoding failure can still produce a well-formed error response.
func (doer *Responder) write(rr *Response, payload any) error {
	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(payload); err != nil {
		err = fmt.Errorf("%w: %s", relay.ErrUnexpected, err)
		doer.logger.Error("failed encoding response", &logger.LogContext{Error: err, Request: rr.r})

		b.Reset()
		_ = json.NewEncoder(b).Encode(errorsSchema{Errors: []string{doer.genericErrMsg}})
		rr.code = http.StatusInternalServerError
	}

	for k, vals := range rr.header {
		for _, v := range vals {
			rr.w.Header().Add(k, v)
		}
	}

	rr.w.Header().Set("Content-Type", jsonMediaType)
	rr.w.WriteHeader(rr.code)
	if _, err := b.WriteTo(rr.w); err != nil {
		return err
	}

	return nil
}
