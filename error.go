package relay

import "errors"

var (
	ErrBadAny           = errors.New("bad any")
	ErrBadConfig        = errors.New("bad config")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrNotFound         = errors.New("not found")
	ErrNotValid         = errors.New("invalid")
	ErrTooManyReqs      = errors.New("too many requests")
	ErrUnexpected       = errors.New("unexpected")
)
