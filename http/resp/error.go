package resp

import "errors"

var (
	ErrDone    = errors.New("request ctx done")
	ErrInvalid = errors.New("invalid")
)

// DefaultErrMsg is the message clients see when an unexpected error occurs.
const DefaultErrMsg = "Something went wrong. Please try again later."
