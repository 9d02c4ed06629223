package resp

import "github.com/xy-planning-network/relay/logger"

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithGenericErrMsg sets the message clients see in place of unexpected errors.
//
// If no message is provided through this option, DefaultErrMsg is used.
func WithGenericErrMsg(msg string) ResponderOptFn {
	return func(d *Responder) {
		d.genericErrMsg = msg
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, one writing through [log/slog.Default] is configured.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}
