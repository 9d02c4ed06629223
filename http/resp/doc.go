/*
The resp package provides a high-level API for responding to HTTP requests
with an easy way to configure the responses application-wide.

Every response resp writes is JSON, wrapped in one of two envelopes.
Successful responses hold their payload under "data":

	{"data": {"status": "ok"}}

Failed responses hold a list of messages under "errors":

	{"errors": ["Authorization header is missing"]}

[Responder.Errors] picks the status code from the error:
[relay.ErrNotAuthorized] becomes 401, [relay.ErrNotValid] becomes 400,
and anything else becomes a logged 500 whose message the client never sees.
*/
package resp
