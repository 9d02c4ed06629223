/*
Package req provides ergonomics for handling an HTTP request.

Package req provides a helper for parsing JSON payloads in an HTTP request.
[Parser.ParseBody] parses a payload into a pointer to a struct.
That struct ought to leverage the appropriate struct tags for performing two tasks.
First, matching keys in the payload to fields on the struct.
Second, for validating the payload's data meets requirements.

When a handler has no struct to describe its payload,
[Parser.ParseBodyWithSchema] decodes it generically and hands it to a [Schema].

Either way, a payload that cannot be decoded or fails validation yields an [*InvalidArgumentError],
which unwraps to [relay.ErrNotValid] so responders can render it as a client error.
*/
package req
