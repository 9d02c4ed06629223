/*
Package auth authenticates requests carrying a JWT issued by a SecureX-style platform.

# Token flow

A request carries "Authorization: Bearer <jwt>".
The token names, in its own payload, the host publishing the key set it was signed with.
[*Service.Authenticate] therefore decodes the token twice:

 1. without verification, reading only the "jwks_host" claim;
 2. with verification, using the RS256 key whose "kid" matches the token header,
    fetched from https://<jwks_host>/.well-known/jwks,
    and requiring the "aud" claim to equal the root URL the request was served on.

Nothing besides "jwks_host" is ever read from the unverified payload.
The [Credential] returned carries "AuthKey" and "HOST" from the verified payload only.

# Errors

Every failure is an [*AuthorizationError] whose [AuthErrorKind] selects one of a fixed set of messages.
These messages are safe to show to a client; the underlying cause is kept for logging.
[*AuthorizationError] unwraps to [relay.ErrNotAuthorized].
*/
package auth
