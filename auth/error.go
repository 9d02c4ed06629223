package auth

import (
	"errors"

	"github.com/xy-planning-network/relay"
)

// An AuthErrorKind classifies why authorizing a request failed.
type AuthErrorKind int

const (
	KindUnknown AuthErrorKind = iota
	KindMissingHeader
	KindWrongAuthType
	KindWrongPayloadStructure
	KindWrongJWTStructure
	KindWrongAudience
	KindKidNotFound
	KindWrongKey
	KindJWKSHostMissing
	KindWrongJWKSHost
)

var kindMessages = map[AuthErrorKind]string{
	KindUnknown:               "Unknown authorization failure",
	KindMissingHeader:         "Authorization header is missing",
	KindWrongAuthType:         "Wrong authorization type",
	KindWrongPayloadStructure: "Wrong JWT payload structure",
	KindWrongJWTStructure:     "Wrong JWT structure",
	KindWrongAudience:         "Wrong configuration-token-audience",
	KindKidNotFound:           "kid from JWT header not found in API response",
	KindWrongKey: "Failed to decode JWT with provided key. " +
		"Make sure domain in custom_jwks_host corresponds to your SecureX instance region.",
	KindJWKSHostMissing: "jwks_host is missing in JWT payload. " +
		"Make sure custom_jwks_host field is present in module_type",
	KindWrongJWKSHost: "Wrong jwks_host in JWT payload. " +
		"Make sure domain follows the visibility.<region>.cisco.com structure",
}

// Message is the client-facing description of k.
func (k AuthErrorKind) Message() string {
	msg, ok := kindMessages[k]
	if !ok {
		return kindMessages[KindUnknown]
	}

	return msg
}

func (k AuthErrorKind) String() string { return k.Message() }

// An AuthorizationError reports a request failed authorization.
//
// Error returns only the fixed message for Kind.
// Cause holds what went wrong underneath, if anything, and is meant for logs.
type AuthorizationError struct {
	Kind  AuthErrorKind
	Cause error
}

func newAuthErr(kind AuthErrorKind, cause error) *AuthorizationError {
	return &AuthorizationError{Kind: kind, Cause: cause}
}

func (e *AuthorizationError) Error() string { return e.Kind.Message() }

// Is matches any *AuthorizationError of the same Kind.
func (e *AuthorizationError) Is(target error) bool {
	var other *AuthorizationError
	if !errors.As(target, &other) {
		return false
	}

	return other.Kind == e.Kind
}

func (*AuthorizationError) Unwrap() error { return relay.ErrNotAuthorized }

// KindOf returns the AuthErrorKind of the first *AuthorizationError in err's chain,
// or KindUnknown if there is none.
func KindOf(err error) AuthErrorKind {
	var authErr *AuthorizationError
	if !errors.As(err, &authErr) {
		return KindUnknown
	}

	return authErr.Kind
}
