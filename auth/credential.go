package auth

import (
	"context"
	"log/slog"

	"github.com/xy-planning-network/relay"
)

// A Credential is what a verified token grants a request.
type Credential struct {
	// AuthKey is the opaque application credential from the "AuthKey" claim.
	AuthKey string

	// Host is the "HOST" claim, naming the region the caller belongs to.
	Host string
}

// LogValue hides AuthKey.
//
// LogValue implements [log/slog.LogValuer].
func (c Credential) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("host", c.Host),
		slog.Attr{Key: "authKey", Value: relay.MaskedLogValue},
	)
}

// NewContext returns a copy of ctx storing cred.
func NewContext(ctx context.Context, cred Credential) context.Context {
	return context.WithValue(ctx, relay.CredentialKey, cred)
}

// FromContext retrieves the Credential stored in ctx by NewContext.
func FromContext(ctx context.Context) (Credential, bool) {
	cred, ok := ctx.Value(relay.CredentialKey).(Credential)
	return cred, ok
}
