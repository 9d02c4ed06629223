package relay

type Key string

const (
	// CredentialKey stashes the verified credential of an HTTP request.
	CredentialKey Key = "CredentialKey"

	// IpAddrKey stashes the IP address of an HTTP request being handled by relay.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "relay context key: " + string(k)
}
