package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/xy-planning-network/relay"
)

// UnknownIPAddress is reported when no client address can be found.
const UnknownIPAddress = "0.0.0.0"

// IANA defined IPv4 non-public ranges
var privatePrefixes = []netip.Prefix{
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectIPAddress stores the client's IP address in the request context under relay.IpAddrKey.
//
// When trustProxy is true, the address comes from the forwarding headers read by GetIPAddress,
// falling back to the connection's remote address.
// Otherwise those headers are ignored, since any client can set them.
func InjectIPAddress(trustProxy bool) Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r, trustProxy)
			h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), relay.IpAddrKey, ip)))
		})
	}
}

// ClientIP returns the IP address of the client making r.
// Forwarding headers are consulted only when trustProxy is true.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if ip := GetIPAddress(r.Header); ip != UnknownIPAddress {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if host == "" {
		return UnknownIPAddress
	}

	return host
}

// contextIP is the address InjectIPAddress stored for r,
// or r's remote address if InjectIPAddress has not run.
func contextIP(r *http.Request) string {
	if ip, ok := r.Context().Value(relay.IpAddrKey).(string); ok && ip != "" {
		return ip
	}

	return ClientIP(r, false)
}

// GetIPAddress parses "X-Forwarded-For" and "X-Real-Ip" headers for the IP address
// from the request.
//
// GetIPAddress skips addresses from non-public ranges.
func GetIPAddress(hm http.Header) string {
	for _, h := range []string{"X-Forwarded-For", "X-Real-Ip"} {
		addrs := strings.Split(hm.Get(h), ",")

		// the right-most public address is the one just before our proxy
		for i := len(addrs) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(addrs[i]))
			if err != nil || !isPublic(addr) {
				continue
			}

			return addr.String()
		}
	}

	return UnknownIPAddress
}

// isPublic reports whether addr is a global unicast address outside the private IPv4 ranges.
func isPublic(addr netip.Addr) bool {
	addr = addr.Unmap()
	if !addr.IsGlobalUnicast() {
		return false
	}

	for _, p := range privatePrefixes {
		if p.Contains(addr) {
			return false
		}
	}

	return true
}
