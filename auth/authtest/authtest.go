// Package authtest provides a key set server and token signer for testing code using package auth.
package authtest

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v4"
)

const (
	// AuthKey is the credential Claims grants.
	AuthKey = "secret123"

	// Host is the region Claims names.
	Host = "us"

	// JWKSHost is the jwks_host Claims points to.
	// Requests from a KeyServer.HTTPClient to any host reach the KeyServer.
	JWKSHost = "example.cisco.com"

	// certName is a name the httptest TLS certificate is valid for.
	certName = "example.com"
)

// A KeyServer publishes a JSON Web Key Set at /.well-known/jwks over TLS.
type KeyServer struct {
	*httptest.Server

	mu   sync.Mutex
	keys []jose.JSONWebKey
}

// NewKeyServer starts a KeyServer publishing keys.
// The server closes when t's test ends.
func NewKeyServer(t testing.TB, keys ...jose.JSONWebKey) *KeyServer {
	t.Helper()

	ks := &KeyServer{keys: keys}
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/jwks", func(w http.ResponseWriter, r *http.Request) {
		ks.mu.Lock()
		set := jose.JSONWebKeySet{Keys: append([]jose.JSONWebKey{}, ks.keys...)}
		ks.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(set); err != nil {
			t.Errorf("failed encoding key set: %s", err)
		}
	})

	ks.Server = httptest.NewTLSServer(mux)
	t.Cleanup(ks.Close)

	return ks
}

// Publish replaces the keys ks serves.
func (ks *KeyServer) Publish(keys ...jose.JSONWebKey) {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	ks.keys = keys
}

// HTTPClient returns an *http.Client that trusts ks
// and dials ks whatever host a request names.
func (ks *KeyServer) HTTPClient() *http.Client {
	addr := ks.Listener.Addr().String()
	tr := ks.Client().Transport.(*http.Transport).Clone()
	tr.DialContext = func(ctx context.Context, network, _ string) (net.Conn, error) {
		return new(net.Dialer).DialContext(ctx, network, addr)
	}
	tr.TLSClientConfig.ServerName = certName

	return &http.Client{Transport: tr}
}

// A Signer mints RS256 tokens under a key id.
type Signer struct {
	Key   *rsa.PrivateKey
	KeyID string
}

// NewSigner generates a fresh RSA key for kid.
func NewSigner(t testing.TB, kid string) *Signer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed generating RSA key: %s", err)
	}

	return &Signer{Key: key, KeyID: kid}
}

// JWK is the public half of s as published in a key set.
func (s *Signer) JWK() jose.JSONWebKey {
	return jose.JSONWebKey{
		Algorithm: string(jose.RS256),
		Key:       &s.Key.PublicKey,
		KeyID:     s.KeyID,
		Use:       "sig",
	}
}

// Sign mints a token holding claims.
// If s.KeyID is empty, the token carries no "kid" header.
func (s *Signer) Sign(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if s.KeyID != "" {
		token.Header["kid"] = s.KeyID
	}

	raw, err := token.SignedString(s.Key)
	if err != nil {
		t.Fatalf("failed signing token: %s", err)
	}

	return raw
}

// Claims builds a valid payload for a token addressed to aud.
func Claims(aud string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"AuthKey":   AuthKey,
		"HOST":      Host,
		"aud":       aud,
		"exp":       now.Add(time.Hour).Unix(),
		"iat":       now.Unix(),
		"jwks_host": JWKSHost,
	}
}
