package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-jose/go-jose/v4"
)

const (
	jwksPath = "/.well-known/jwks"

	// maxJWKSBytes bounds how much of a key set response is read.
	maxJWKSBytes = 1 << 20
)

// keySetURL builds the URL of the key set published by host.
// Only https is used; host may carry a port but nothing else.
func keySetURL(host string) (*url.URL, error) {
	if strings.ContainsAny(host, "/?#@\\ ") {
		return nil, fmt.Errorf("jwks_host %q is not a bare host", host)
	}

	u, err := url.Parse("https://" + host + jwksPath)
	if err != nil {
		return nil, err
	}

	if u.Host != host || u.Hostname() == "" {
		return nil, fmt.Errorf("jwks_host %q is not a bare host", host)
	}

	return u, nil
}

// fetchKey retrieves the key set published by host and returns the key identified by kid.
//
// Failing to reach host or to read a key set from it is a KindWrongJWKSHost.
// A key set without kid is a KindKidNotFound.
func (s *Service) fetchKey(ctx context.Context, host, kid string) (any, error) {
	u, err := keySetURL(host)
	if err != nil {
		return nil, newAuthErr(KindWrongJWKSHost, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, newAuthErr(KindWrongJWKSHost, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, newAuthErr(KindWrongJWKSHost, fmt.Errorf("failed fetching %s: %w", u, err))
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, newAuthErr(KindWrongJWKSHost, fmt.Errorf("failed fetching %s: status %d", u, res.StatusCode))
	}

	set, err := decodeKeySet(io.LimitReader(res.Body, maxJWKSBytes))
	if err != nil {
		return nil, newAuthErr(KindWrongJWKSHost, fmt.Errorf("failed decoding %s: %w", u, err))
	}

	key, ok := signingKey(set, kid)
	if !ok {
		return nil, newAuthErr(KindKidNotFound, fmt.Errorf("kid %q not in %s", kid, u))
	}

	return key, nil
}

// decodeKeySet reads a JSON Web Key Set.
// Keys go-jose cannot understand are skipped rather than failing the whole set.
func decodeKeySet(r io.Reader) (jose.JSONWebKeySet, error) {
	var raw struct {
		Keys []json.RawMessage `json:"keys"`
	}

	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return jose.JSONWebKeySet{}, err
	}

	if raw.Keys == nil {
		return jose.JSONWebKeySet{}, fmt.Errorf(`no "keys" member`)
	}

	var set jose.JSONWebKeySet
	for _, b := range raw.Keys {
		var jwk jose.JSONWebKey
		if err := jwk.UnmarshalJSON(b); err != nil {
			continue
		}

		set.Keys = append(set.Keys, jwk)
	}

	return set, nil
}

// signingKey finds the public key for kid suitable for verifying signatures.
func signingKey(set jose.JSONWebKeySet, kid string) (any, bool) {
	if kid == "" {
		return nil, false
	}

	for _, jwk := range set.Key(kid) {
		if jwk.Use != "" && jwk.Use != "sig" {
			continue
		}

		if !jwk.IsPublic() {
			jwk = jwk.Public()
		}

		if jwk.Key == nil {
			continue
		}

		return jwk.Key, true
	}

	return nil, false
}
