package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

const (
	claimAuthKey  = "AuthKey"
	claimHost     = "HOST"
	claimJWKSHost = "jwks_host"
	headerKeyID   = "kid"
)

// Authenticate verifies the bearer token sent with r and returns the Credential it grants.
//
// Every error returned is an *AuthorizationError.
func (s *Service) Authenticate(r *http.Request) (Credential, error) {
	raw, err := BearerToken(r.Header)
	if err != nil {
		return Credential{}, err
	}

	unverified, jwksHost, err := s.discover(raw)
	if err != nil {
		return Credential{}, err
	}

	kid, _ := unverified.Header[headerKeyID].(string)
	key, err := s.fetchKey(r.Context(), jwksHost, kid)
	if err != nil {
		return Credential{}, err
	}

	claims, err := s.verify(raw, key, s.audienceFor(r))
	if err != nil {
		return Credential{}, err
	}

	return credentialFrom(claims)
}

// discover decodes raw without verifying it, reading only the host serving its key set.
func (s *Service) discover(raw string) (*jwt.Token, string, error) {
	if payloadNotObject(raw) {
		return nil, "", newAuthErr(KindWrongPayloadStructure, errors.New("payload is not a JSON object"))
	}

	token, _, err := s.parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, "", newAuthErr(KindWrongJWTStructure, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "", newAuthErr(KindWrongPayloadStructure, fmt.Errorf("claims are %T", token.Claims))
	}

	host, _ := claims[claimJWKSHost].(string)
	if strings.TrimSpace(host) == "" {
		return nil, "", newAuthErr(KindJWKSHostMissing, nil)
	}

	return token, host, nil
}

// payloadNotObject reports whether raw is shaped like a JWT
// whose payload segment decodes but does not hold a JSON object.
func payloadNotObject(raw string) bool {
	segs := strings.Split(raw, ".")
	if len(segs) != 3 {
		return false
	}

	if _, err := jwt.DecodeSegment(segs[0]); err != nil {
		return false
	}

	b, err := jwt.DecodeSegment(segs[1])
	if err != nil {
		return false
	}

	// NOTE: null unmarshals into a nil map without error
	var obj map[string]any
	return json.Unmarshal(b, &obj) != nil || obj == nil
}

// verify decodes raw, checking its RS256 signature against key,
// its time-based claims, and that its audience is aud.
func (s *Service) verify(raw string, key any, aud string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := s.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return key, nil })
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, newAuthErr(KindWrongKey, err)
	default:
		// NOTE: malformed tokens and failing exp, nbf, or iat claims land here
		return nil, newAuthErr(KindWrongJWTStructure, err)
	}

	if !claims.VerifyAudience(aud, true) {
		return nil, newAuthErr(KindWrongAudience, fmt.Errorf("token audience %v, want %q", claims["aud"], aud))
	}

	return claims, nil
}

// credentialFrom reads the Credential out of verified claims.
func credentialFrom(claims jwt.MapClaims) (Credential, error) {
	authKey, ok := claims[claimAuthKey].(string)
	if !ok {
		return Credential{}, newAuthErr(KindWrongPayloadStructure, fmt.Errorf("missing %s claim", claimAuthKey))
	}

	host, ok := claims[claimHost].(string)
	if !ok {
		return Credential{}, newAuthErr(KindWrongPayloadStructure, fmt.Errorf("missing %s claim", claimHost))
	}

	return Credential{AuthKey: authKey, Host: host}, nil
}
