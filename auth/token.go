package auth

import (
	"net/http"
	"strings"
)

const bearerScheme = "bearer"

// BearerToken pulls the token out of the "Authorization" header in h.
//
// The header must be exactly two whitespace-separated fields,
// the first of which matches "bearer" regardless of case.
func BearerToken(h http.Header) (string, error) {
	vals, ok := h[http.CanonicalHeaderKey("Authorization")]
	if !ok || len(vals) == 0 {
		return "", newAuthErr(KindMissingHeader, nil)
	}

	fields := strings.Fields(vals[0])
	if len(fields) != 2 || !strings.EqualFold(fields[0], bearerScheme) {
		return "", newAuthErr(KindWrongAuthType, nil)
	}

	return fields[1], nil
}
