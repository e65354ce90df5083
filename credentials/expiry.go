package credentials

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ExpiresAt extracts the expiry claim from an access token without verifying
// its signature. The backend issues JWTs, but the token is treated as opaque
// everywhere else; this peek exists only so callers can report session state
// without a round trip. Returns ok=false for non-JWT tokens or tokens that
// carry no exp claim.
func ExpiresAt(accessToken string) (time.Time, bool) {
	if strings.TrimSpace(accessToken) == "" {
		return time.Time{}, false
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(accessToken, jwtlib.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the access token's exp claim has passed.
// A token with no readable expiry is never reported as expired; the server's
// 401 remains the source of truth.
func Expired(accessToken string, now time.Time) bool {
	exp, ok := ExpiresAt(accessToken)
	if !ok {
		return false
	}
	return now.After(exp)
}
