// Package auth provides local inspection of the bearer token issued by the
// GrociDish API. The token is opaque to most of the client; the one thing we
// read out of it is the expiry claim, so a restored session can be discarded
// without a doomed network round trip. Signature verification stays
// server-side.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry returns the exp claim of a JWT bearer token. ok is false when
// the token is not a parseable JWT or carries no expiry, in which case the
// caller should treat the token as valid-until-rejected.
func TokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	_, _, err := parser.ParseUnverified(token, claims)
	if err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}

// TokenExpired reports whether a JWT bearer token has an expiry claim in the
// past. Tokens without a readable expiry are never reported as expired.
func TokenExpired(token string, now time.Time) bool {
	exp, ok := TokenExpiry(token)
	if !ok {
		return false
	}
	return now.After(exp)
}
