package incentive

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the exp claim of a bearer without verifying it; we hold no
// key for the service's tokens and only use this for display and warnings.
// ok is false for opaque or exp-less tokens.
func TokenExpiry(bearer string) (exp time.Time, ok bool) {
	if bearer == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(bearer, claims); err != nil {
		return time.Time{}, false
	}
	nd, err := claims.GetExpirationTime()
	if err != nil || nd == nil {
		return time.Time{}, false
	}
	return nd.Time, true
}

// TokenExpired reports whether the bearer's exp is before now. Tokens without a
// readable exp are treated as live.
func TokenExpired(bearer string, now time.Time) bool {
	exp, ok := TokenExpiry(bearer)
	return ok && !exp.After(now)
}
