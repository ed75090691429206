package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens are minted and validated by the upstream API; this side only
// inspects them. Claims are read without signature verification, which is
// safe because nothing here grants access based on them — expiry inspection
// merely schedules the next silent refresh.

// AccessTokenExpiry returns the exp claim of the given JWT.
func AccessTokenExpiry(tokenString string) (time.Time, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, errors.New("invalid token")
	}

	expiresAt, err := claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return time.Time{}, errors.New("token has no expiry")
	}
	return expiresAt.Time, nil
}

// TokenNeedsRefresh reports whether the token expires within the leeway
// window. Unparseable tokens report true so a refresh gets attempted rather
// than silently running with a broken credential.
func TokenNeedsRefresh(tokenString string, leeway time.Duration) bool {
	expiresAt, err := AccessTokenExpiry(tokenString)
	if err != nil {
		return true
	}
	return time.Until(expiresAt) <= leeway
}
