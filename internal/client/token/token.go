// Package token reads claims out of the bearer token issued by the GreenSnap
// API. The client never verifies the signature; this is a trust-the-issuer
// read used to avoid a server round trip, not a security boundary.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload the backend embeds in issued tokens. Verified mirrors
// the account's OTP verification flag at issue time.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	Role     string `json:"role"`
}

// Decode parses the token's payload segment without checking the signature.
// Malformed tokens of any kind return ErrInvalidToken.
func Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	return claims, nil
}

// IsExpired reports whether the token's exp claim is in the past relative to
// now. Undecodable tokens and tokens without an exp claim count as expired.
func IsExpired(tokenString string, now time.Time) bool {
	claims, err := Decode(tokenString)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Time.Before(now)
}
