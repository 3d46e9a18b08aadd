package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the payload of a bearer token. The ID (jti) is the session
// token stored in the sessions table, so a signed token is only honoured
// while its session is live.
type TokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SignToken issues an HS256 token for a session.
func SignToken(secret string, userID, sessionToken uuid.UUID, role string, expiresAt time.Time) (string, error) {
	now := time.Now().UTC()
	claims := TokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionToken.String(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies the signature and expiry. Errors wrap the jwt
// sentinels (jwt.ErrTokenExpired, jwt.ErrTokenMalformed, ...).
func ParseToken(secret, raw string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	if _, err := uuid.Parse(claims.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", jwt.ErrTokenInvalidId, err)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("%w: %v", jwt.ErrTokenInvalidSubject, err)
	}

	return claims, nil
}

// SessionToken returns the session id carried in the claims.
func (c *TokenClaims) SessionToken() uuid.UUID {
	id, _ := uuid.Parse(c.ID)
	return id
}

// UserID returns the subject as a uuid.
func (c *TokenClaims) UserID() uuid.UUID {
	id, _ := uuid.Parse(c.Subject)
	return id
}
