// Package token issues and verifies the signed session tokens carried in
// the auth cookie. Tokens are HS256 JWTs; the claims are a snapshot of
// the user at issuance time, not a live reference.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adsrikanth11/crud-testing/internal/user"
)

// Verification failure kinds. Callers branch on these to produce the
// right user-facing message, so they must stay distinct.
var (
	ErrExpired = errors.New("token has expired")
	ErrInvalid = errors.New("invalid token")
)

// Claims is the identity payload embedded in a session token.
type Claims struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     user.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a shared secret fixed at
// construction time.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec returns a codec signing with secret; ttl is the default
// token lifetime used by Issue.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the default token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue signs a token for u with the default TTL.
func (c *Codec) Issue(u *user.User) (string, error) {
	return c.IssueWithTTL(u, c.ttl)
}

// IssueWithTTL signs a token for u expiring after ttl. A zero or
// negative ttl produces a token that is already expired.
func (c *Codec) IssueWithTTL(u *user.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

// Verify decodes and validates a token, distinguishing three outcomes:
// valid (claims, nil), expired (nil, ErrExpired: signature good but past
// expiry), and invalid (nil, ErrInvalid: tampered or malformed).
func (c *Codec) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !tok.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}
