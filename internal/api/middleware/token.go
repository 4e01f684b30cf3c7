package middleware

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens issues and checks the bearer tokens handed out on login. A token
// names the user it was issued to; it does not replace the session record.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens signs with secret. An empty secret is replaced by a random one,
// so tokens then stop working when the process exits.
func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate token secret: %w", err)
		}
	}
	return &Tokens{secret: key, ttl: ttl}, nil
}

// Issue returns a signed token for uid and its expiry.
func (t *Tokens) Issue(uid string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(t.ttl)
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   uid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := tkn.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Subject verifies raw and returns the uid it was issued to.
func (t *Tokens) Subject(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if !tkn.Valid || claims.Subject == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Subject, nil
}
