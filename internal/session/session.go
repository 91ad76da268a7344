// Package session issues and checks the signed, expiring tokens carried in
// the admin session cookie.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "trapbite"

var ErrInvalidToken = errors.New("invalid session token")

type Issuer interface {
	Issue(subject string) (token string, expires time.Time, err error)
	Verify(token string) (subject string, err error)
	// Revoke makes a still-valid token fail Verify until it expires.
	Revoke(token string) error
}

// JWTIssuer signs HS256 tokens with a shared secret.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      *sync.Mutex
	revoked map[string]time.Time // token id -> expiry
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		mu:      &sync.Mutex{},
		revoked: map[string]time.Time{},
	}
}

// WithClock swaps the time source; tests use it to step past expiry.
func (j *JWTIssuer) WithClock(now func() time.Time) *JWTIssuer {
	cp := *j
	cp.now = now
	return &cp
}

func (j *JWTIssuer) Issue(subject string) (string, time.Time, error) {
	now := j.now()
	exp := now.Add(j.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, exp, nil
}

func (j *JWTIssuer) Verify(token string) (string, error) {
	claims, err := j.parse(token)
	if err != nil {
		return "", err
	}
	j.mu.Lock()
	_, gone := j.revoked[claims.ID]
	j.mu.Unlock()
	if gone {
		return "", fmt.Errorf("%w: revoked", ErrInvalidToken)
	}
	return claims.Subject, nil
}

// Revoke ignores tokens that are already invalid; there is nothing to do.
func (j *JWTIssuer) Revoke(token string) error {
	claims, err := j.parse(token)
	if err != nil {
		return nil
	}
	now := j.now()
	j.mu.Lock()
	defer j.mu.Unlock()
	for id, exp := range j.revoked {
		if now.After(exp) {
			delete(j.revoked, id)
		}
	}
	j.revoked[claims.ID] = claims.ExpiresAt.Time
	return nil
}

func (j *JWTIssuer) parse(token string) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
