package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"trapbite/internal/session"
)

var ErrBadCreds = errors.New("invalid email or password")

// CredentialVerifier checks a login and names the subject it belongs to.
type CredentialVerifier interface {
	Verify(email, password string) (subject string, err error)
}

// AdminCredentials is the single configured administrator.
type AdminCredentials struct {
	email string
	hash  []byte
}

// NewAdminCredentials accepts either a bcrypt hash or a plaintext password,
// which is hashed at the given cost.
func NewAdminCredentials(email, password, hash string, cost int) (*AdminCredentials, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("admin email is empty")
	}
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("admin password hash: %w", err)
		}
		return &AdminCredentials{email: email, hash: []byte(hash)}, nil
	}
	if password == "" {
		return nil, errors.New("admin password is empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &AdminCredentials{email: email, hash: h}, nil
}

func (a *AdminCredentials) Verify(email, password string) (string, error) {
	emailOK := strings.ToLower(strings.TrimSpace(email)) == a.email
	// always pay for the bcrypt compare so a wrong email is not faster
	pwErr := bcrypt.CompareHashAndPassword(a.hash, []byte(password))
	if !emailOK || pwErr != nil {
		return "", ErrBadCreds
	}
	return a.email, nil
}

type AuthService struct {
	Creds    CredentialVerifier
	Sessions session.Issuer
}

func NewAuthService(creds CredentialVerifier, sessions session.Issuer) *AuthService {
	return &AuthService{Creds: creds, Sessions: sessions}
}

// Login returns a session token for valid credentials.
func (s *AuthService) Login(email, password string) (token string, expires time.Time, err error) {
	sub, err := s.Creds.Verify(email, password)
	if err != nil {
		return "", time.Time{}, err
	}
	return s.Sessions.Issue(sub)
}

func (s *AuthService) CurrentSubject(token string) (string, error) {
	return s.Sessions.Verify(token)
}

// Logout revokes the token so a copied cookie stops working as well.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.Sessions.Revoke(token)
}
