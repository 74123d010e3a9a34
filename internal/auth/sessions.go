package auth

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrNotConfigured      = errors.New("admin credential not configured")
)

// Sessions checks the admin credential and tracks the tokens it issued.
// Tokens live in memory only and do not survive a restart.
type Sessions struct {
	password string
	hash     []byte
	ttl      time.Duration
	now      func() time.Time

	mu     sync.Mutex
	tokens map[string]time.Time
}

// NewSessions accepts either a plaintext password or a bcrypt hash; the hash
// wins when both are set. With neither, every login fails.
func NewSessions(password, passwordHash string, ttl time.Duration) *Sessions {
	s := &Sessions{
		password: password,
		ttl:      ttl,
		now:      time.Now,
		tokens:   make(map[string]time.Time),
	}
	if passwordHash != "" {
		s.hash = []byte(passwordHash)
	}
	return s
}

// Login issues a new session token when password matches.
func (s *Sessions) Login(password string) (string, time.Time, error) {
	if err := s.check(password); err != nil {
		return "", time.Time{}, err
	}

	token := uuid.NewString()
	expires := s.now().Add(s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.tokens[token] = expires
	return token, expires, nil
}

func (s *Sessions) Validate(token string) bool {
	if token == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	expires, ok := s.tokens[token]
	if !ok {
		return false
	}
	if !s.now().Before(expires) {
		delete(s.tokens, token)
		return false
	}
	return true
}

func (s *Sessions) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

func (s *Sessions) check(password string) error {
	switch {
	case len(s.hash) > 0:
		if bcrypt.CompareHashAndPassword(s.hash, []byte(password)) != nil {
			return ErrInvalidCredentials
		}
		return nil
	case s.password != "":
		if subtle.ConstantTimeCompare([]byte(s.password), []byte(password)) != 1 {
			return ErrInvalidCredentials
		}
		return nil
	default:
		return ErrNotConfigured
	}
}

func (s *Sessions) pruneLocked() {
	now := s.now()
	for token, expires := range s.tokens {
		if !now.Before(expires) {
			delete(s.tokens, token)
		}
	}
}
