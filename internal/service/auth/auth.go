// Package auth registers mock API users and issues opaque bearer tokens.
package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/Alijeyrad/clinic_console/pkg/util/codes"
	"github.com/Alijeyrad/clinic_console/pkg/util/password"
)

const minPasswordLength = 8

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type User struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (token string, err error)
	Login(ctx context.Context, email, password string) (token string, err error)
	Authenticate(ctx context.Context, token string) (*User, error)
	Revoke(ctx context.Context, token string)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type authService struct {
	params *password.Params

	mu       sync.RWMutex
	nextID   int64
	byEmail  map[string]*User
	sessions map[string]int64 // token -> user id
	byID     map[int64]*User
}

// New returns an empty user store. params tunes password hashing; nil
// uses password.DefaultParams.
func New(params *password.Params) Service {
	return &authService{
		params:   params,
		byEmail:  map[string]*User{},
		sessions: map[string]int64{},
		byID:     map[int64]*User{},
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func (s *authService) Register(_ context.Context, req RegisterRequest) (string, error) {
	email := normalizeEmail(req.Email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return "", ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return "", ErrNameRequired
	}

	hash, err := password.Hash(req.Password, s.params)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return "", ErrEmailAlreadyExists
	}
	s.nextID++
	u := &User{
		ID:           s.nextID,
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	s.byEmail[email] = u
	s.byID[u.ID] = u

	return s.issueLocked(u.ID)
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func (s *authService) Login(_ context.Context, email, pw string) (string, error) {
	s.mu.RLock()
	u, ok := s.byEmail[normalizeEmail(email)]
	s.mu.RUnlock()
	if !ok {
		return "", ErrInvalidCredentials
	}

	if err := password.Verify(u.PasswordHash, pw); err != nil {
		return "", ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(u.ID)
}

func (s *authService) issueLocked(userID int64) (string, error) {
	token, err := codes.GenerateBearerToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	s.sessions[token] = userID
	return token, nil
}

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

func (s *authService) Authenticate(_ context.Context, token string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.sessions[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	return s.byID[id], nil
}

func (s *authService) Revoke(_ context.Context, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
