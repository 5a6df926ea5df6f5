// Package session owns the bearer token: it exchanges credentials for a
// token, persists it, and tells observers when a session starts or ends.
// One Store is built per process and handed to whoever needs it.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Alijeyrad/clinic_console/internal/model"
	"github.com/Alijeyrad/clinic_console/pkg/apiclient"
)

const (
	fallbackLoginMessage    = "Login failed"
	fallbackRegisterMessage = "Registration failed"
)

type Event int

const (
	EventEstablished Event = iota + 1
	EventEnded
)

func (e Event) String() string {
	switch e {
	case EventEstablished:
		return "established"
	case EventEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Result is what login and register report back to the caller. Message is
// the server's own text on failure.
type Result struct {
	Success bool
	Message string
}

// Authenticator exchanges credentials for a token. *apiclient.Client
// satisfies it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*model.AuthResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
}

type Store struct {
	auth    Authenticator
	storage Storage
	logger  *slog.Logger

	mu        sync.RWMutex
	token     string
	listeners map[int]func(Event)
	nextID    int
}

func New(auth Authenticator, storage Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		auth:      auth,
		storage:   storage,
		logger:    logger,
		listeners: make(map[int]func(Event)),
	}
}

// Init reads the persisted token. Observers are not notified: a restored
// session was established in an earlier run.
func (s *Store) Init(ctx context.Context) error {
	token, err := s.storage.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Token returns the current bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Authenticated() bool { return s.Token() != "" }

// RequireToken returns ErrNotAuthenticated when there is no session.
func (s *Store) RequireToken() (string, error) {
	tok := s.Token()
	if tok == "" {
		return "", ErrNotAuthenticated
	}
	return tok, nil
}

// Subscribe registers fn for session transitions and returns a function
// that removes it.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// ---------------------------------------------------------------------------
// Login / Register
// ---------------------------------------------------------------------------

func (s *Store) Login(ctx context.Context, email, password string) Result {
	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.logger.DebugContext(ctx, "login failed", "email", email, "error", err)
		return Result{Message: apiclient.Message(err, fallbackLoginMessage)}
	}
	return s.establish(ctx, res)
}

func (s *Store) Register(ctx context.Context, email, password, firstName, lastName string) Result {
	res, err := s.auth.Register(ctx, model.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		s.logger.DebugContext(ctx, "register failed", "email", email, "error", err)
		return Result{Message: apiclient.Message(err, fallbackRegisterMessage)}
	}
	return s.establish(ctx, res)
}

func (s *Store) establish(ctx context.Context, res *model.AuthResponse) Result {
	if res == nil || res.Token == "" {
		return Result{Message: ErrEmptyToken.Error()}
	}
	if err := s.storage.Save(ctx, res.Token); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist session token", "error", err)
		return Result{Message: "could not save session: " + err.Error()}
	}

	s.mu.Lock()
	wasEmpty := s.token == ""
	s.token = res.Token
	s.mu.Unlock()

	if wasEmpty {
		s.emit(EventEstablished)
	}
	return Result{Success: true}
}

// ---------------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------------

// Logout drops the token from memory and storage. A storage failure is
// logged; the in-memory session ends regardless.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	hadToken := s.token != ""
	s.token = ""
	s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear session token", "error", err)
	}
	if hadToken {
		s.emit(EventEnded)
	}
}

func (s *Store) emit(e Event) {
	s.mu.RLock()
	fns := make([]func(Event), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(e)
	}
}
