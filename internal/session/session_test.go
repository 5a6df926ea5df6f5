package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Alijeyrad/clinic_console/internal/model"
	"github.com/Alijeyrad/clinic_console/pkg/apiclient"
)

type fakeAuth struct {
	token string
	err   error

	lastRegister model.RegisterRequest
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (*model.AuthResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.AuthResponse{Token: f.token}, nil
}

func (f *fakeAuth) Register(_ context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	f.lastRegister = req
	if f.err != nil {
		return nil, f.err
	}
	return &model.AuthResponse{Token: f.token}, nil
}

type failingStorage struct{ MemoryStorage }

func (*failingStorage) Clear(context.Context) error { return errors.New("disk gone") }

func TestLogin(t *testing.T) {
	tests := []struct {
		name        string
		auth        *fakeAuth
		wantSuccess bool
		wantMessage string
		wantToken   string
	}{
		{
			name:        "success",
			auth:        &fakeAuth{token: "tok"},
			wantSuccess: true,
			wantToken:   "tok",
		},
		{
			name:        "server message surfaced verbatim",
			auth:        &fakeAuth{err: &apiclient.Error{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}},
			wantMessage: "Invalid email or password",
		},
		{
			name:        "network failure uses fallback",
			auth:        &fakeAuth{err: &apiclient.Error{Message: "dial tcp: refused"}},
			wantMessage: fallbackLoginMessage,
		},
		{
			name:        "empty token",
			auth:        &fakeAuth{},
			wantMessage: ErrEmptyToken.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := &MemoryStorage{}
			s := New(tt.auth, storage, nil)

			res := s.Login(context.Background(), "a@b.com", "pw")
			if res.Success != tt.wantSuccess {
				t.Fatalf("Success = %v, want %v (%q)", res.Success, tt.wantSuccess, res.Message)
			}
			if res.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", res.Message, tt.wantMessage)
			}
			if s.Token() != tt.wantToken {
				t.Errorf("Token() = %q, want %q", s.Token(), tt.wantToken)
			}
			stored, _ := storage.Load(context.Background())
			if stored != tt.wantToken {
				t.Errorf("stored token = %q, want %q", stored, tt.wantToken)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	auth := &fakeAuth{token: "new"}
	s := New(auth, &MemoryStorage{}, nil)

	res := s.Register(context.Background(), "a@b.com", "pw", "Ada", "Byron")
	if !res.Success {
		t.Fatalf("Register() failed: %s", res.Message)
	}
	want := model.RegisterRequest{Email: "a@b.com", Password: "pw", FirstName: "Ada", LastName: "Byron"}
	if auth.lastRegister != want {
		t.Errorf("register payload = %+v", auth.lastRegister)
	}
	if s.Token() != "new" {
		t.Errorf("Token() = %q", s.Token())
	}
}

func TestEvents(t *testing.T) {
	s := New(&fakeAuth{token: "tok"}, &MemoryStorage{}, nil)

	var events []Event
	unsubscribe := s.Subscribe(func(e Event) { events = append(events, e) })

	s.Login(context.Background(), "a@b.com", "pw")
	// A second login while already authenticated is not a new session.
	s.Login(context.Background(), "a@b.com", "pw")
	s.Logout(context.Background())
	// Logging out twice ends nothing new.
	s.Logout(context.Background())

	if len(events) != 2 || events[0] != EventEstablished || events[1] != EventEnded {
		t.Fatalf("unexpected events %v", events)
	}

	unsubscribe()
	s.Login(context.Background(), "a@b.com", "pw")
	if len(events) != 2 {
		t.Errorf("unsubscribed listener still called: %v", events)
	}
}

func TestInitRestoresToken(t *testing.T) {
	storage := &MemoryStorage{}
	_ = storage.Save(context.Background(), "persisted")

	s := New(&fakeAuth{}, storage, nil)
	if s.Authenticated() {
		t.Fatal("expected no session before Init")
	}
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if tok, err := s.RequireToken(); err != nil || tok != "persisted" {
		t.Errorf("RequireToken() = %q, %v", tok, err)
	}
}

func TestLogoutIgnoresStorageFailure(t *testing.T) {
	storage := &failingStorage{}
	_ = storage.Save(context.Background(), "tok")

	s := New(&fakeAuth{}, storage, nil)
	_ = s.Init(context.Background())

	s.Logout(context.Background())
	if s.Authenticated() {
		t.Error("expected in-memory session cleared")
	}
	if _, err := s.RequireToken(); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("RequireToken() error = %v, want ErrNotAuthenticated", err)
	}
}
