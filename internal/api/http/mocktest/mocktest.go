// Package mocktest runs the mock clinic API inside tests.
package mocktest

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3/middleware/adaptor"

	"github.com/Alijeyrad/clinic_console/config"
	mockhttp "github.com/Alijeyrad/clinic_console/internal/api/http"
	"github.com/Alijeyrad/clinic_console/internal/api/http/middleware"
	"github.com/Alijeyrad/clinic_console/internal/api/http/router"
	"github.com/Alijeyrad/clinic_console/internal/service/auth"
	"github.com/Alijeyrad/clinic_console/internal/service/clinic"
	"github.com/Alijeyrad/clinic_console/pkg/apiclient"
	"github.com/Alijeyrad/clinic_console/pkg/util/password"
)

const (
	Email    = "reception@example.com"
	Password = "correct horse battery"
)

type Server struct {
	URL    string
	Auth   auth.Service
	Clinic clinic.Service
	Faults *middleware.Faults
}

// New starts a mock API that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		Auth:   auth.New(&password.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}),
		Clinic: clinic.New(),
		Faults: middleware.NewFaults(),
	}

	cfg := &config.Config{}
	r := router.NewRouter(router.Params{
		Cfg:       cfg,
		AuthSvc:   s.Auth,
		ClinicSvc: s.Clinic,
		Faults:    s.Faults,
	})
	app := mockhttp.NewApp(cfg, r, nil, false)

	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	s.URL = srv.URL
	return s
}

// Client returns an API client without credentials.
func (s *Server) Client() *apiclient.Client {
	return apiclient.New(apiclient.Config{BaseURL: s.URL, UserAgent: "mocktest"}, nil)
}

// AuthedClient registers the default user and returns a client that sends
// its token.
func (s *Server) AuthedClient(t testing.TB) *apiclient.Client {
	t.Helper()
	token, err := s.Auth.Register(context.Background(), auth.RegisterRequest{
		Email:     Email,
		Password:  Password,
		FirstName: "Front",
		LastName:  "Desk",
	})
	if err != nil {
		t.Fatalf("register default user: %v", err)
	}
	return s.Client().WithTokenSource(StaticToken(token))
}

// StaticToken is a TokenSource that never changes.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }
