package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Alijeyrad/clinic_console/internal/model"
	"github.com/Alijeyrad/clinic_console/pkg/reqctx"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/", UserAgent: "clinic-test", Timeout: 5 * time.Second}, nil)
}

func TestDo_AttachesHeaders(t *testing.T) {
	var got http.Header
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode([]model.Doctor{{ID: 1, FirstName: "Ada"}})
	}).WithTokenSource(staticToken("tok-1"))

	meta := reqctx.NewRequestMeta("doctors list")
	ctx := reqctx.WithRequestMeta(context.Background(), meta)

	doctors, err := c.ListDoctors(ctx)
	if err != nil {
		t.Fatalf("ListDoctors() error = %v", err)
	}
	if len(doctors) != 1 || doctors[0].FirstName != "Ada" {
		t.Fatalf("unexpected doctors %+v", doctors)
	}
	if gotPath != "/doctors" {
		t.Errorf("expected /doctors, got %s", gotPath)
	}
	if got.Get("Authorization") != "Bearer tok-1" {
		t.Errorf("unexpected Authorization %q", got.Get("Authorization"))
	}
	if got.Get("X-Request-Id") != meta.RequestID {
		t.Errorf("expected request id %s, got %q", meta.RequestID, got.Get("X-Request-Id"))
	}
	if got.Get("User-Agent") != "clinic-test" {
		t.Errorf("unexpected user agent %q", got.Get("User-Agent"))
	}
}

func TestDo_NoTokenWithoutSource(t *testing.T) {
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(model.AuthResponse{Token: "abc"})
	})

	res, err := c.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Token != "abc" {
		t.Errorf("unexpected token %q", res.Token)
	}
	if auth != "" {
		t.Errorf("login must not carry a bearer token, got %q", auth)
	}
}

func TestDo_SendsBody(t *testing.T) {
	var body model.DoctorInput
	var method, path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(model.Doctor{ID: 7, FirstName: body.FirstName})
	})

	in := model.DoctorInput{FirstName: "Ada", LastName: "Byron", Email: "a@b.com", Phone: "5551234567", Specialisation: model.SpecialisationPodiatrist}
	d, err := c.UpdateDoctor(context.Background(), 7, in)
	if err != nil {
		t.Fatalf("UpdateDoctor() error = %v", err)
	}
	if method != http.MethodPatch || path != "/doctors/7" {
		t.Errorf("unexpected request %s %s", method, path)
	}
	if body != in {
		t.Errorf("server received %+v", body)
	}
	if d.ID != 7 {
		t.Errorf("unexpected id %d", d.ID)
	}
}

func TestDo_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"error key", http.StatusConflict, `{"error":"Email already in use"}`, "Email already in use"},
		{"message key", http.StatusBadRequest, `{"message":"invalid phone"}`, "invalid phone"},
		{"plain text", http.StatusInternalServerError, "boom", "boom"},
		{"empty body", http.StatusNotFound, "", "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := c.DeleteDoctor(context.Background(), 1)
			e, ok := AsError(err)
			if !ok {
				t.Fatalf("expected *Error, got %v", err)
			}
			if e.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", e.StatusCode, tt.status)
			}
			if e.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", e.Message, tt.wantMessage)
			}
			if Message(err, "fallback") != tt.wantMessage {
				t.Errorf("Message() helper = %q", Message(err, "fallback"))
			}
		})
	}
}

func TestDo_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(Config{BaseURL: url}, nil)
	_, err := c.ListPatients(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if StatusCode(err) != 0 {
		t.Errorf("expected no status for network error, got %d", StatusCode(err))
	}
	if got := Message(err, "Something went wrong"); got != "Something went wrong" {
		t.Errorf("expected fallback message, got %q", got)
	}
	var e *Error
	if !errors.As(err, &e) || e.Unwrap() == nil {
		t.Error("expected wrapped transport error")
	}
}

func TestHelpers(t *testing.T) {
	notFound := &Error{StatusCode: http.StatusNotFound}
	if !IsNotFound(notFound) || IsConflict(notFound) {
		t.Error("IsNotFound mismatch")
	}
	if !IsUnauthorized(&Error{StatusCode: http.StatusUnauthorized}) {
		t.Error("IsUnauthorized mismatch")
	}
	if StatusCode(errors.New("plain")) != 0 {
		t.Error("plain error has no status")
	}
}

func TestListPatientAppointmentsPath(t *testing.T) {
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte("null"))
	})

	appts, err := c.ListPatientAppointments(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListPatientAppointments() error = %v", err)
	}
	if path != "/patients/42/appointments" {
		t.Errorf("unexpected path %s", path)
	}
	if appts == nil || len(appts) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", appts)
	}
}
