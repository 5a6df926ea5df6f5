package http_test

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/Alijeyrad/clinic_console/internal/api/http/mocktest"
	"github.com/Alijeyrad/clinic_console/internal/model"
	"github.com/Alijeyrad/clinic_console/pkg/apiclient"
)

func doctorInput(email, phone string) model.DoctorInput {
	return model.DoctorInput{
		FirstName:      "Grace",
		LastName:       "Hopper",
		Email:          email,
		Phone:          phone,
		Specialisation: model.SpecialisationPsychiatrist,
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := mocktest.New(t)

	for _, path := range []string{"/livez", "/readyz"} {
		res, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d", path, res.StatusCode)
		}
	}
}

func TestAuthFlow(t *testing.T) {
	ctx := context.Background()
	srv := mocktest.New(t)
	api := srv.Client()

	reg, err := api.Register(ctx, model.RegisterRequest{
		Email: "nurse@example.com", Password: "longenough", FirstName: "Ann", LastName: "Lee",
	})
	if err != nil || reg.Token == "" {
		t.Fatalf("Register() = %+v, %v", reg, err)
	}

	_, err = api.Register(ctx, model.RegisterRequest{
		Email: "NURSE@example.com", Password: "longenough", FirstName: "Ann", LastName: "Lee",
	})
	if !apiclient.IsConflict(err) || apiclient.Message(err, "") != "Email already in use" {
		t.Errorf("duplicate Register() error = %v", err)
	}

	if _, err := api.Login(ctx, "nurse@example.com", "wrong-password"); !apiclient.IsUnauthorized(err) {
		t.Errorf("Login(wrong) error = %v, want 401", err)
	}

	login, err := api.Login(ctx, "nurse@example.com", "longenough")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if _, err := api.ListDoctors(ctx); !apiclient.IsUnauthorized(err) {
		t.Errorf("ListDoctors without token error = %v, want 401", err)
	}

	authed := api.WithTokenSource(mocktest.StaticToken(login.Token))
	if _, err := authed.ListDoctors(ctx); err != nil {
		t.Fatalf("ListDoctors with token: %v", err)
	}

	if err := authed.Do(ctx, http.MethodPost, "/logout", nil, nil); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := authed.ListDoctors(ctx); !apiclient.IsUnauthorized(err) {
		t.Errorf("ListDoctors after logout error = %v, want 401", err)
	}
}

func TestDoctorCRUD(t *testing.T) {
	ctx := context.Background()
	srv := mocktest.New(t)
	api := srv.AuthedClient(t)

	d, err := api.CreateDoctor(ctx, doctorInput("grace@navy.mil", "5551112222"))
	if err != nil {
		t.Fatalf("CreateDoctor() error = %v", err)
	}
	if d.ID == 0 || d.Email != "grace@navy.mil" {
		t.Fatalf("CreateDoctor() = %+v", d)
	}

	in := model.DoctorInputFrom(*d)
	in.LastName = "Murray"
	updated, err := api.UpdateDoctor(ctx, d.ID, in)
	if err != nil || updated.LastName != "Murray" {
		t.Fatalf("UpdateDoctor() = %+v, %v", updated, err)
	}

	got, err := api.GetDoctor(ctx, d.ID)
	if err != nil || got.LastName != "Murray" {
		t.Fatalf("GetDoctor() = %+v, %v", got, err)
	}

	if err := api.DeleteDoctor(ctx, d.ID); err != nil {
		t.Fatalf("DeleteDoctor() error = %v", err)
	}
	if _, err := api.GetDoctor(ctx, d.ID); !apiclient.IsNotFound(err) {
		t.Errorf("GetDoctor after delete error = %v, want 404", err)
	}

	list, err := api.ListDoctors(ctx)
	if err != nil || len(list) != 0 {
		t.Errorf("ListDoctors() = %v, %v", list, err)
	}
}

func TestDuplicateContactIsConflict(t *testing.T) {
	ctx := context.Background()
	srv := mocktest.New(t)
	api := srv.AuthedClient(t)

	if _, err := api.CreateDoctor(ctx, doctorInput("dup@example.com", "5550001111")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tests := []struct {
		name     string
		in       model.DoctorInput
		wantWord string
	}{
		{"email", doctorInput("dup@example.com", "5550002222"), "email"},
		{"phone", doctorInput("other@example.com", "5550001111"), "phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := api.CreateDoctor(ctx, tt.in)
			if !apiclient.IsConflict(err) {
				t.Fatalf("error = %v, want 409", err)
			}
			if msg := apiclient.Message(err, ""); !strings.Contains(msg, tt.wantWord) {
				t.Errorf("message %q does not mention %s", msg, tt.wantWord)
			}
		})
	}
}

func TestBadRequests(t *testing.T) {
	ctx := context.Background()
	srv := mocktest.New(t)
	api := srv.AuthedClient(t)

	tests := []struct {
		name string
		call func() error
	}{
		{"non numeric id", func() error {
			return api.Do(ctx, http.MethodGet, "/doctors/abc", nil, nil)
		}},
		{"unknown specialisation", func() error {
			in := doctorInput("x@example.com", "5551230000")
			in.Specialisation = "Astrologer"
			_, err := api.CreateDoctor(ctx, in)
			return err
		}},
		{"missing doctor reference", func() error {
			_, err := api.CreateAppointment(ctx, model.AppointmentInput{DoctorID: 99, PatientID: 1, AppointmentDate: 1700000000})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apiclient.StatusCode(tt.call()); got != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", got)
			}
		})
	}
}

func TestPatientAppointments(t *testing.T) {
	ctx := context.Background()
	srv := mocktest.New(t)
	api := srv.AuthedClient(t)

	d, err := api.CreateDoctor(ctx, doctorInput("doc@example.com", "5550003333"))
	if err != nil {
		t.Fatal(err)
	}
	var patients []*model.Patient
	for i, email := range []string{"p1@example.com", "p2@example.com"} {
		p, err := api.CreatePatient(ctx, model.PatientInput{
			FirstName: "P", LastName: "Q", Email: email, Phone: "555000444" + string(rune('0'+i)),
			DateOfBirth: 631152000, Address: "1 Main St",
		})
		if err != nil {
			t.Fatal(err)
		}
		patients = append(patients, p)
	}
	for _, p := range []*model.Patient{patients[0], patients[0], patients[1]} {
		if _, err := api.CreateAppointment(ctx, model.AppointmentInput{
			DoctorID: d.ID, PatientID: p.ID, AppointmentDate: 1700000000,
		}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := api.ListPatientAppointments(ctx, patients[0].ID)
	if err != nil {
		t.Fatalf("ListPatientAppointments() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d appointments, want 2", len(got))
	}
	for _, a := range got {
		if a.PatientID != patients[0].ID {
			t.Errorf("appointment %d belongs to patient %d", a.ID, a.PatientID)
		}
	}
}

func TestFaultsFireOnce(t *testing.T) {
	ctx := context.Background()
	srv := mocktest.New(t)
	api := srv.AuthedClient(t)

	d, err := api.CreateDoctor(ctx, doctorInput("f@example.com", "5550005555"))
	if err != nil {
		t.Fatal(err)
	}

	srv.Faults.Inject(http.MethodDelete, "/doctors", http.StatusInternalServerError, "database unavailable")
	err = api.DeleteDoctor(ctx, d.ID)
	if apiclient.StatusCode(err) != http.StatusInternalServerError || apiclient.Message(err, "") != "database unavailable" {
		t.Fatalf("faulted delete error = %v", err)
	}
	if srv.Faults.Pending() != 0 {
		t.Errorf("fault was not consumed")
	}
	if err := api.DeleteDoctor(ctx, d.ID); err != nil {
		t.Errorf("second delete error = %v", err)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := mocktest.New(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/livez", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if got := res.Header.Get("X-Request-Id"); got != "abc-123" {
		t.Errorf("X-Request-Id = %q", got)
	}
}

func TestAccessLogCarriesRequestID(t *testing.T) {
	// The access logger writes to the process stdout captured when the
	// app is built.
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	stdout := os.Stdout
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = stdout })

	srv := mocktest.New(t)
	os.Stdout = stdout

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/livez", nil)
	req.Header.Set("X-Request-Id", "log-req-7")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()

	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if line := string(out); !strings.Contains(line, "[req_id=log-req-7]") || !strings.Contains(line, "/livez") {
		t.Errorf("access log = %q", out)
	}
}
