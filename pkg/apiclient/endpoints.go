package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Alijeyrad/clinic_console/internal/model"
)

const (
	pathLogin         = "/login"
	pathRegister      = "/register"
	pathDoctors       = "/doctors"
	pathPatients      = "/patients"
	pathAppointments  = "/appointments"
	pathDiagnoses     = "/diagnoses"
	pathPrescriptions = "/prescriptions"
)

func itemPath(collection string, id int64) string {
	return collection + "/" + strconv.FormatInt(id, 10)
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

// Login exchanges credentials for a bearer token. The client's own token
// source is not updated; that is the session store's job.
func (c *Client) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	var res model.AuthResponse
	err := c.Do(ctx, http.MethodPost, pathLogin, model.LoginRequest{Email: email, Password: password}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	var res model.AuthResponse
	if err := c.Do(ctx, http.MethodPost, pathRegister, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ---------------------------------------------------------------------------
// Collections
// ---------------------------------------------------------------------------

func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var res []T
	if err := c.Do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	if res == nil {
		res = []T{}
	}
	return res, nil
}

func send[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	var res T
	if err := c.Do(ctx, method, path, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	return list[model.Doctor](ctx, c, pathDoctors)
}

func (c *Client) GetDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	return send[model.Doctor](ctx, c, http.MethodGet, itemPath(pathDoctors, id), nil)
}

func (c *Client) CreateDoctor(ctx context.Context, in model.DoctorInput) (*model.Doctor, error) {
	return send[model.Doctor](ctx, c, http.MethodPost, pathDoctors, in)
}

func (c *Client) UpdateDoctor(ctx context.Context, id int64, in model.DoctorInput) (*model.Doctor, error) {
	return send[model.Doctor](ctx, c, http.MethodPatch, itemPath(pathDoctors, id), in)
}

func (c *Client) DeleteDoctor(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, itemPath(pathDoctors, id), nil, nil)
}

func (c *Client) ListPatients(ctx context.Context) ([]model.Patient, error) {
	return list[model.Patient](ctx, c, pathPatients)
}

func (c *Client) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	return send[model.Patient](ctx, c, http.MethodGet, itemPath(pathPatients, id), nil)
}

func (c *Client) CreatePatient(ctx context.Context, in model.PatientInput) (*model.Patient, error) {
	return send[model.Patient](ctx, c, http.MethodPost, pathPatients, in)
}

func (c *Client) UpdatePatient(ctx context.Context, id int64, in model.PatientInput) (*model.Patient, error) {
	return send[model.Patient](ctx, c, http.MethodPatch, itemPath(pathPatients, id), in)
}

func (c *Client) DeletePatient(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, itemPath(pathPatients, id), nil, nil)
}

// ListPatientAppointments fetches GET /patients/:id/appointments.
func (c *Client) ListPatientAppointments(ctx context.Context, patientID int64) ([]model.Appointment, error) {
	return list[model.Appointment](ctx, c, itemPath(pathPatients, patientID)+pathAppointments)
}

func (c *Client) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	return list[model.Appointment](ctx, c, pathAppointments)
}

func (c *Client) CreateAppointment(ctx context.Context, in model.AppointmentInput) (*model.Appointment, error) {
	return send[model.Appointment](ctx, c, http.MethodPost, pathAppointments, in)
}

func (c *Client) UpdateAppointment(ctx context.Context, id int64, in model.AppointmentInput) (*model.Appointment, error) {
	return send[model.Appointment](ctx, c, http.MethodPatch, itemPath(pathAppointments, id), in)
}

func (c *Client) DeleteAppointment(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, itemPath(pathAppointments, id), nil, nil)
}

func (c *Client) ListDiagnoses(ctx context.Context) ([]model.Diagnosis, error) {
	return list[model.Diagnosis](ctx, c, pathDiagnoses)
}

func (c *Client) CreateDiagnosis(ctx context.Context, in model.DiagnosisInput) (*model.Diagnosis, error) {
	return send[model.Diagnosis](ctx, c, http.MethodPost, pathDiagnoses, in)
}

func (c *Client) UpdateDiagnosis(ctx context.Context, id int64, in model.DiagnosisInput) (*model.Diagnosis, error) {
	return send[model.Diagnosis](ctx, c, http.MethodPatch, itemPath(pathDiagnoses, id), in)
}

func (c *Client) DeleteDiagnosis(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, itemPath(pathDiagnoses, id), nil, nil)
}

func (c *Client) ListPrescriptions(ctx context.Context) ([]model.Prescription, error) {
	return list[model.Prescription](ctx, c, pathPrescriptions)
}

func (c *Client) CreatePrescription(ctx context.Context, in model.PrescriptionInput) (*model.Prescription, error) {
	return send[model.Prescription](ctx, c, http.MethodPost, pathPrescriptions, in)
}

func (c *Client) UpdatePrescription(ctx context.Context, id int64, in model.PrescriptionInput) (*model.Prescription, error) {
	return send[model.Prescription](ctx, c, http.MethodPatch, itemPath(pathPrescriptions, id), in)
}

func (c *Client) DeletePrescription(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, itemPath(pathPrescriptions, id), nil, nil)
}
