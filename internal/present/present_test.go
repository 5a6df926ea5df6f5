package present

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Alijeyrad/clinic_console/internal/forms"
	"github.com/Alijeyrad/clinic_console/internal/model"
	"github.com/Alijeyrad/clinic_console/internal/session"
	"github.com/Alijeyrad/clinic_console/internal/views"
)

var utc = views.Formatter{DateLayout: "2006-01-02", DateTimeLayout: "2006-01-02 15:04", Location: time.UTC}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{" JSON ", FormatJSON, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
			}
		})
	}
}

func TestPrinter_ListTable(t *testing.T) {
	rows := []views.DoctorRow{
		{Doctor: model.Doctor{ID: 1, FirstName: "Jane", LastName: "Doe", Email: "jane@x.io", Phone: "2025550143", Specialisation: model.SpecialisationDermatologist}, Name: "Dr Jane Doe"},
	}
	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatTable).List(Doctors(rows), rows); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"ID", "NAME", "SPECIALISATION", "Dr Jane Doe", "jane@x.io", "Dermatologist"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter_ListEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatTable).List(Prescriptions(nil, utc), nil); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "No prescriptions found.\n" {
		t.Errorf("output = %q", got)
	}
}

func TestPrinter_ListJSON(t *testing.T) {
	rows := []views.AppointmentRow{
		{Appointment: model.Appointment{ID: 4, DoctorID: 1, PatientID: 2, AppointmentDate: 1700000000}, DoctorName: "Dr A B", PatientName: "C D"},
	}
	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatJSON).List(Appointments(rows, utc), rows); err != nil {
		t.Fatal(err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if len(decoded) != 1 || decoded[0]["doctor_name"] != "Dr A B" || decoded[0]["appointment_date"] != float64(1700000000) {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestTables_FormatDates(t *testing.T) {
	tests := []struct {
		name  string
		table Table
		want  []string
	}{
		{
			"patients",
			Patients([]views.PatientRow{{Patient: model.Patient{ID: 2, DateOfBirth: 631152000, Address: "1 Main St"}, Name: "Lin Ng"}}, utc),
			[]string{"2", "Lin Ng", "", "", "1990-01-01", "1 Main St"},
		},
		{
			"appointments",
			Appointments([]views.AppointmentRow{{Appointment: model.Appointment{ID: 3, AppointmentDate: 1700000000}, DoctorName: views.Unknown, PatientName: "Lin Ng"}}, utc),
			[]string{"3", "2023-11-14 22:13", views.Unknown, "Lin Ng", ""},
		},
		{
			"diagnoses",
			Diagnoses([]views.DiagnosisRow{{Diagnosis: model.Diagnosis{ID: 5, Condition: "Asthma", DiagnosisDate: 1700000000}, PatientName: "Lin Ng"}}, utc),
			[]string{"5", "Lin Ng", "Asthma", "2023-11-14"},
		},
		{
			"prescriptions",
			Prescriptions([]views.PrescriptionRow{{Prescription: model.Prescription{ID: 6, Medication: "Salbutamol", Dosage: "2 puffs", StartDate: 1700000000, EndDate: 1700086400}, PatientName: "Lin Ng", DoctorName: "Dr A B", DiagnosisCondition: "Asthma"}}, utc),
			[]string{"6", "Lin Ng", "Dr A B", "Asthma", "Salbutamol", "2 puffs", "2023-11-14", "2023-11-15"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.table.Rows) != 1 {
				t.Fatalf("rows = %d", len(tt.table.Rows))
			}
			got := tt.table.Rows[0]
			if len(got) != len(tt.table.Header) {
				t.Errorf("row has %d cells for %d columns", len(got), len(tt.table.Header))
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("row = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrinter_ValidationErrorSorted(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, FormatTable).ValidationError(&forms.ValidationError{Fields: map[string]string{
		"phone": "Phone number must be 10 digits",
		"email": "Invalid email address",
	}})
	want := "  email: Invalid email address\n  phone: Phone number must be 10 digits\n"
	if buf.String() != want {
		t.Errorf("output = %q", buf.String())
	}
}

func TestSessionHint(t *testing.T) {
	if !strings.Contains(SessionHint(session.EventEstablished), "doctors list") {
		t.Error("login hint should point at a list")
	}
	if !strings.Contains(SessionHint(session.EventEnded), "auth login") {
		t.Error("logout hint should point at login")
	}
}
