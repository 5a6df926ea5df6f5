// Package views keeps the denormalized list behind each screen. A view
// loads its own collection plus the sibling collections it needs to turn
// foreign keys into names, then patches that projection in place as forms
// report creates and updates, without fetching the list again.
package views

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/Alijeyrad/clinic_console/config"
	"github.com/Alijeyrad/clinic_console/internal/model"
	"github.com/Alijeyrad/clinic_console/internal/notify"
	"github.com/Alijeyrad/clinic_console/pkg/apiclient"
)

// Unknown is shown for a foreign key that no loaded sibling matches.
const Unknown = "Unknown"

var (
	ErrNotFound       = errors.New("row not found")
	ErrDeleteNotArmed = errors.New("delete was not requested for this row")
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// API is the read and delete half of the REST client. *apiclient.Client
// satisfies it.
type API interface {
	ListDoctors(ctx context.Context) ([]model.Doctor, error)
	ListPatients(ctx context.Context) ([]model.Patient, error)
	GetPatient(ctx context.Context, id int64) (*model.Patient, error)
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	ListPatientAppointments(ctx context.Context, patientID int64) ([]model.Appointment, error)
	ListDiagnoses(ctx context.Context) ([]model.Diagnosis, error)
	ListPrescriptions(ctx context.Context) ([]model.Prescription, error)

	DeleteDoctor(ctx context.Context, id int64) error
	DeletePatient(ctx context.Context, id int64) error
	DeleteAppointment(ctx context.Context, id int64) error
	DeleteDiagnosis(ctx context.Context, id int64) error
	DeletePrescription(ctx context.Context, id int64) error
}

type Deps struct {
	API       API
	Notifier  notify.Notifier
	Formatter Formatter
	Logger    *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Notifier == nil {
		d.Notifier = notify.Discard{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Formatter.DateLayout == "" {
		d.Formatter = NewFormatter(config.DisplayConfig{})
	}
	return d
}

// ---------------------------------------------------------------------------
// Formatter
// ---------------------------------------------------------------------------

// Formatter renders unix-second timestamps for display and search.
type Formatter struct {
	DateLayout     string
	DateTimeLayout string
	Location       *time.Location
}

func NewFormatter(cfg config.DisplayConfig) Formatter {
	f := Formatter{
		DateLayout:     cfg.DateFormat,
		DateTimeLayout: cfg.DateTimeFormat,
		Location:       time.Local,
	}
	if f.DateLayout == "" {
		f.DateLayout = time.DateOnly
	}
	if f.DateTimeLayout == "" {
		f.DateTimeLayout = "2006-01-02 15:04"
	}
	return f
}

func (f Formatter) Date(unix int64) string {
	return f.format(unix, f.DateLayout)
}

func (f Formatter) DateTime(unix int64) string {
	return f.format(unix, f.DateTimeLayout)
}

// Timestamp renders a server-managed timestamp such as created_at.
func (f Formatter) Timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.location()).Format(f.DateTimeLayout)
}

// ParseDate reads a date typed in DateLayout, the inverse of Date.
func (f Formatter) ParseDate(s string) (int64, error) {
	return f.parse(s, f.DateLayout)
}

func (f Formatter) ParseDateTime(s string) (int64, error) {
	return f.parse(s, f.DateTimeLayout)
}

func (f Formatter) parse(s, layout string) (int64, error) {
	t, err := time.ParseInLocation(layout, strings.TrimSpace(s), f.location())
	if err != nil {
		return 0, fmt.Errorf("%q does not match the layout %s", s, layout)
	}
	return t.Unix(), nil
}

func (f Formatter) format(unix int64, layout string) string {
	if unix == 0 {
		return ""
	}
	return time.Unix(unix, 0).In(f.location()).Format(layout)
}

func (f Formatter) location() *time.Location {
	if f.Location == nil {
		return time.Local
	}
	return f.Location
}

// ---------------------------------------------------------------------------
// Shared view machinery
// ---------------------------------------------------------------------------

// listView holds what every view has in common: the row collection, the
// load state and the per-row delete confirmation.
type listView[R any] struct {
	deps   Deps
	plural string
	noun   string
	rows   *Collection[R]
	fields func(R) []string
	del    func(ctx context.Context, id int64) error

	mu    sync.Mutex
	state State
	err   error
	armed map[int64]bool
}

func newListView[R any](deps Deps, noun, plural string, rows *Collection[R], fields func(R) []string, del func(context.Context, int64) error) listView[R] {
	return listView[R]{
		deps:   deps,
		noun:   noun,
		plural: plural,
		rows:   rows,
		fields: fields,
		del:    del,
		armed:  make(map[int64]bool),
	}
}

func (v *listView[R]) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Err is the error of the last failed load.
func (v *listView[R]) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *listView[R]) Loading() bool { return v.State() == StateLoading }

// Rows returns the full projection in display order.
func (v *listView[R]) Rows() []R { return v.rows.Rows() }

func (v *listView[R]) Len() int { return v.rows.Len() }

func (v *listView[R]) Row(id int64) (R, bool) { return v.rows.Get(id) }

// Filter matches query against each row's searchable fields.
func (v *listView[R]) Filter(query string) []R {
	return v.rows.Filter(query, v.fields)
}

// load runs fetch and, only when it succeeds, apply. A failure leaves the
// previous rows in place.
func (v *listView[R]) load(ctx context.Context, fetch func(ctx context.Context) (func(), error)) error {
	v.setState(StateLoading, nil)

	apply, err := fetch(ctx)
	if err != nil {
		v.setState(StateFailed, err)
		v.deps.Logger.WarnContext(ctx, "failed to load list", "view", v.plural, "error", err)
		v.deps.Notifier.Error(fmt.Sprintf("Failed to load %s: %s", v.plural, apiclient.Message(err, "network error")))
		return fmt.Errorf("load %s: %w", v.plural, err)
	}

	apply()
	v.setState(StateReady, nil)
	return nil
}

func (v *listView[R]) setState(s State, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = s
	v.err = err
}

// ---------------------------------------------------------------------------
// Two-step delete
// ---------------------------------------------------------------------------

// RequestDelete arms the delete confirmation for one row.
func (v *listView[R]) RequestDelete(id int64) error {
	if _, ok := v.rows.Get(id); !ok {
		return ErrNotFound
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.armed[id] = true
	return nil
}

// CancelDelete disarms the confirmation without deleting anything.
func (v *listView[R]) CancelDelete(id int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.armed, id)
}

func (v *listView[R]) DeleteArmed(id int64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.armed[id]
}

// ConfirmDelete deletes an armed row on the server and, once the server
// agrees, drops it from the projection. On failure the row stays.
func (v *listView[R]) ConfirmDelete(ctx context.Context, id int64) error {
	v.mu.Lock()
	armed := v.armed[id]
	delete(v.armed, id)
	v.mu.Unlock()
	if !armed {
		return ErrDeleteNotArmed
	}

	if err := v.del(ctx, id); err != nil {
		v.deps.Notifier.Error(apiclient.Message(err, fmt.Sprintf("Failed to delete %s", v.noun)))
		return fmt.Errorf("delete %s %d: %w", v.noun, id, err)
	}

	v.rows.Remove(id)
	v.deps.Notifier.Success(fmt.Sprintf("%s deleted successfully", capitalize(v.noun)))
	return nil
}

// ---------------------------------------------------------------------------
// Lookups
// ---------------------------------------------------------------------------

// lookup is a sibling collection indexed by id.
type lookup[T any] struct {
	mu   sync.RWMutex
	byID map[int64]T
	id   func(T) int64
}

func newLookup[T any](id func(T) int64) *lookup[T] {
	return &lookup[T]{byID: map[int64]T{}, id: id}
}

func (l *lookup[T]) set(items []T) {
	m := lo.KeyBy(items, l.id)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.byID = m
}

func (l *lookup[T]) put(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.byID[l.id(item)] = item
}

func (l *lookup[T]) get(id int64) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	item, ok := l.byID[id]
	return item, ok
}

func (l *lookup[T]) values() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := lo.Values(l.byID)
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(l.id(a), l.id(b)) })
	return out
}

// name resolves id through l, or returns Unknown.
func name[T any](l *lookup[T], id int64, display func(T) string) string {
	if item, ok := l.get(id); ok {
		return display(item)
	}
	return Unknown
}

func doctorKey(d model.Doctor) int64       { return d.ID }
func patientKey(p model.Patient) int64     { return p.ID }
func diagnosisKey(d model.Diagnosis) int64 { return d.ID }

func doctorName(d model.Doctor) string            { return d.DisplayName() }
func patientName(p model.Patient) string          { return p.DisplayName() }
func diagnosisCondition(d model.Diagnosis) string { return d.Condition }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
