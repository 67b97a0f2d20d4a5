package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	apperrors "quickcare/internal/errors"
	"quickcare/internal/model"
	"quickcare/internal/storage"
)

// AppointmentRepository keeps every appointment of a client in one
// collection; patient and doctor views are filters over it.
type AppointmentRepository interface {
	List(ctx context.Context) []model.Appointment
	Filter(ctx context.Context, f AppointmentFilter) []model.Appointment
	FindByID(ctx context.Context, id string) (*model.Appointment, error)
	Create(ctx context.Context, appointment *model.Appointment) error
	SetStatus(ctx context.Context, id string, status model.AppointmentStatus) (*model.Appointment, error)
	SeedIfEmpty(ctx context.Context, appointments []model.Appointment) (int, error)
}

type appointmentRepository struct {
	items *Collection[model.Appointment, *model.Appointment]
}

// legacyAppointment is the shape of the per-view lists that preceded the
// unified collection. Doctor lists carried the visit type instead of a reason.
type legacyAppointment struct {
	model.Appointment
	Type string `json:"type"`
}

// NewAppointmentRepository loads the unified appointment collection and folds
// in any per-view lists left by older versions.
func NewAppointmentRepository(ctx context.Context, deps Deps) AppointmentRepository {
	r := &appointmentRepository{
		items: NewCollection[model.Appointment](ctx, deps.Store, KeyAppointments, deps.Now),
	}
	r.migrateLegacy(ctx, deps.Store)
	return r
}

func (r *appointmentRepository) migrateLegacy(ctx context.Context, store storage.Store) {
	log := logrus.WithField("collection", KeyAppointments)
	var legacy []model.Appointment
	for _, key := range []string{KeyPatientAppointments, KeyDoctorAppointments} {
		for _, old := range loadList[legacyAppointment](ctx, store, key, log.WithField("legacy_key", key)) {
			a := old.Appointment
			if a.Reason == "" {
				a.Reason = old.Type
			}
			if !a.Status.Valid() {
				a.Status = model.AppointmentStatusPending
			}
			legacy = append(legacy, a)
		}
	}
	if len(legacy) == 0 {
		return
	}

	merged := r.items.List()
	for _, a := range legacy {
		if _, exists := r.items.Find(a.ID); exists {
			a.ID = ""
		}
		merged = append(merged, a)
	}
	if err := r.items.Reset(ctx, merged); err != nil {
		log.WithError(err).Warn("could not migrate legacy appointments")
		return
	}
	if err := store.Delete(ctx, KeyPatientAppointments, KeyDoctorAppointments); err != nil {
		log.WithError(err).Warn("could not drop legacy appointment lists")
	}
	log.WithField("migrated", len(legacy)).Info("migrated legacy appointments")
}

func (r *appointmentRepository) List(_ context.Context) []model.Appointment {
	return r.items.List()
}

func (r *appointmentRepository) Filter(_ context.Context, f AppointmentFilter) []model.Appointment {
	return r.items.Filter(f.Match)
}

func (r *appointmentRepository) FindByID(_ context.Context, id string) (*model.Appointment, error) {
	a, ok := r.items.Find(id)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	appointment.Status = model.AppointmentStatus(strings.ToLower(string(appointment.Status)))
	if !appointment.Status.Valid() {
		return apperrors.NewValidationError("status", "Unknown appointment status")
	}
	created, err := r.items.Insert(ctx, *appointment)
	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	*appointment = created
	return nil
}

// SetStatus stores a new status. Transition rules belong to the caller.
func (r *appointmentRepository) SetStatus(ctx context.Context, id string, status model.AppointmentStatus) (*model.Appointment, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("status", "Unknown appointment status")
	}
	updated, err := r.items.Update(ctx, id, func(a *model.Appointment) error {
		a.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *appointmentRepository) SeedIfEmpty(ctx context.Context, appointments []model.Appointment) (int, error) {
	if r.items.Len() > 0 {
		return 0, nil
	}
	if err := r.items.Reset(ctx, appointments); err != nil {
		return 0, fmt.Errorf("seed appointments: %w", err)
	}
	return len(appointments), nil
}
