package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"quickcare/internal/model"
	"quickcare/internal/validation"
)

var availabilityMessages = validation.Messages{
	"date":      "Please select a date",
	"startTime": "Please enter a valid start time",
	"endTime":   "Please enter a valid end time",
	"duration":  "Please enter a valid slot duration",
	"fee":       "Please enter a valid consultation fee",
}

var doctorPatientMessages = validation.Messages{
	"name":            "Patient name is required",
	"lastVisit":       "Please enter a valid last visit date",
	"nextAppointment": "Please enter a valid appointment date",
	"phone":           "Please enter a valid phone number",
	"age":             "Please enter a valid age",
}

// AvailabilityRepository stores the consultation windows a doctor opens.
type AvailabilityRepository interface {
	List(ctx context.Context) []model.AvailabilitySlot
	Create(ctx context.Context, slot *model.AvailabilitySlot) error
	Update(ctx context.Context, id string, slot model.AvailabilitySlot) (*model.AvailabilitySlot, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type availabilityRepository struct {
	items     *Collection[model.AvailabilitySlot, *model.AvailabilitySlot]
	validator *validation.Validator
}

// NewAvailabilityRepository loads the availability slots from the store.
func NewAvailabilityRepository(ctx context.Context, deps Deps) AvailabilityRepository {
	return &availabilityRepository{
		items:     NewCollection[model.AvailabilitySlot](ctx, deps.Store, KeyDoctorAvailability, deps.Now),
		validator: deps.validator(),
	}
}

// List returns the slots ordered by date and start time.
func (r *availabilityRepository) List(_ context.Context) []model.AvailabilitySlot {
	slots := r.items.List()
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return slots[i].StartTime < slots[j].StartTime
	})
	return slots
}

func (r *availabilityRepository) Create(ctx context.Context, slot *model.AvailabilitySlot) error {
	if err := r.validate(slot); err != nil {
		return err
	}
	created, err := r.items.Insert(ctx, *slot)
	if err != nil {
		return fmt.Errorf("create availability slot: %w", err)
	}
	*slot = created
	return nil
}

// Update replaces the window of slot id. Its id and timestamps are kept.
func (r *availabilityRepository) Update(ctx context.Context, id string, slot model.AvailabilitySlot) (*model.AvailabilitySlot, error) {
	if err := r.validate(&slot); err != nil {
		return nil, err
	}
	updated, err := r.items.Update(ctx, id, func(s *model.AvailabilitySlot) error {
		meta := s.Meta
		*s = slot
		s.Meta = meta
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *availabilityRepository) validate(slot *model.AvailabilitySlot) error {
	verr := r.validator.Check(slot, availabilityMessages)
	if !verr.Has("startTime") && !verr.Has("endTime") {
		start, _ := time.Parse("15:04", slot.StartTime)
		end, _ := time.Parse("15:04", slot.EndTime)
		if !end.After(start) {
			verr.Add("endTime", "End time must be after start time")
		}
	}
	verr.OrderBy([]string{"date", "startTime", "endTime", "duration", "fee"})
	return verr.ErrOrNil()
}

func (r *availabilityRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.items.Remove(ctx, id)
}

// DoctorPatientRepository stores the patient list shown on the doctor dashboard.
type DoctorPatientRepository interface {
	List(ctx context.Context) []model.DoctorPatient
	Filter(ctx context.Context, f PatientFilter) []model.DoctorPatient
	Create(ctx context.Context, patient *model.DoctorPatient) error
	SeedIfEmpty(ctx context.Context, patients []model.DoctorPatient) (int, error)
}

type doctorPatientRepository struct {
	items     *Collection[model.DoctorPatient, *model.DoctorPatient]
	validator *validation.Validator
}

// NewDoctorPatientRepository loads the doctor's patient list from the store.
func NewDoctorPatientRepository(ctx context.Context, deps Deps) DoctorPatientRepository {
	return &doctorPatientRepository{
		items:     NewCollection[model.DoctorPatient](ctx, deps.Store, KeyDoctorPatients, deps.Now),
		validator: deps.validator(),
	}
}

func (r *doctorPatientRepository) List(_ context.Context) []model.DoctorPatient {
	return r.items.List()
}

func (r *doctorPatientRepository) Filter(_ context.Context, f PatientFilter) []model.DoctorPatient {
	return r.items.Filter(f.Match)
}

func (r *doctorPatientRepository) Create(ctx context.Context, patient *model.DoctorPatient) error {
	if err := r.validator.Check(patient, doctorPatientMessages).ErrOrNil(); err != nil {
		return err
	}
	created, err := r.items.Insert(ctx, *patient)
	if err != nil {
		return fmt.Errorf("create doctor patient: %w", err)
	}
	*patient = created
	return nil
}

func (r *doctorPatientRepository) SeedIfEmpty(ctx context.Context, patients []model.DoctorPatient) (int, error) {
	if r.items.Len() > 0 {
		return 0, nil
	}
	if err := r.items.Reset(ctx, patients); err != nil {
		return 0, fmt.Errorf("seed doctor patients: %w", err)
	}
	return len(patients), nil
}
