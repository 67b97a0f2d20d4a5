package repository

import (
	"context"
	"fmt"
	"strings"

	apperrors "quickcare/internal/errors"
	"quickcare/internal/model"
	"quickcare/internal/validation"
)

var doctorMessages = validation.Messages{
	"name":           "Doctor name is required",
	"email.required": "Email address is required",
	"email.mailbox":  "Please enter a valid email address",
	"specialty":      "Please select a specialty",
	"experience":     "Please enter valid years of experience",
	"hospital":       "Please select a hospital",
	"city":           "Please select a city",
	"qualification":  "Qualification is required",
	"availability":   "Please select availability status",
	"fee":            "Please enter a valid consultation fee",
}

var doctorFieldOrder = []string{
	"name", "email", "specialty", "experience", "hospital", "city",
	"qualification", "availability", "fee",
}

// DoctorRepository defines doctor directory operations.
type DoctorRepository interface {
	List(ctx context.Context) []model.Doctor
	Filter(ctx context.Context, f DoctorFilter) []model.Doctor
	FindByID(ctx context.Context, id string) (*model.Doctor, error)
	Create(ctx context.Context, doctor *model.Doctor) error
	Update(ctx context.Context, id string, patch model.DoctorPatch) (*model.Doctor, error)
	Delete(ctx context.Context, id string) (bool, error)
	SeedIfEmpty(ctx context.Context, doctors []model.Doctor) (int, error)
}

type doctorRepository struct {
	items     *Collection[model.Doctor, *model.Doctor]
	validator *validation.Validator
}

// NewDoctorRepository loads the doctor directory from the store.
func NewDoctorRepository(ctx context.Context, deps Deps) DoctorRepository {
	return &doctorRepository{
		items:     NewCollection[model.Doctor](ctx, deps.Store, KeyDoctors, deps.Now),
		validator: deps.validator(),
	}
}

func (r *doctorRepository) List(_ context.Context) []model.Doctor {
	return r.items.List()
}

func (r *doctorRepository) Filter(_ context.Context, f DoctorFilter) []model.Doctor {
	return r.items.Filter(f.Match)
}

func (r *doctorRepository) FindByID(_ context.Context, id string) (*model.Doctor, error) {
	d, ok := r.items.Find(id)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &d, nil
}

// Create validates doctor, stores it and fills in its id and creation time.
func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	normalizeDoctor(doctor)
	if err := r.validate(doctor, ""); err != nil {
		return err
	}
	created, err := r.items.Insert(ctx, *doctor)
	if err != nil {
		return fmt.Errorf("create doctor: %w", err)
	}
	*doctor = created
	return nil
}

func (r *doctorRepository) Update(ctx context.Context, id string, patch model.DoctorPatch) (*model.Doctor, error) {
	updated, err := r.items.Update(ctx, id, func(d *model.Doctor) error {
		patch.Apply(d)
		normalizeDoctor(d)
		return r.validate(d, id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *doctorRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.items.Remove(ctx, id)
}

// SeedIfEmpty stores doctors when the directory has no entries yet.
func (r *doctorRepository) SeedIfEmpty(ctx context.Context, doctors []model.Doctor) (int, error) {
	if r.items.Len() > 0 {
		return 0, nil
	}
	if err := r.items.Reset(ctx, doctors); err != nil {
		return 0, fmt.Errorf("seed doctors: %w", err)
	}
	return len(doctors), nil
}

// validate checks field rules and email uniqueness. selfID is excluded from
// the uniqueness check so a record can be saved with its own email.
func (r *doctorRepository) validate(d *model.Doctor, selfID string) error {
	verr := r.validator.Check(d, doctorMessages)
	if !verr.Has("email") {
		dup := r.items.Any(func(other model.Doctor) bool {
			return other.ID != selfID && strings.EqualFold(other.Email, d.Email)
		})
		if dup {
			verr.Add("email", "A doctor with this email already exists")
		}
	}
	verr.OrderBy(doctorFieldOrder)
	return verr.ErrOrNil()
}

func normalizeDoctor(d *model.Doctor) {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Specialty = strings.TrimSpace(d.Specialty)
	d.Hospital = strings.TrimSpace(d.Hospital)
	d.City = strings.TrimSpace(d.City)
	d.Qualification = strings.TrimSpace(d.Qualification)
	d.Bio = strings.TrimSpace(d.Bio)
}
