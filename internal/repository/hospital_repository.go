package repository

import (
	"context"
	"fmt"
	"strings"

	apperrors "quickcare/internal/errors"
	"quickcare/internal/model"
	"quickcare/internal/validation"
)

var hospitalMessages = validation.Messages{
	"name":     "Hospital name is required",
	"type":     "Please select hospital type",
	"city":     "Please select a city",
	"phone":    "Please enter a valid phone number",
	"email":    "Please enter a valid email address",
	"capacity": "Please enter a valid capacity",
}

var hospitalFieldOrder = []string{"name", "type", "city", "phone", "email", "capacity"}

// HospitalRepository defines hospital directory operations.
type HospitalRepository interface {
	List(ctx context.Context) []model.Hospital
	Filter(ctx context.Context, f HospitalFilter) []model.Hospital
	FindByID(ctx context.Context, id string) (*model.Hospital, error)
	Create(ctx context.Context, hospital *model.Hospital) error
	Update(ctx context.Context, id string, patch model.HospitalPatch) (*model.Hospital, error)
	Delete(ctx context.Context, id string) (bool, error)
	SeedIfEmpty(ctx context.Context, hospitals []model.Hospital) (int, error)
}

type hospitalRepository struct {
	items     *Collection[model.Hospital, *model.Hospital]
	validator *validation.Validator
}

// NewHospitalRepository loads the hospital directory from the store.
func NewHospitalRepository(ctx context.Context, deps Deps) HospitalRepository {
	return &hospitalRepository{
		items:     NewCollection[model.Hospital](ctx, deps.Store, KeyHospitals, deps.Now),
		validator: deps.validator(),
	}
}

func (r *hospitalRepository) List(_ context.Context) []model.Hospital {
	return r.items.List()
}

func (r *hospitalRepository) Filter(_ context.Context, f HospitalFilter) []model.Hospital {
	return r.items.Filter(f.Match)
}

func (r *hospitalRepository) FindByID(_ context.Context, id string) (*model.Hospital, error) {
	h, ok := r.items.Find(id)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &h, nil
}

func (r *hospitalRepository) Create(ctx context.Context, hospital *model.Hospital) error {
	normalizeHospital(hospital)
	if err := r.validate(hospital, ""); err != nil {
		return err
	}
	created, err := r.items.Insert(ctx, *hospital)
	if err != nil {
		return fmt.Errorf("create hospital: %w", err)
	}
	*hospital = created
	return nil
}

func (r *hospitalRepository) Update(ctx context.Context, id string, patch model.HospitalPatch) (*model.Hospital, error) {
	updated, err := r.items.Update(ctx, id, func(h *model.Hospital) error {
		patch.Apply(h)
		normalizeHospital(h)
		return r.validate(h, id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *hospitalRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.items.Remove(ctx, id)
}

func (r *hospitalRepository) SeedIfEmpty(ctx context.Context, hospitals []model.Hospital) (int, error) {
	if r.items.Len() > 0 {
		return 0, nil
	}
	if err := r.items.Reset(ctx, hospitals); err != nil {
		return 0, fmt.Errorf("seed hospitals: %w", err)
	}
	return len(hospitals), nil
}

func (r *hospitalRepository) validate(h *model.Hospital, selfID string) error {
	verr := r.validator.Check(h, hospitalMessages)
	if !verr.Has("name") {
		dup := r.items.Any(func(other model.Hospital) bool {
			return other.ID != selfID && strings.EqualFold(other.Name, h.Name)
		})
		if dup {
			verr.Add("name", "A hospital with this name already exists")
		}
	}
	verr.OrderBy(hospitalFieldOrder)
	return verr.ErrOrNil()
}

func normalizeHospital(h *model.Hospital) {
	h.Name = strings.TrimSpace(h.Name)
	h.Type = strings.TrimSpace(h.Type)
	h.City = strings.TrimSpace(h.City)
	h.Address = strings.TrimSpace(h.Address)
	h.Phone = strings.TrimSpace(h.Phone)
	h.Email = strings.TrimSpace(h.Email)
	h.Description = strings.TrimSpace(h.Description)
}
