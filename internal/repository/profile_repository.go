package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	apperrors "quickcare/internal/errors"
	"quickcare/internal/model"
	"quickcare/internal/storage"
	"quickcare/internal/validation"
)

var patientProfileMessages = validation.Messages{
	"fullName": "Full name is required",
	"phone":    "Please enter a valid phone number",
}

var doctorProfileMessages = validation.Messages{
	"name":           "Name is required",
	"speciality":     "Please select a specialty",
	"email.required": "Email address is required",
	"email.mailbox":  "Please enter a valid email address",
	"phone":          "Please enter a valid phone number",
}

// ProfileRepository stores the singleton profile documents of a client.
type ProfileRepository interface {
	PatientProfile(ctx context.Context) model.PatientProfile
	SavePatientProfile(ctx context.Context, profile model.PatientProfile) error
	DoctorProfile(ctx context.Context) model.DoctorProfile
	SaveDoctorProfile(ctx context.Context, profile model.DoctorProfile) error
}

type profileRepository struct {
	store     storage.Store
	validator *validation.Validator
}

// NewProfileRepository creates a profile repository over the client store.
func NewProfileRepository(deps Deps) ProfileRepository {
	return &profileRepository{store: deps.Store, validator: deps.validator()}
}

func (r *profileRepository) PatientProfile(ctx context.Context) model.PatientProfile {
	return loadDocument(ctx, r.store, KeyPatientData, model.DefaultPatientProfile)
}

func (r *profileRepository) SavePatientProfile(ctx context.Context, profile model.PatientProfile) error {
	if err := r.validator.Check(profile.PersonalInfo, patientProfileMessages).ErrOrNil(); err != nil {
		return err
	}
	if profile.MemberSince == "" {
		profile.MemberSince = r.PatientProfile(ctx).MemberSince
	}
	return saveDocument(ctx, r.store, KeyPatientData, profile)
}

func (r *profileRepository) DoctorProfile(ctx context.Context) model.DoctorProfile {
	return loadDocument(ctx, r.store, KeyDoctorProfile, model.DefaultDoctorProfile)
}

func (r *profileRepository) SaveDoctorProfile(ctx context.Context, profile model.DoctorProfile) error {
	if err := r.validator.Check(profile, doctorProfileMessages).ErrOrNil(); err != nil {
		return err
	}
	return saveDocument(ctx, r.store, KeyDoctorProfile, profile)
}

// loadDocument returns the document under key. A missing or unreadable
// document is replaced by the default, which is stored for next time.
func loadDocument[T any](ctx context.Context, store storage.Store, key string, def func() T) T {
	log := logrus.WithField("document", key)
	raw, err := store.Get(ctx, key)
	if err == nil && len(raw) > 0 {
		var doc T
		decodeErr := json.Unmarshal(raw, &doc)
		if decodeErr == nil {
			return doc
		}
		log.WithError(fmt.Errorf("%w: %v", apperrors.ErrStoreCorrupt, decodeErr)).Warn("resetting stored document")
	}
	doc := def()
	if err := saveDocument(ctx, store, key, doc); err != nil {
		log.WithError(err).Warn("could not store default document")
	}
	return doc
}

func saveDocument[T any](ctx context.Context, store storage.Store, key string, doc T) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := store.Set(ctx, key, payload); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
