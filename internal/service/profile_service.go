package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "quickcare/internal/errors"
	"quickcare/internal/model"
	"quickcare/internal/repository"
)

// ProfileService handles the profile pages and the doctor's practice data.
type ProfileService interface {
	PatientProfile(ctx context.Context) model.PatientProfile
	UpdatePatientProfile(ctx context.Context, info model.PersonalInfo) (*model.PatientProfile, error)
	DoctorProfile(ctx context.Context) model.DoctorProfile
	UpdateDoctorProfile(ctx context.Context, profile model.DoctorProfile) (*model.DoctorProfile, error)

	Availability(ctx context.Context) []model.AvailabilitySlot
	AddAvailability(ctx context.Context, slot *model.AvailabilitySlot) error
	UpdateAvailability(ctx context.Context, id string, slot model.AvailabilitySlot) (*model.AvailabilitySlot, error)
	RemoveAvailability(ctx context.Context, id string) error

	Patients(ctx context.Context, search, scope string) []model.DoctorPatient
	AddPatient(ctx context.Context, patient *model.DoctorPatient) error
}

type profileService struct {
	profiles     repository.ProfileRepository
	availability repository.AvailabilityRepository
	patients     repository.DoctorPatientRepository
	loc          *time.Location
	now          func() time.Time
}

// NewProfileService creates a new profile service.
func NewProfileService(
	profiles repository.ProfileRepository,
	availability repository.AvailabilityRepository,
	patients repository.DoctorPatientRepository,
	loc *time.Location,
	now func() time.Time,
) ProfileService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &profileService{
		profiles:     profiles,
		availability: availability,
		patients:     patients,
		loc:          loc,
		now:          now,
	}
}

func (s *profileService) PatientProfile(ctx context.Context) model.PatientProfile {
	return s.profiles.PatientProfile(ctx)
}

// UpdatePatientProfile replaces the personal details; the membership date
// is kept.
func (s *profileService) UpdatePatientProfile(ctx context.Context, info model.PersonalInfo) (*model.PatientProfile, error) {
	profile := s.profiles.PatientProfile(ctx)
	profile.PersonalInfo = info
	if err := s.profiles.SavePatientProfile(ctx, profile); err != nil {
		return nil, err
	}
	logrus.WithField("full_name", info.FullName).Info("patient profile updated")
	return &profile, nil
}

func (s *profileService) DoctorProfile(ctx context.Context) model.DoctorProfile {
	return s.profiles.DoctorProfile(ctx)
}

func (s *profileService) UpdateDoctorProfile(ctx context.Context, profile model.DoctorProfile) (*model.DoctorProfile, error) {
	if err := s.profiles.SaveDoctorProfile(ctx, profile); err != nil {
		return nil, err
	}
	logrus.WithField("email", profile.Email).Info("doctor profile updated")
	return &profile, nil
}

func (s *profileService) Availability(ctx context.Context) []model.AvailabilitySlot {
	return s.availability.List(ctx)
}

func (s *profileService) AddAvailability(ctx context.Context, slot *model.AvailabilitySlot) error {
	if err := s.availability.Create(ctx, slot); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"slot_id": slot.ID,
		"date":    slot.Date,
	}).Info("availability added")
	return nil
}

func (s *profileService) UpdateAvailability(ctx context.Context, id string, slot model.AvailabilitySlot) (*model.AvailabilitySlot, error) {
	updated, err := s.availability.Update(ctx, id, slot)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"slot_id": updated.ID,
		"date":    updated.Date,
	}).Info("availability updated")
	return updated, nil
}

func (s *profileService) RemoveAvailability(ctx context.Context, id string) error {
	removed, err := s.availability.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}
	if !removed {
		return apperrors.ErrNotFound
	}
	return nil
}

// Patients lists the doctor's patients. scope is "", "recent" or "upcoming".
func (s *profileService) Patients(ctx context.Context, search, scope string) []model.DoctorPatient {
	return s.patients.Filter(ctx, repository.PatientFilter{
		Search: search,
		Scope:  scope,
		Now:    s.now().In(s.loc),
	})
}

func (s *profileService) AddPatient(ctx context.Context, patient *model.DoctorPatient) error {
	return s.patients.Create(ctx, patient)
}
