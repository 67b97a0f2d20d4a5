package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	apperrors "quickcare/internal/errors"
	"quickcare/internal/model"
	"quickcare/internal/repository"
	"quickcare/internal/storage"
)

// Stats are the counters on the admin dashboards.
type Stats struct {
	TotalDoctors        int `json:"totalDoctors"`
	AvailableDoctors    int `json:"availableDoctors"`
	TotalHospitals      int `json:"totalHospitals"`
	VerifiedHospitals   int `json:"verifiedHospitals"`
	PendingHospitals    int `json:"pendingHospitals"`
	TotalAppointments   int `json:"totalAppointments"`
	PendingAppointments int `json:"pendingAppointments"`
}

// DirectoryService handles the admin doctor and hospital directory.
type DirectoryService interface {
	ListDoctors(ctx context.Context, filter repository.DoctorFilter) []model.Doctor
	GetDoctor(ctx context.Context, id string) (*model.Doctor, error)
	CreateDoctor(ctx context.Context, doctor *model.Doctor) error
	UpdateDoctor(ctx context.Context, id string, patch model.DoctorPatch) (*model.Doctor, error)
	DeleteDoctor(ctx context.Context, id string) error

	ListHospitals(ctx context.Context, filter repository.HospitalFilter) []model.Hospital
	GetHospital(ctx context.Context, id string) (*model.Hospital, error)
	CreateHospital(ctx context.Context, hospital *model.Hospital) error
	UpdateHospital(ctx context.Context, id string, patch model.HospitalPatch) (*model.Hospital, error)
	DeleteHospital(ctx context.Context, id string) error

	Stats(ctx context.Context) Stats
	ClearCache(ctx context.Context) error
}

type directoryService struct {
	doctors      repository.DoctorRepository
	hospitals    repository.HospitalRepository
	appointments repository.AppointmentRepository
	store        storage.Store
}

// NewDirectoryService creates a new directory service.
func NewDirectoryService(
	doctors repository.DoctorRepository,
	hospitals repository.HospitalRepository,
	appointments repository.AppointmentRepository,
	store storage.Store,
) DirectoryService {
	return &directoryService{
		doctors:      doctors,
		hospitals:    hospitals,
		appointments: appointments,
		store:        store,
	}
}

func (s *directoryService) ListDoctors(ctx context.Context, filter repository.DoctorFilter) []model.Doctor {
	return s.doctors.Filter(ctx, filter)
}

func (s *directoryService) GetDoctor(ctx context.Context, id string) (*model.Doctor, error) {
	return s.doctors.FindByID(ctx, id)
}

func (s *directoryService) CreateDoctor(ctx context.Context, doctor *model.Doctor) error {
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"doctor_id": doctor.ID,
		"email":     doctor.Email,
	}).Info("doctor added")
	return nil
}

func (s *directoryService) UpdateDoctor(ctx context.Context, id string, patch model.DoctorPatch) (*model.Doctor, error) {
	doctor, err := s.doctors.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	logrus.WithField("doctor_id", id).Info("doctor updated")
	return doctor, nil
}

func (s *directoryService) DeleteDoctor(ctx context.Context, id string) error {
	removed, err := s.doctors.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if !removed {
		return apperrors.ErrNotFound
	}
	logrus.WithField("doctor_id", id).Info("doctor deleted")
	return nil
}

func (s *directoryService) ListHospitals(ctx context.Context, filter repository.HospitalFilter) []model.Hospital {
	return s.hospitals.Filter(ctx, filter)
}

func (s *directoryService) GetHospital(ctx context.Context, id string) (*model.Hospital, error) {
	return s.hospitals.FindByID(ctx, id)
}

func (s *directoryService) CreateHospital(ctx context.Context, hospital *model.Hospital) error {
	if err := s.hospitals.Create(ctx, hospital); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"hospital_id": hospital.ID,
		"name":        hospital.Name,
	}).Info("hospital added")
	return nil
}

func (s *directoryService) UpdateHospital(ctx context.Context, id string, patch model.HospitalPatch) (*model.Hospital, error) {
	hospital, err := s.hospitals.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	logrus.WithField("hospital_id", id).Info("hospital updated")
	return hospital, nil
}

func (s *directoryService) DeleteHospital(ctx context.Context, id string) error {
	removed, err := s.hospitals.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete hospital: %w", err)
	}
	if !removed {
		return apperrors.ErrNotFound
	}
	logrus.WithField("hospital_id", id).Info("hospital removed")
	return nil
}

func (s *directoryService) Stats(ctx context.Context) Stats {
	var st Stats
	for _, d := range s.doctors.List(ctx) {
		st.TotalDoctors++
		if d.Availability == model.AvailabilityAvailable {
			st.AvailableDoctors++
		}
	}
	for _, h := range s.hospitals.List(ctx) {
		st.TotalHospitals++
		if h.Verified {
			st.VerifiedHospitals++
		} else {
			st.PendingHospitals++
		}
	}
	for _, a := range s.appointments.List(ctx) {
		st.TotalAppointments++
		if a.Status == model.AppointmentStatusPending {
			st.PendingAppointments++
		}
	}
	return st
}

// ClearCache drops the cached directory collections of the client. They
// are rebuilt empty on the next request.
func (s *directoryService) ClearCache(ctx context.Context) error {
	if err := s.store.Delete(ctx, repository.AdminCacheKeys...); err != nil {
		return fmt.Errorf("clear cached data: %w", err)
	}
	logrus.WithField("keys", repository.AdminCacheKeys).Info("cached directory data cleared")
	return nil
}
