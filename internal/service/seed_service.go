package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "quickcare/internal/errors"
	"quickcare/internal/model"
	"quickcare/internal/repository"
)

// SeedResult counts what a seeding run added. Collections that already held
// data count zero.
type SeedResult struct {
	Doctors      int `json:"doctors"`
	Hospitals    int `json:"hospitals"`
	Appointments int `json:"appointments"`
	Patients     int `json:"patients"`
	Availability int `json:"availability"`
}

// SeedService fills empty collections with demo data.
type SeedService interface {
	SeedDemo(ctx context.Context) (*SeedResult, error)
	SeedDoctors(ctx context.Context, doctors []model.Doctor) (int, error)
}

type seedService struct {
	doctors      repository.DoctorRepository
	hospitals    repository.HospitalRepository
	appointments repository.AppointmentRepository
	patients     repository.DoctorPatientRepository
	availability repository.AvailabilityRepository
	loc          *time.Location
	now          func() time.Time
}

// NewSeedService creates a new seed service.
func NewSeedService(
	doctors repository.DoctorRepository,
	hospitals repository.HospitalRepository,
	appointments repository.AppointmentRepository,
	patients repository.DoctorPatientRepository,
	availability repository.AvailabilityRepository,
	loc *time.Location,
	now func() time.Time,
) SeedService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &seedService{
		doctors:      doctors,
		hospitals:    hospitals,
		appointments: appointments,
		patients:     patients,
		availability: availability,
		loc:          loc,
		now:          now,
	}
}

// SeedDemo seeds every empty collection. Running it twice adds nothing.
func (s *seedService) SeedDemo(ctx context.Context) (*SeedResult, error) {
	today := s.now().In(s.loc)
	res := &SeedResult{}
	var err error

	if res.Doctors, err = s.doctors.SeedIfEmpty(ctx, DemoDoctors()); err != nil {
		return nil, err
	}
	if res.Hospitals, err = s.hospitals.SeedIfEmpty(ctx, DemoHospitals()); err != nil {
		return nil, err
	}
	if res.Appointments, err = s.appointments.SeedIfEmpty(ctx, DemoAppointments(today)); err != nil {
		return nil, err
	}
	if res.Patients, err = s.patients.SeedIfEmpty(ctx, DemoDoctorPatients()); err != nil {
		return nil, err
	}
	if len(s.availability.List(ctx)) == 0 {
		for _, slot := range DemoAvailability(today) {
			if err := s.availability.Create(ctx, &slot); err != nil {
				return nil, fmt.Errorf("seed availability: %w", err)
			}
			res.Availability++
		}
	}

	logrus.WithFields(logrus.Fields{
		"doctors":      res.Doctors,
		"hospitals":    res.Hospitals,
		"appointments": res.Appointments,
		"patients":     res.Patients,
		"availability": res.Availability,
	}).Info("demo data seeded")
	return res, nil
}

// SeedDoctors adds doctors from an external source one by one. Invalid or
// duplicate entries are skipped.
func (s *seedService) SeedDoctors(ctx context.Context, doctors []model.Doctor) (int, error) {
	count := 0
	for i := range doctors {
		d := doctors[i]
		if err := s.doctors.Create(ctx, &d); err != nil {
			var verr *apperrors.ValidationError
			if !errors.As(err, &verr) {
				return count, err
			}
			logrus.WithFields(logrus.Fields{
				"email": d.Email,
				"error": verr.Error(),
			}).Warn("skipping doctor")
			continue
		}
		count++
	}
	return count, nil
}
