package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quickcare/internal/model"
	"quickcare/internal/repository"
	"quickcare/internal/storage"
)

func TestSeedService_SeedDemo(t *testing.T) {
	ctx := context.Background()
	deps := repository.Deps{Store: storage.NewMemoryStore(), Now: clock}
	availability := repository.NewAvailabilityRepository(ctx, deps)
	appointments := repository.NewAppointmentRepository(ctx, deps)
	svc := NewSeedService(
		repository.NewDoctorRepository(ctx, deps),
		repository.NewHospitalRepository(ctx, deps),
		appointments,
		repository.NewDoctorPatientRepository(ctx, deps),
		availability,
		nil,
		clock,
	)

	res, err := svc.SeedDemo(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SeedResult{Doctors: 5, Hospitals: 6, Appointments: 5, Patients: 4, Availability: 7}, res)

	slots := availability.List(ctx)
	assert.Equal(t, "2026-03-10", slots[0].Date)
	assert.Equal(t, "2026-03-16", slots[6].Date)
	for _, a := range appointments.List(ctx) {
		assert.Equal(t, "2026-03-10", a.Date)
	}

	again, err := svc.SeedDemo(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SeedResult{}, again)
}

func TestSeedService_SeedDoctors(t *testing.T) {
	ctx := context.Background()

	t.Run("skips invalid and duplicate entries", func(t *testing.T) {
		deps := repository.Deps{Store: storage.NewMemoryStore(), Now: clock}
		doctors := repository.NewDoctorRepository(ctx, deps)
		svc := NewSeedService(doctors, nil, nil, nil, nil, nil, clock)

		input := append(DemoDoctors(), DemoDoctors()[0], model.Doctor{Name: "No Email"})
		count, err := svc.SeedDoctors(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, 5, count)
		assert.Len(t, doctors.List(ctx), 5)
	})

	t.Run("stops on store failure", func(t *testing.T) {
		doctors := new(MockDoctorRepository)
		doctors.On("Create", mock.Anything, mock.AnythingOfType("*model.Doctor")).Return(errors.New("disk full")).Once()

		svc := NewSeedService(doctors, nil, nil, nil, nil, nil, clock)
		count, err := svc.SeedDoctors(ctx, DemoDoctors())
		assert.EqualError(t, err, "disk full")
		assert.Zero(t, count)
		doctors.AssertExpectations(t)
	})
}
