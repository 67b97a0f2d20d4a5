package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quickcare/internal/model"
	"quickcare/internal/repository"
)

// MockDoctorRepository is a mock implementation of DoctorRepository.
type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) List(ctx context.Context) []model.Doctor {
	args := m.Called(ctx)
	return args.Get(0).([]model.Doctor)
}

func (m *MockDoctorRepository) Filter(ctx context.Context, f repository.DoctorFilter) []model.Doctor {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.Doctor)
}

func (m *MockDoctorRepository) FindByID(ctx context.Context, id string) (*model.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) Update(ctx context.Context, id string, patch model.DoctorPatch) (*model.Doctor, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDoctorRepository) SeedIfEmpty(ctx context.Context, doctors []model.Doctor) (int, error) {
	args := m.Called(ctx, doctors)
	return args.Int(0), args.Error(1)
}

// MockAppointmentRepository is a mock implementation of AppointmentRepository.
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) List(ctx context.Context) []model.Appointment {
	args := m.Called(ctx)
	return args.Get(0).([]model.Appointment)
}

func (m *MockAppointmentRepository) Filter(ctx context.Context, f repository.AppointmentFilter) []model.Appointment {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.Appointment)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) SetStatus(ctx context.Context, id string, status model.AppointmentStatus) (*model.Appointment, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) SeedIfEmpty(ctx context.Context, appointments []model.Appointment) (int, error) {
	args := m.Called(ctx, appointments)
	return args.Int(0), args.Error(1)
}
