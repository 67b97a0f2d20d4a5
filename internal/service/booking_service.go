package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	apperrors "quickcare/internal/errors"
	"quickcare/internal/model"
	"quickcare/internal/repository"
)

// DefaultReason is stored when the patient leaves the reason empty.
const DefaultReason = "General consultation"

// BookingRequest is what a patient submits from the booking form.
type BookingRequest struct {
	DoctorID string `json:"doctorId" validate:"required"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Reason   string `json:"reason"`
}

// BookingResult is the confirmation shown after a successful booking.
type BookingResult struct {
	Appointment     model.Appointment `json:"appointment"`
	Recommendations []string          `json:"recommendations"`
}

// EarningsPeriod sums the completed consultations of a period.
type EarningsPeriod struct {
	Amount        decimal.Decimal `json:"amount"`
	Consultations int             `json:"consultations"`
}

// Earnings is the doctor's income summary.
type Earnings struct {
	Today  EarningsPeriod `json:"today"`
	Weekly EarningsPeriod `json:"weekly"`
}

// BookingService handles appointment booking and status changes.
type BookingService interface {
	Book(ctx context.Context, sess *model.Session, req BookingRequest) (*BookingResult, error)
	Cancel(ctx context.Context, sess *model.Session, id string) (*model.Appointment, error)
	Advance(ctx context.Context, sess *model.Session, id string) (*model.Appointment, error)
	SetStatus(ctx context.Context, sess *model.Session, id string, status model.AppointmentStatus) (*model.Appointment, error)
	ListForViewer(ctx context.Context, sess *model.Session, filter repository.AppointmentFilter) []model.Appointment
	Earnings(ctx context.Context, doctorEmail string) Earnings
}

type bookingService struct {
	appointments repository.AppointmentRepository
	doctors      repository.DoctorRepository
	loc          *time.Location
	now          func() time.Time
}

// NewBookingService creates a new booking service. Booking dates and times
// are read in loc.
func NewBookingService(
	appointments repository.AppointmentRepository,
	doctors repository.DoctorRepository,
	loc *time.Location,
	now func() time.Time,
) BookingService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &bookingService{
		appointments: appointments,
		doctors:      doctors,
		loc:          loc,
		now:          now,
	}
}

// Book creates a pending appointment with the chosen doctor.
func (s *bookingService) Book(ctx context.Context, sess *model.Session, req BookingRequest) (*BookingResult, error) {
	date := strings.TrimSpace(req.Date)
	clock := strings.TrimSpace(req.Time)
	if date == "" || clock == "" {
		return nil, apperrors.ErrDateTimeRequired
	}

	at, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, s.loc)
	if err != nil {
		return nil, apperrors.NewValidationError("date", "Please enter a valid date and time")
	}
	if !at.After(s.now()) {
		return nil, apperrors.ErrBookingInPast
	}

	doctor, err := s.doctors.FindByID(ctx, req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("find doctor %q: %w", req.DoctorID, err)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = DefaultReason
	}

	appointment := &model.Appointment{
		Date:         date,
		Time:         clock,
		DoctorID:     doctor.ID,
		Doctor:       doctor.Name,
		DoctorEmail:  doctor.Email,
		Hospital:     doctor.Hospital,
		Specialty:    doctor.Specialty,
		PatientEmail: sess.Email,
		PatientName:  sess.DisplayName,
		Status:       model.AppointmentStatusPending,
		Reason:       reason,
		Fee:          doctor.Fee,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("book appointment: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"doctor_id":      doctor.ID,
		"patient":        sess.Email,
		"date":           date,
		"time":           clock,
	}).Info("appointment booked")

	return &BookingResult{
		Appointment:     *appointment,
		Recommendations: Recommendations(doctor.Specialty),
	}, nil
}

// Cancel lets a patient withdraw one of their own pending appointments.
func (s *bookingService) Cancel(ctx context.Context, sess *model.Session, id string) (*model.Appointment, error) {
	appointment, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(appointment.PatientEmail, sess.Email) {
		return nil, apperrors.ErrNotFound
	}
	if appointment.Status != model.AppointmentStatusPending {
		return nil, fmt.Errorf("cancel %s appointment: %w", appointment.Status, apperrors.ErrInvalidTransition)
	}
	return s.transition(ctx, appointment, model.AppointmentStatusCancelled)
}

// Advance moves a doctor's appointment one step forward:
// pending to confirmed, confirmed to completed.
func (s *bookingService) Advance(ctx context.Context, sess *model.Session, id string) (*model.Appointment, error) {
	appointment, err := s.doctorAppointment(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	var next model.AppointmentStatus
	switch appointment.Status {
	case model.AppointmentStatusPending:
		next = model.AppointmentStatusConfirmed
	case model.AppointmentStatusConfirmed:
		next = model.AppointmentStatusCompleted
	default:
		return nil, fmt.Errorf("advance %s appointment: %w", appointment.Status, apperrors.ErrInvalidTransition)
	}
	return s.transition(ctx, appointment, next)
}

// SetStatus cancels or completes a doctor's appointment that is still open.
func (s *bookingService) SetStatus(ctx context.Context, sess *model.Session, id string, status model.AppointmentStatus) (*model.Appointment, error) {
	if status != model.AppointmentStatusCancelled && status != model.AppointmentStatusCompleted {
		return nil, apperrors.NewValidationError("status", "Appointments can only be cancelled or completed")
	}
	appointment, err := s.doctorAppointment(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status.Terminal() {
		return nil, fmt.Errorf("%s appointment: %w", appointment.Status, apperrors.ErrInvalidTransition)
	}
	return s.transition(ctx, appointment, status)
}

// ListForViewer returns what the session may see: a patient their own
// appointments, a doctor theirs, an admin everything.
func (s *bookingService) ListForViewer(ctx context.Context, sess *model.Session, filter repository.AppointmentFilter) []model.Appointment {
	switch sess.Role {
	case model.RolePatient:
		filter.PatientEmail = sess.Email
	case model.RoleDoctor:
		filter.DoctorEmail = sess.Email
	}
	return s.appointments.Filter(ctx, filter)
}

// Earnings sums completed consultations of today and of the last seven
// days, today included.
func (s *bookingService) Earnings(ctx context.Context, doctorEmail string) Earnings {
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	weekStart := today.AddDate(0, 0, -6)

	out := Earnings{
		Today:  EarningsPeriod{Amount: decimal.Zero},
		Weekly: EarningsPeriod{Amount: decimal.Zero},
	}
	completed := s.appointments.Filter(ctx, repository.AppointmentFilter{
		Status:      model.AppointmentStatusCompleted,
		DoctorEmail: doctorEmail,
	})
	for _, a := range completed {
		day, err := time.ParseInLocation("2006-01-02", a.Date, s.loc)
		if err != nil || day.After(today) || day.Before(weekStart) {
			continue
		}
		out.Weekly.Amount = out.Weekly.Amount.Add(a.Fee)
		out.Weekly.Consultations++
		if day.Equal(today) {
			out.Today.Amount = out.Today.Amount.Add(a.Fee)
			out.Today.Consultations++
		}
	}
	return out
}

// doctorAppointment finds an appointment the doctor may act on.
func (s *bookingService) doctorAppointment(ctx context.Context, sess *model.Session, id string) (*model.Appointment, error) {
	appointment, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	visible := repository.AppointmentFilter{DoctorEmail: sess.Email}
	if !visible.Match(*appointment) {
		return nil, apperrors.ErrNotFound
	}
	return appointment, nil
}

func (s *bookingService) transition(ctx context.Context, appointment *model.Appointment, to model.AppointmentStatus) (*model.Appointment, error) {
	updated, err := s.appointments.SetStatus(ctx, appointment.ID, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update appointment status: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"from":           appointment.Status,
		"to":             to,
	}).Info("appointment status changed")
	return updated, nil
}
