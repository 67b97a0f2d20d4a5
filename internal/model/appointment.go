package model

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// UnmarshalJSON accepts any casing, e.g. "Pending" or "CANCELLED".
func (s *AppointmentStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = AppointmentStatus(strings.ToLower(strings.TrimSpace(raw)))
	return nil
}

// Appointment is a booked consultation. The doctor fields are a snapshot
// taken at booking time and do not follow later directory edits.
type Appointment struct {
	Meta
	Date         string            `json:"date"`
	Time         string            `json:"time"`
	DoctorID     string            `json:"doctorId,omitempty"`
	Doctor       string            `json:"doctor"`
	DoctorEmail  string            `json:"doctorEmail,omitempty"`
	Hospital     string            `json:"hospital"`
	Specialty    string            `json:"specialty"`
	PatientEmail string            `json:"patientEmail"`
	PatientName  string            `json:"patientName,omitempty"`
	Status       AppointmentStatus `json:"status"`
	Reason       string            `json:"reason"`
	Fee          decimal.Decimal   `json:"fee"`
}
