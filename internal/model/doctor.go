package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Availability is a doctor's current booking status.
type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityBusy      Availability = "busy"
	AvailabilityOnLeave   Availability = "on_leave"
)

// Doctor is a directory entry managed by admins and browsed by patients.
type Doctor struct {
	Meta
	Name          string          `json:"name" validate:"required"`
	Email         string          `json:"email" validate:"required,mailbox"`
	Specialty     string          `json:"specialty" validate:"required"`
	Experience    int             `json:"experience" validate:"gte=0"`
	Hospital      string          `json:"hospital" validate:"required"`
	City          string          `json:"city" validate:"required"`
	Qualification string          `json:"qualification" validate:"required"`
	Availability  Availability    `json:"availability" validate:"required,oneof=available busy on_leave"`
	Bio           string          `json:"bio"`
	Fee           decimal.Decimal `json:"fee" validate:"gte=0"`
}

// DoctorPatch lists the fields an update may change. Nil fields are kept.
type DoctorPatch struct {
	Name          *string          `json:"name,omitempty"`
	Email         *string          `json:"email,omitempty"`
	Specialty     *string          `json:"specialty,omitempty"`
	Experience    *int             `json:"experience,omitempty"`
	Hospital      *string          `json:"hospital,omitempty"`
	City          *string          `json:"city,omitempty"`
	Qualification *string          `json:"qualification,omitempty"`
	Availability  *Availability    `json:"availability,omitempty"`
	Bio           *string          `json:"bio,omitempty"`
	Fee           *decimal.Decimal `json:"fee,omitempty"`
}

// Apply merges the patch into d.
func (p DoctorPatch) Apply(d *Doctor) {
	setString(&d.Name, p.Name)
	setString(&d.Email, p.Email)
	setString(&d.Specialty, p.Specialty)
	if p.Experience != nil {
		d.Experience = *p.Experience
	}
	setString(&d.Hospital, p.Hospital)
	setString(&d.City, p.City)
	setString(&d.Qualification, p.Qualification)
	if p.Availability != nil {
		d.Availability = *p.Availability
	}
	setString(&d.Bio, p.Bio)
	if p.Fee != nil {
		d.Fee = *p.Fee
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
