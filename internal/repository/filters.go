package repository

import (
	"strings"
	"time"

	"quickcare/internal/model"
)

const dateLayout = "2006-01-02"

// DoctorFilter narrows the doctor directory. Empty criteria match everything.
type DoctorFilter struct {
	Search       string
	Specialty    string
	City         string
	Availability string
}

// Match reports whether d satisfies every criterion.
func (f DoctorFilter) Match(d model.Doctor) bool {
	if q := normalize(f.Search); q != "" {
		if !containsAny(q, d.Name, d.Email, d.Qualification) {
			return false
		}
	}
	return equalOrEmpty(f.Specialty, d.Specialty) &&
		equalOrEmpty(f.City, d.City) &&
		equalOrEmpty(f.Availability, string(d.Availability))
}

// HospitalFilter narrows the hospital directory. Empty criteria match everything.
type HospitalFilter struct {
	Search   string
	Type     string
	City     string
	Verified *bool
}

// Match reports whether h satisfies every criterion.
func (f HospitalFilter) Match(h model.Hospital) bool {
	if q := normalize(f.Search); q != "" {
		if !containsAny(q, h.Name, h.Type, h.City, h.Address) {
			return false
		}
	}
	if f.Verified != nil && *f.Verified != h.Verified {
		return false
	}
	return equalOrEmpty(f.Type, h.Type) && equalOrEmpty(f.City, h.City)
}

// AppointmentFilter narrows appointments. An appointment without a doctor
// email predates doctor assignment and matches any DoctorEmail.
type AppointmentFilter struct {
	Status       model.AppointmentStatus
	Date         string
	PatientEmail string
	DoctorEmail  string
}

// Match reports whether a satisfies every criterion.
func (f AppointmentFilter) Match(a model.Appointment) bool {
	if f.Status != "" && !strings.EqualFold(string(f.Status), string(a.Status)) {
		return false
	}
	if f.Date != "" && f.Date != a.Date {
		return false
	}
	if !equalOrEmpty(f.PatientEmail, a.PatientEmail) {
		return false
	}
	if f.DoctorEmail != "" && a.DoctorEmail != "" && !strings.EqualFold(f.DoctorEmail, a.DoctorEmail) {
		return false
	}
	return true
}

// Patient list scopes.
const (
	PatientScopeAll      = ""
	PatientScopeRecent   = "recent"
	PatientScopeUpcoming = "upcoming"
)

// PatientFilter narrows a doctor's patient list.
type PatientFilter struct {
	Search string
	Scope  string
	Now    time.Time
}

// Match reports whether p satisfies every criterion. Recent means a last
// visit within seven days; upcoming means a next appointment today or later.
func (f PatientFilter) Match(p model.DoctorPatient) bool {
	if q := normalize(f.Search); q != "" {
		if !containsAny(q, p.Name, p.Condition) {
			return false
		}
	}
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch f.Scope {
	case PatientScopeRecent:
		last, ok := parseDate(p.LastVisit, now.Location())
		return ok && !last.Before(today.AddDate(0, 0, -7))
	case PatientScopeUpcoming:
		next, ok := parseDate(p.NextAppointment, now.Location())
		return ok && !next.Before(today)
	}
	return true
}

func parseDate(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	return t, err == nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func equalOrEmpty(want, got string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(want, strings.TrimSpace(got))
}
