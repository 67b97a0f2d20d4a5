package service

import (
	"time"

	"github.com/shopspring/decimal"

	"quickcare/internal/model"
)

// DemoDoctors is the directory a fresh client starts with.
func DemoDoctors() []model.Doctor {
	return []model.Doctor{
		{
			Name:          "Dr. Rajesh Sharma",
			Email:         "dr.rajesh@apollo.com",
			Specialty:     "cardiology",
			Experience:    12,
			Hospital:      "apollo",
			City:          "delhi",
			Qualification: "MBBS, MD, DM Cardiology",
			Availability:  model.AvailabilityAvailable,
			Bio:           "Senior Cardiologist with 12+ years of experience in interventional cardiology",
			Fee:           decimal.NewFromInt(500),
		},
		{
			Name:          "Dr. Priya Singh",
			Email:         "dr.priya@fortis.com",
			Specialty:     "pediatrics",
			Experience:    8,
			Hospital:      "fortis",
			City:          "mumbai",
			Qualification: "MBBS, DCH, DNB Pediatrics",
			Availability:  model.AvailabilityBusy,
			Bio:           "Pediatric specialist with expertise in child healthcare and vaccination",
			Fee:           decimal.NewFromInt(400),
		},
		{
			Name:          "Dr. Sunita Nair",
			Email:         "dr.sunita@greenvalley.com",
			Specialty:     "dermatology",
			Experience:    10,
			Hospital:      "green_valley",
			City:          "mumbai",
			Qualification: "MBBS, MD Dermatology",
			Availability:  model.AvailabilityAvailable,
			Bio:           "Dermatologist specializing in skin diseases and cosmetic dermatology",
			Fee:           decimal.NewFromInt(450),
		},
		{
			Name:          "Dr. Rohan Shah",
			Email:         "dr.rohan@metrocare.com",
			Specialty:     "orthopedics",
			Experience:    15,
			Hospital:      "metro_care",
			City:          "delhi",
			Qualification: "MBBS, MS Orthopedics",
			Availability:  model.AvailabilityOnLeave,
			Bio:           "Orthopedic surgeon specialized in joint replacement and sports injuries",
			Fee:           decimal.NewFromInt(600),
		},
		{
			Name:          "Dr. Kavita Rao",
			Email:         "dr.kavita@citygeneral.com",
			Specialty:     "general",
			Experience:    6,
			Hospital:      "city_general",
			City:          "bengaluru",
			Qualification: "MBBS, MD General Medicine",
			Availability:  model.AvailabilityAvailable,
			Bio:           "General physician with expertise in internal medicine and chronic care",
			Fee:           decimal.NewFromInt(350),
		},
	}
}

// DemoHospitals is the hospital list a fresh client starts with.
func DemoHospitals() []model.Hospital {
	return []model.Hospital{
		{Name: "City General Hospital", Type: "Government", City: "delhi", Verified: true, Address: "123 Main Street, Central Delhi", Phone: "+91-11-2345-6789", Email: "admin@citygeneral.com", Capacity: 500, Description: "Leading government hospital providing comprehensive healthcare services"},
		{Name: "Metro Care Clinic", Type: "Private", City: "delhi", Verified: true, Address: "456 Business District, New Delhi", Phone: "+91-11-9876-5432", Email: "info@metrocare.com", Capacity: 200, Description: "Premium private healthcare facility with modern equipment"},
		{Name: "Green Valley Multi-speciality", Type: "Multi-specialty", City: "mumbai", Verified: false, Address: "789 Medical Complex, Mumbai", Phone: "+91-22-1234-5678", Email: "contact@greenvalley.com", Capacity: 300, Description: "Multi-specialty hospital offering various medical services"},
		{Name: "Apollo Speciality Hospital", Type: "Private", City: "chennai", Verified: true, Address: "321 Medical Avenue, Chennai", Phone: "+91-44-8765-4321", Email: "admin@apollo.com", Capacity: 800, Description: "Renowned specialty hospital with advanced medical technology"},
		{Name: "Fortis Healthcare", Type: "Private", City: "mumbai", Verified: true, Address: "654 Healthcare Boulevard, Mumbai", Phone: "+91-22-5555-6666", Email: "info@fortis.com", Capacity: 400, Description: "Leading private healthcare provider with multiple specialties"},
		{Name: "National Health Center", Type: "Government", City: "bengaluru", Verified: false, Address: "987 Government Complex, Bengaluru", Phone: "+91-80-7777-8888", Email: "contact@nhc.gov.in", Capacity: 600, Description: "Government health center providing affordable healthcare services"},
	}
}

// DemoDoctorPatients is the patient list shown on a fresh doctor dashboard.
func DemoDoctorPatients() []model.DoctorPatient {
	return []model.DoctorPatient{
		{Name: "John Doe", LastVisit: "2025-08-20", NextAppointment: "2025-09-10", Condition: "Hypertension", Phone: "+91-9876543210", Age: 45},
		{Name: "Jane Smith", LastVisit: "2025-08-25", NextAppointment: "2025-09-05", Condition: "Diabetes", Phone: "+91-9876543211", Age: 52},
		{Name: "Mike Johnson", LastVisit: "2025-08-30", NextAppointment: "2025-09-08", Condition: "Chest Pain", Phone: "+91-9876543212", Age: 38},
		{Name: "Sarah Wilson", LastVisit: "2025-08-15", Condition: "Regular Checkup", Phone: "+91-9876543213", Age: 29},
	}
}

// DemoAvailability opens a 09:00 to 17:00 window on each of the seven days
// starting at today.
func DemoAvailability(today time.Time) []model.AvailabilitySlot {
	slots := make([]model.AvailabilitySlot, 0, 7)
	for i := 0; i < 7; i++ {
		slots = append(slots, model.AvailabilitySlot{
			Date:      today.AddDate(0, 0, i).Format("2006-01-02"),
			StartTime: "09:00",
			EndTime:   "17:00",
			Duration:  30,
			Fee:       decimal.NewFromInt(500),
		})
	}
	return slots
}

// DemoAppointments is today's schedule on a fresh doctor dashboard. The
// entries carry no doctor email so every doctor of the client sees them.
func DemoAppointments(today time.Time) []model.Appointment {
	date := today.Format("2006-01-02")
	visit := func(clock, patient, reason string, fee int64, status model.AppointmentStatus) model.Appointment {
		return model.Appointment{
			Date:        date,
			Time:        clock,
			Doctor:      "Dr. Rajesh Sharma",
			Hospital:    "apollo",
			Specialty:   "cardiology",
			PatientName: patient,
			Status:      status,
			Reason:      reason,
			Fee:         decimal.NewFromInt(fee),
		}
	}
	return []model.Appointment{
		visit("10:30", "John Doe", "Follow-up", 500, model.AppointmentStatusCompleted),
		visit("11:00", "Jane Smith", "Consultation", 600, model.AppointmentStatusCompleted),
		visit("14:30", "Mike Johnson", "Regular Checkup", 500, model.AppointmentStatusConfirmed),
		visit("15:00", "Sarah Wilson", "Emergency", 800, model.AppointmentStatusPending),
		visit("16:00", "David Brown", "Consultation", 500, model.AppointmentStatusCompleted),
	}
}
