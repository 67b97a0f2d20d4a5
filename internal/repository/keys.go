package repository

// Store keys of the persisted collections and documents.
const (
	KeyDoctors             = "doctors"
	KeyHospitals           = "quickcare_hospitals"
	KeyAppointments        = "appointments"
	KeyPatientAppointments = "patient_appointments"
	KeyDoctorAppointments  = "doctor_appointments"
	KeyDoctorPatients      = "doctor_patients"
	KeyDoctorAvailability  = "doctor_availability"
	KeyDoctorProfile       = "doctor_profile"
	KeyDoctorSchedule      = "doctor_schedule"
	KeyDoctorStats         = "doctor_stats"
	KeyPatientData         = "patient_data"
	KeyUsers               = "users"
)

// SessionScopedKeys are cached per login and dropped on logout.
var SessionScopedKeys = []string{
	KeyPatientAppointments,
	KeyDoctorAppointments,
	KeyDoctorSchedule,
	KeyDoctorPatients,
	KeyDoctorStats,
}

// AdminCacheKeys are dropped by the admin "clear cached data" action.
var AdminCacheKeys = []string{
	KeyDoctors,
	KeyHospitals,
	KeyAppointments,
	KeyUsers,
}
