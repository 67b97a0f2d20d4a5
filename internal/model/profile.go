package model

// PersonalInfo is the editable part of a patient profile.
type PersonalInfo struct {
	FullName    string `json:"fullName" validate:"required"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	BloodGroup  string `json:"bloodGroup"`
	Phone       string `json:"phone" validate:"omitempty,phone"`
}

// PatientProfile is the single patient record kept per client.
type PatientProfile struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	MemberSince  string       `json:"memberSince"`
}

// DefaultPatientProfile is shown before the patient edits anything.
func DefaultPatientProfile() PatientProfile {
	return PatientProfile{
		PersonalInfo: PersonalInfo{
			FullName:    "John Doe",
			DateOfBirth: "January 15, 1990",
			Gender:      "Male",
			BloodGroup:  "O+",
			Phone:       "+91 98765 43210",
		},
		MemberSince: "January 2025",
	}
}

// DoctorProfile is the single doctor record kept per client.
type DoctorProfile struct {
	Name       string `json:"name" validate:"required"`
	Speciality string `json:"speciality" validate:"required"`
	Experience string `json:"experience"`
	Email      string `json:"email" validate:"required,mailbox"`
	Phone      string `json:"phone" validate:"omitempty,phone"`
	Address    string `json:"address"`
}

// DefaultDoctorProfile is shown before the doctor edits anything.
func DefaultDoctorProfile() DoctorProfile {
	return DoctorProfile{
		Name:       "Dr. Rajesh Sharma",
		Speciality: "Cardiology",
		Experience: "15",
		Email:      "rajesh.sharma@healthconnect.com",
		Phone:      "+91-9876543210",
		Address:    "123 Medical Street, Mumbai, Maharashtra",
	}
}
