package model

// DoctorPatient is an entry in a doctor's patient list.
type DoctorPatient struct {
	Meta
	Name            string `json:"name" validate:"required"`
	LastVisit       string `json:"lastVisit" validate:"omitempty,date"`
	NextAppointment string `json:"nextAppointment" validate:"omitempty,date"`
	Condition       string `json:"condition"`
	Phone           string `json:"phone" validate:"omitempty,phone"`
	Age             int    `json:"age" validate:"gte=0"`
}
