package model

// Hospital is a facility in the admin directory.
type Hospital struct {
	Meta
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required"`
	City        string `json:"city" validate:"required"`
	Verified    bool   `json:"verified"`
	Address     string `json:"address"`
	Phone       string `json:"phone" validate:"omitempty,phone"`
	Email       string `json:"email" validate:"omitempty,mailbox"`
	Capacity    int    `json:"capacity" validate:"gte=0"`
	Description string `json:"description"`
}

// HospitalPatch lists the fields an update may change. Nil fields are kept.
type HospitalPatch struct {
	Name        *string `json:"name,omitempty"`
	Type        *string `json:"type,omitempty"`
	City        *string `json:"city,omitempty"`
	Verified    *bool   `json:"verified,omitempty"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply merges the patch into h.
func (p HospitalPatch) Apply(h *Hospital) {
	setString(&h.Name, p.Name)
	setString(&h.Type, p.Type)
	setString(&h.City, p.City)
	if p.Verified != nil {
		h.Verified = *p.Verified
	}
	setString(&h.Address, p.Address)
	setString(&h.Phone, p.Phone)
	setString(&h.Email, p.Email)
	if p.Capacity != nil {
		h.Capacity = *p.Capacity
	}
	setString(&h.Description, p.Description)
}
