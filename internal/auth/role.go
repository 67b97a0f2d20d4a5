package auth

import (
	"strings"

	"quickcare/internal/model"
)

// RoleResolver decides which portal a login lands in.
type RoleResolver interface {
	Resolve(email string) model.Role
}

// PatternResolver infers the role from the email address: addresses
// containing "admin" are admins, "doctor" or "dr." are doctors, and
// everyone else is a patient.
type PatternResolver struct{}

func (PatternResolver) Resolve(email string) model.Role {
	e := strings.ToLower(email)
	switch {
	case strings.Contains(e, "admin"):
		return model.RoleAdmin
	case strings.Contains(e, "doctor"), strings.Contains(e, "dr."):
		return model.RoleDoctor
	default:
		return model.RolePatient
	}
}

// ResolverFunc adapts a function to RoleResolver.
type ResolverFunc func(email string) model.Role

func (f ResolverFunc) Resolve(email string) model.Role {
	return f(email)
}
