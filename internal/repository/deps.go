package repository

import (
	"time"

	"quickcare/internal/storage"
	"quickcare/internal/validation"
)

// Deps are shared by every repository constructor.
type Deps struct {
	Store     storage.Store
	Validator *validation.Validator
	Now       func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d Deps) validator() *validation.Validator {
	if d.Validator == nil {
		return validation.New()
	}
	return d.Validator
}
