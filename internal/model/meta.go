package model

import "time"

// Meta carries the bookkeeping fields every stored record has.
type Meta struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Record exposes the bookkeeping fields to generic collections.
func (m *Meta) Record() *Meta {
	return m
}
