package model

import "github.com/shopspring/decimal"

// AvailabilitySlot is a window a doctor opens for consultations.
type AvailabilitySlot struct {
	Meta
	Date      string          `json:"date" validate:"required,date"`
	StartTime string          `json:"startTime" validate:"required,clock"`
	EndTime   string          `json:"endTime" validate:"required,clock"`
	Duration  int             `json:"duration" validate:"gt=0"`
	Fee       decimal.Decimal `json:"fee" validate:"gte=0"`
}
