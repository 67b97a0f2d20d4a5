package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommendations(t *testing.T) {
	tests := []struct {
		specialty string
		first     string
		count     int
	}{
		{"Cardiology", "Avoid heavy meals 4-6 hours before your appointment", 4},
		{"cardiology", "Avoid heavy meals 4-6 hours before your appointment", 4},
		{" PEDIATRICS ", "Bring your child's vaccination record", 4},
		{"general", "Bring a list of all current medications and supplements", 4},
		{"ENT", "Avoid using nasal sprays or ear drops before the appointment unless instructed", 4},
		{"Oncology", "Bring all relevant medical records, including pathology reports and imaging scans", 4},
		{"Podiatry", "Arrive 15 minutes early for your appointment", 5},
		{"", "Arrive 15 minutes early for your appointment", 5},
	}

	for _, tt := range tests {
		t.Run(tt.specialty, func(t *testing.T) {
			got := Recommendations(tt.specialty)
			assert.Len(t, got, tt.count)
			assert.Equal(t, tt.first, got[0])
		})
	}
}

func TestRecommendationsReturnsCopy(t *testing.T) {
	got := Recommendations("neurology")
	got[0] = "changed"
	assert.Equal(t, "Keep a symptom diary leading up to your appointment", Recommendations("neurology")[0])
}
