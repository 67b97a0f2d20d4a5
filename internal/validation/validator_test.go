package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string          `json:"name" validate:"required"`
	Email string          `json:"email" validate:"required,mailbox"`
	Phone string          `json:"phone" validate:"omitempty,phone"`
	Date  string          `json:"date" validate:"omitempty,date"`
	Start string          `json:"start" validate:"omitempty,clock"`
	Fee   decimal.Decimal `json:"fee" validate:"gte=0"`
}

var sampleMessages = Messages{
	"name":           "Name is required",
	"email.required": "Email address is required",
	"email.mailbox":  "Please enter a valid email address",
	"phone":          "Please enter a valid phone number",
}

func TestCheck(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		input sample
		want  map[string]string
	}{
		{
			name:  "valid",
			input: sample{Name: "A", Email: "a@b.co", Phone: "+91 98765 43210", Date: "2026-01-02", Start: "09:30", Fee: decimal.NewFromInt(500)},
			want:  map[string]string{},
		},
		{
			name:  "missing required fields",
			input: sample{},
			want:  map[string]string{"name": "Name is required", "email": "Email address is required"},
		},
		{
			name:  "malformed email and phone",
			input: sample{Name: "A", Email: "a@b", Phone: "12345"},
			want:  map[string]string{"email": "Please enter a valid email address", "phone": "Please enter a valid phone number"},
		},
		{
			name:  "negative fee and bad clock",
			input: sample{Name: "A", Email: "a@b.co", Start: "25:00", Fee: decimal.NewFromInt(-1)},
			want:  map[string]string{"start": "", "fee": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := v.Check(tt.input, sampleMessages)
			require.NotNil(t, verr)
			got := make(map[string]string, len(verr.Fields))
			for _, f := range verr.Fields {
				got[f.Field] = f.Message
			}
			require.Len(t, got, len(tt.want))
			for field, msg := range tt.want {
				assert.Contains(t, got, field)
				if msg != "" {
					assert.Equal(t, msg, got[field])
				}
			}
		})
	}
}

func TestCheckKeepsFieldOrder(t *testing.T) {
	verr := New().Check(sample{}, sampleMessages)
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "name", verr.Fields[0].Field)
	assert.Equal(t, "email", verr.Fields[1].Field)
}

func TestIsMailbox(t *testing.T) {
	assert.True(t, IsMailbox("dr.priya@fortis.com"))
	assert.False(t, IsMailbox("dr priya@fortis.com"))
	assert.False(t, IsMailbox("priya@fortis"))
}
