package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantCode     string
		wantRedirect string
	}{
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("find doctor: %w", ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "invalid transition",
			err:        ErrInvalidTransition,
			wantStatus: http.StatusConflict,
			wantCode:   "INVALID_TRANSITION",
		},
		{
			name:       "booking in past",
			err:        ErrBookingInPast,
			wantStatus: http.StatusBadRequest,
			wantCode:   "BOOKING_IN_PAST",
		},
		{
			name:         "auth required",
			err:          NewAuthRequired(),
			wantStatus:   http.StatusUnauthorized,
			wantCode:     "AUTH_REQUIRED",
			wantRedirect: SignInPath,
		},
		{
			name:         "role mismatch",
			err:          fmt.Errorf("gate: %w", NewRoleMismatch("admin")),
			wantStatus:   http.StatusForbidden,
			wantCode:     "ROLE_MISMATCH",
			wantRedirect: HomePath,
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.wantRedirect, httpErr.ToErrorResponse().Redirect)
		})
	}
}

func TestValidationError(t *testing.T) {
	verr := &ValidationError{}
	assert.NoError(t, verr.ErrOrNil())

	verr.Add("city", "Please select a city")
	verr.Add("name", "Doctor name is required")
	verr.Add("email", "A doctor with this email already exists")
	verr.OrderBy([]string{"name", "email", "city"})

	assert.Equal(t, []FieldError{
		{Field: "name", Message: "Doctor name is required"},
		{Field: "email", Message: "A doctor with this email already exists"},
		{Field: "city", Message: "Please select a city"},
	}, verr.Fields)
	assert.True(t, verr.Has("email"))
	assert.False(t, verr.Has("bio"))

	httpErr := MapErrorToHTTP(verr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Len(t, httpErr.Details, 3)
}
