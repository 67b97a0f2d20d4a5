package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrNotFound is returned when a record id is not present in its collection.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidTransition is returned when an appointment status change is not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrDateTimeRequired is returned when a booking misses its date or time.
	ErrDateTimeRequired = errors.New("Please select both date and time")
	// ErrBookingInPast is returned when a booking does not lie in the future.
	ErrBookingInPast = errors.New("Please select a future date and time")
	// ErrStoreCorrupt marks a persisted entry that could not be decoded.
	ErrStoreCorrupt = errors.New("store entry corrupt")
	// ErrUnknownClient is returned when a client token names no usable client.
	ErrUnknownClient = errors.New("unknown client")
)

// FieldError is a single human-readable validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field errors in the order they should be shown.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Add appends a field error.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Has reports whether field already carries an error.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// OrderBy sorts the field errors by the position of their field in order.
// Fields missing from order keep their relative position at the end.
func (e *ValidationError) OrderBy(order []string) {
	rank := make(map[string]int, len(order))
	for i, f := range order {
		rank[f] = i
	}
	pos := func(f FieldError) int {
		if r, ok := rank[f.Field]; ok {
			return r
		}
		return len(order)
	}
	sorted := make([]FieldError, 0, len(e.Fields))
	for r := 0; r <= len(order); r++ {
		for _, f := range e.Fields {
			if pos(f) == r {
				sorted = append(sorted, f)
			}
		}
	}
	e.Fields = sorted
}

// ErrOrNil returns nil when no field errors were collected.
func (e *ValidationError) ErrOrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NewValidationError builds a ValidationError with one field error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// AuthKind distinguishes the two ways a role gate can refuse access.
type AuthKind int

const (
	// AuthRequired means there is no valid session.
	AuthRequired AuthKind = iota
	// AuthRoleMismatch means a session exists for a different role.
	AuthRoleMismatch
)

const (
	// SignInPath is where unauthenticated viewers are sent.
	SignInPath = "/signin"
	// HomePath is where viewers with the wrong role are sent.
	HomePath = "/"
)

// AuthError is returned by role gates and tells the view where to go.
type AuthError struct {
	Kind     AuthKind
	Redirect string
	Message  string
}

func (e *AuthError) Error() string {
	return e.Message
}

// NewAuthRequired builds the error for a missing or expired session.
func NewAuthRequired() *AuthError {
	return &AuthError{Kind: AuthRequired, Redirect: SignInPath, Message: "authentication required"}
}

// NewRoleMismatch builds the error for a session of the wrong role.
func NewRoleMismatch(want string) *AuthError {
	return &AuthError{Kind: AuthRoleMismatch, Redirect: HomePath, Message: "access restricted to " + want}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error    string       `json:"error"`
	Code     string       `json:"code"`
	Redirect string       `json:"redirect,omitempty"`
	Details  []FieldError `json:"details,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Redirect   string
	Details    []FieldError
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:    e.Message,
		Code:     e.Code,
		Redirect: e.Redirect,
		Details:  e.Details,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		httpErr := NewHTTPError(http.StatusBadRequest, validationErr.Error(), "VALIDATION_FAILED")
		httpErr.Details = validationErr.Fields
		return httpErr
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		status, code := http.StatusUnauthorized, "AUTH_REQUIRED"
		if authErr.Kind == AuthRoleMismatch {
			status, code = http.StatusForbidden, "ROLE_MISMATCH"
		}
		httpErr := NewHTTPError(status, authErr.Message, code)
		httpErr.Redirect = authErr.Redirect
		return httpErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusConflict, ErrInvalidTransition.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrDateTimeRequired):
		return NewHTTPError(http.StatusBadRequest, ErrDateTimeRequired.Error(), "DATETIME_REQUIRED")
	case errors.Is(err, ErrBookingInPast):
		return NewHTTPError(http.StatusBadRequest, ErrBookingInPast.Error(), "BOOKING_IN_PAST")
	case errors.Is(err, ErrUnknownClient):
		return NewHTTPError(http.StatusUnauthorized, ErrUnknownClient.Error(), "UNKNOWN_CLIENT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
