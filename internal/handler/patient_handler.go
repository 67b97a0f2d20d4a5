package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quickcare/internal/model"
	"quickcare/internal/repository"
	"quickcare/internal/service"
)

// PatientHandler serves the patient dashboard.
type PatientHandler struct{}

// NewPatientHandler creates a new patient handler.
func NewPatientHandler() *PatientHandler {
	return &PatientHandler{}
}

// Doctors godoc
// @Summary Find a doctor
// @Tags patient
// @Produce json
// @Security BearerAuth
// @Param search query string false "Matches name, email or qualification"
// @Param specialty query string false "Specialty"
// @Param city query string false "City"
// @Param availability query string false "available, busy or on_leave"
// @Success 200 {array} model.Doctor
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /patient/doctors [get]
func (h *PatientHandler) Doctors(c echo.Context) error {
	doctors := portalFrom(c).Directory.ListDoctors(c.Request().Context(), doctorFilter(c))
	return c.JSON(http.StatusOK, doctors)
}

// Appointments godoc
// @Summary List my appointments
// @Tags patient
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, confirmed, completed or cancelled"
// @Param date query string false "Date as YYYY-MM-DD"
// @Success 200 {array} model.Appointment
// @Router /patient/appointments [get]
func (h *PatientHandler) Appointments(c echo.Context) error {
	return c.JSON(http.StatusOK, listAppointments(c))
}

// Book godoc
// @Summary Book an appointment
// @Tags patient
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.BookingRequest true "Booking"
// @Success 201 {object} service.BookingResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /patient/appointments [post]
func (h *PatientHandler) Book(c echo.Context) error {
	var req service.BookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	result, err := portalFrom(c).Booking.Book(c.Request().Context(), sessionFrom(c), req)
	if err != nil {
		return respondError(err)
	}
	toast(c, "Appointment booked successfully!")
	return c.JSON(http.StatusCreated, result)
}

// Cancel godoc
// @Summary Cancel a pending appointment
// @Tags patient
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} model.Appointment
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /patient/appointments/{id}/cancel [post]
func (h *PatientHandler) Cancel(c echo.Context) error {
	appointment, err := portalFrom(c).Booking.Cancel(c.Request().Context(), sessionFrom(c), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	toast(c, "Appointment cancelled")
	return c.JSON(http.StatusOK, appointment)
}

// Profile godoc
// @Summary My profile
// @Tags patient
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.PatientProfile
// @Router /patient/profile [get]
func (h *PatientHandler) Profile(c echo.Context) error {
	return c.JSON(http.StatusOK, portalFrom(c).Profile.PatientProfile(c.Request().Context()))
}

// UpdateProfile godoc
// @Summary Edit my personal information
// @Tags patient
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.PersonalInfo true "Personal information"
// @Success 200 {object} model.PatientProfile
// @Failure 400 {object} errors.ErrorResponse
// @Router /patient/profile [put]
func (h *PatientHandler) UpdateProfile(c echo.Context) error {
	var info model.PersonalInfo
	if err := decode(c, &info); err != nil {
		return err
	}
	profile, err := portalFrom(c).Profile.UpdatePatientProfile(c.Request().Context(), info)
	if err != nil {
		return respondError(err)
	}
	toast(c, "Profile updated successfully!")
	return c.JSON(http.StatusOK, profile)
}

// listAppointments returns the appointments the session may see,
// narrowed by the status and date query parameters.
func listAppointments(c echo.Context) []model.Appointment {
	filter := repository.AppointmentFilter{
		Status: model.AppointmentStatus(c.QueryParam("status")),
		Date:   c.QueryParam("date"),
	}
	return portalFrom(c).Booking.ListForViewer(c.Request().Context(), sessionFrom(c), filter)
}
