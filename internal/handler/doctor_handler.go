package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quickcare/internal/model"
)

// DoctorHandler serves the doctor dashboard.
type DoctorHandler struct{}

// NewDoctorHandler creates a new doctor handler.
func NewDoctorHandler() *DoctorHandler {
	return &DoctorHandler{}
}

// Appointments godoc
// @Summary List my appointments
// @Tags doctor
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, confirmed, completed or cancelled"
// @Param date query string false "Date as YYYY-MM-DD"
// @Success 200 {array} model.Appointment
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /doctor/appointments [get]
func (h *DoctorHandler) Appointments(c echo.Context) error {
	return c.JSON(http.StatusOK, listAppointments(c))
}

// Advance godoc
// @Summary Move an appointment one step forward
// @Description pending becomes confirmed, confirmed becomes completed.
// @Tags doctor
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} model.Appointment
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /doctor/appointments/{id}/advance [post]
func (h *DoctorHandler) Advance(c echo.Context) error {
	appointment, err := portalFrom(c).Booking.Advance(c.Request().Context(), sessionFrom(c), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	toast(c, "Appointment "+string(appointment.Status))
	return c.JSON(http.StatusOK, appointment)
}

// Cancel godoc
// @Summary Cancel an open appointment
// @Tags doctor
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} model.Appointment
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /doctor/appointments/{id}/cancel [post]
func (h *DoctorHandler) Cancel(c echo.Context) error {
	return h.setStatus(c, model.AppointmentStatusCancelled)
}

// Complete godoc
// @Summary Mark an open appointment completed
// @Tags doctor
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} model.Appointment
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /doctor/appointments/{id}/complete [post]
func (h *DoctorHandler) Complete(c echo.Context) error {
	return h.setStatus(c, model.AppointmentStatusCompleted)
}

func (h *DoctorHandler) setStatus(c echo.Context, status model.AppointmentStatus) error {
	appointment, err := portalFrom(c).Booking.SetStatus(c.Request().Context(), sessionFrom(c), c.Param("id"), status)
	if err != nil {
		return respondError(err)
	}
	toast(c, "Appointment "+string(status))
	return c.JSON(http.StatusOK, appointment)
}

// Earnings godoc
// @Summary Earnings of today and of the last seven days
// @Tags doctor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Earnings
// @Router /doctor/earnings [get]
func (h *DoctorHandler) Earnings(c echo.Context) error {
	earnings := portalFrom(c).Booking.Earnings(c.Request().Context(), sessionFrom(c).Email)
	return c.JSON(http.StatusOK, earnings)
}

// Profile godoc
// @Summary My profile
// @Tags doctor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.DoctorProfile
// @Router /doctor/profile [get]
func (h *DoctorHandler) Profile(c echo.Context) error {
	return c.JSON(http.StatusOK, portalFrom(c).Profile.DoctorProfile(c.Request().Context()))
}

// UpdateProfile godoc
// @Summary Edit my profile
// @Tags doctor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.DoctorProfile true "Profile"
// @Success 200 {object} model.DoctorProfile
// @Failure 400 {object} errors.ErrorResponse
// @Router /doctor/profile [put]
func (h *DoctorHandler) UpdateProfile(c echo.Context) error {
	var profile model.DoctorProfile
	if err := decode(c, &profile); err != nil {
		return err
	}
	updated, err := portalFrom(c).Profile.UpdateDoctorProfile(c.Request().Context(), profile)
	if err != nil {
		return respondError(err)
	}
	toast(c, "Profile updated successfully!")
	return c.JSON(http.StatusOK, updated)
}

// Availability godoc
// @Summary List my availability slots
// @Tags doctor
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.AvailabilitySlot
// @Router /doctor/availability [get]
func (h *DoctorHandler) Availability(c echo.Context) error {
	return c.JSON(http.StatusOK, portalFrom(c).Profile.Availability(c.Request().Context()))
}

// AddAvailability godoc
// @Summary Open an availability slot
// @Tags doctor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.AvailabilitySlot true "Slot"
// @Success 201 {object} model.AvailabilitySlot
// @Failure 400 {object} errors.ErrorResponse
// @Router /doctor/availability [post]
func (h *DoctorHandler) AddAvailability(c echo.Context) error {
	var slot model.AvailabilitySlot
	if err := decode(c, &slot); err != nil {
		return err
	}
	if err := portalFrom(c).Profile.AddAvailability(c.Request().Context(), &slot); err != nil {
		return respondError(err)
	}
	toast(c, "Availability added successfully!")
	return c.JSON(http.StatusCreated, slot)
}

// UpdateAvailability godoc
// @Summary Edit an availability slot
// @Tags doctor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Param request body model.AvailabilitySlot true "Slot"
// @Success 200 {object} model.AvailabilitySlot
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /doctor/availability/{id} [put]
func (h *DoctorHandler) UpdateAvailability(c echo.Context) error {
	var slot model.AvailabilitySlot
	if err := decode(c, &slot); err != nil {
		return err
	}
	updated, err := portalFrom(c).Profile.UpdateAvailability(c.Request().Context(), c.Param("id"), slot)
	if err != nil {
		return respondError(err)
	}
	toast(c, "Availability updated successfully!")
	return c.JSON(http.StatusOK, updated)
}

// RemoveAvailability godoc
// @Summary Remove an availability slot
// @Tags doctor
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /doctor/availability/{id} [delete]
func (h *DoctorHandler) RemoveAvailability(c echo.Context) error {
	if err := portalFrom(c).Profile.RemoveAvailability(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Patients godoc
// @Summary List my patients
// @Tags doctor
// @Produce json
// @Security BearerAuth
// @Param search query string false "Matches name or condition"
// @Param scope query string false "recent or upcoming"
// @Success 200 {array} model.DoctorPatient
// @Router /doctor/patients [get]
func (h *DoctorHandler) Patients(c echo.Context) error {
	patients := portalFrom(c).Profile.Patients(c.Request().Context(), c.QueryParam("search"), c.QueryParam("scope"))
	return c.JSON(http.StatusOK, patients)
}

// AddPatient godoc
// @Summary Add a patient
// @Tags doctor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.DoctorPatient true "Patient"
// @Success 201 {object} model.DoctorPatient
// @Failure 400 {object} errors.ErrorResponse
// @Router /doctor/patients [post]
func (h *DoctorHandler) AddPatient(c echo.Context) error {
	var patient model.DoctorPatient
	if err := decode(c, &patient); err != nil {
		return err
	}
	if err := portalFrom(c).Profile.AddPatient(c.Request().Context(), &patient); err != nil {
		return respondError(err)
	}
	toast(c, "Patient added successfully!")
	return c.JSON(http.StatusCreated, patient)
}
