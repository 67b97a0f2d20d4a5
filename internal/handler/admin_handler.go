package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"quickcare/internal/model"
	"quickcare/internal/repository"
)

// AdminHandler serves the admin dashboard: the doctor and hospital
// directories, statistics and maintenance actions.
type AdminHandler struct{}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// ListDoctors godoc
// @Summary List doctors
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Matches name, email or qualification"
// @Param specialty query string false "Specialty"
// @Param city query string false "City"
// @Param availability query string false "available, busy or on_leave"
// @Success 200 {array} model.Doctor
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/doctors [get]
func (h *AdminHandler) ListDoctors(c echo.Context) error {
	doctors := portalFrom(c).Directory.ListDoctors(c.Request().Context(), doctorFilter(c))
	return c.JSON(http.StatusOK, doctors)
}

// GetDoctor godoc
// @Summary Get a doctor
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Doctor ID"
// @Success 200 {object} model.Doctor
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/doctors/{id} [get]
func (h *AdminHandler) GetDoctor(c echo.Context) error {
	doctor, err := portalFrom(c).Directory.GetDoctor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, doctor)
}

// CreateDoctor godoc
// @Summary Add a doctor
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.Doctor true "Doctor"
// @Success 201 {object} model.Doctor
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/doctors [post]
func (h *AdminHandler) CreateDoctor(c echo.Context) error {
	var doctor model.Doctor
	if err := decode(c, &doctor); err != nil {
		return err
	}
	if err := portalFrom(c).Directory.CreateDoctor(c.Request().Context(), &doctor); err != nil {
		return respondError(err)
	}
	adminToast(c, "Doctor added successfully!")
	return c.JSON(http.StatusCreated, doctor)
}

// UpdateDoctor godoc
// @Summary Update a doctor
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Doctor ID"
// @Param request body model.DoctorPatch true "Fields to change"
// @Success 200 {object} model.Doctor
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/doctors/{id} [put]
func (h *AdminHandler) UpdateDoctor(c echo.Context) error {
	var patch model.DoctorPatch
	if err := decode(c, &patch); err != nil {
		return err
	}
	doctor, err := portalFrom(c).Directory.UpdateDoctor(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return respondError(err)
	}
	adminToast(c, "Doctor updated successfully!")
	return c.JSON(http.StatusOK, doctor)
}

// DeleteDoctor godoc
// @Summary Delete a doctor
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Doctor ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/doctors/{id} [delete]
func (h *AdminHandler) DeleteDoctor(c echo.Context) error {
	if err := portalFrom(c).Directory.DeleteDoctor(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(err)
	}
	adminToast(c, "Doctor deleted successfully!")
	return c.NoContent(http.StatusNoContent)
}

// ListHospitals godoc
// @Summary List hospitals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Matches name, type, city or address"
// @Param type query string false "Hospital type"
// @Param city query string false "City"
// @Param verified query bool false "Verification state"
// @Success 200 {array} model.Hospital
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/hospitals [get]
func (h *AdminHandler) ListHospitals(c echo.Context) error {
	verified, err := queryBool(c, "verified")
	if err != nil {
		return respondError(err)
	}
	hospitals := portalFrom(c).Directory.ListHospitals(c.Request().Context(), repository.HospitalFilter{
		Search:   c.QueryParam("search"),
		Type:     c.QueryParam("type"),
		City:     c.QueryParam("city"),
		Verified: verified,
	})
	return c.JSON(http.StatusOK, hospitals)
}

// GetHospital godoc
// @Summary Get a hospital
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hospital ID"
// @Success 200 {object} model.Hospital
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/hospitals/{id} [get]
func (h *AdminHandler) GetHospital(c echo.Context) error {
	hospital, err := portalFrom(c).Directory.GetHospital(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, hospital)
}

// CreateHospital godoc
// @Summary Add a hospital
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.Hospital true "Hospital"
// @Success 201 {object} model.Hospital
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/hospitals [post]
func (h *AdminHandler) CreateHospital(c echo.Context) error {
	var hospital model.Hospital
	if err := decode(c, &hospital); err != nil {
		return err
	}
	if err := portalFrom(c).Directory.CreateHospital(c.Request().Context(), &hospital); err != nil {
		return respondError(err)
	}
	adminToast(c, "Hospital added successfully!")
	return c.JSON(http.StatusCreated, hospital)
}

// UpdateHospital godoc
// @Summary Update a hospital
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hospital ID"
// @Param request body model.HospitalPatch true "Fields to change"
// @Success 200 {object} model.Hospital
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/hospitals/{id} [put]
func (h *AdminHandler) UpdateHospital(c echo.Context) error {
	var patch model.HospitalPatch
	if err := decode(c, &patch); err != nil {
		return err
	}
	hospital, err := portalFrom(c).Directory.UpdateHospital(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return respondError(err)
	}
	adminToast(c, "Hospital updated successfully!")
	return c.JSON(http.StatusOK, hospital)
}

// DeleteHospital godoc
// @Summary Delete a hospital
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Hospital ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/hospitals/{id} [delete]
func (h *AdminHandler) DeleteHospital(c echo.Context) error {
	if err := portalFrom(c).Directory.DeleteHospital(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(err)
	}
	adminToast(c, "Hospital deleted successfully!")
	return c.NoContent(http.StatusNoContent)
}

// Stats godoc
// @Summary Dashboard statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Stats
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, portalFrom(c).Directory.Stats(c.Request().Context()))
}

// Seed godoc
// @Summary Seed demo data
// @Description Fills every empty collection with demo records. Collections holding data are left alone.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.SeedResult
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/seed [post]
func (h *AdminHandler) Seed(c echo.Context) error {
	p := portalFrom(c)
	result, err := p.Seeder.SeedDemo(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	logrus.WithFields(logrus.Fields{
		"client_id": p.ClientID,
		"doctors":   result.Doctors,
		"hospitals": result.Hospitals,
	}).Info("demo data seeded")
	adminToast(c, "Demo data loaded successfully!")
	return c.JSON(http.StatusOK, result)
}

// ClearCache godoc
// @Summary Clear cached data
// @Description Drops the stored directories and appointments of this client.
// @Tags admin
// @Security BearerAuth
// @Success 204
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/cache [delete]
func (h *AdminHandler) ClearCache(c echo.Context) error {
	if err := portalFrom(c).Directory.ClearCache(c.Request().Context()); err != nil {
		return respondError(err)
	}
	adminToast(c, "Cache cleared successfully!")
	return c.NoContent(http.StatusNoContent)
}

func doctorFilter(c echo.Context) repository.DoctorFilter {
	return repository.DoctorFilter{
		Search:       c.QueryParam("search"),
		Specialty:    c.QueryParam("specialty"),
		City:         c.QueryParam("city"),
		Availability: c.QueryParam("availability"),
	}
}
