package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quickcare/internal/errors"
)

// NoticeHandler exposes the client's toasts and warnings.
type NoticeHandler struct{}

// NewNoticeHandler creates a new notice handler.
func NewNoticeHandler() *NoticeHandler {
	return &NoticeHandler{}
}

// List godoc
// @Summary List live notices
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Success 200 {array} notify.Notice
// @Router /notices [get]
func (h *NoticeHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, portalFrom(c).Notices.List())
}

// Dismiss godoc
// @Summary Dismiss a notice
// @Tags notices
// @Security BearerAuth
// @Param id path string true "Notice ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /notices/{id} [delete]
func (h *NoticeHandler) Dismiss(c echo.Context) error {
	if !portalFrom(c).Notices.Dismiss(c.Param("id")) {
		return respondError(errors.ErrNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}
