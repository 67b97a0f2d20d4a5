package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quickcare/internal/portal"
)

// ClientHandler issues client tokens.
type ClientHandler struct {
	hub *portal.Hub
}

// NewClientHandler creates a new client handler.
func NewClientHandler(hub *portal.Hub) *ClientHandler {
	return &ClientHandler{hub: hub}
}

// Register godoc
// @Summary Register a new client
// @Description Creates an isolated data namespace and returns the bearer token that addresses it.
// @Tags clients
// @Produce json
// @Success 201 {object} service.ClientRegistration
// @Failure 500 {object} errors.ErrorResponse
// @Router /clients [post]
func (h *ClientHandler) Register(c echo.Context) error {
	reg, err := h.hub.RegisterClient(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, reg)
}
