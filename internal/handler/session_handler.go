package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quickcare/internal/auth"
	"quickcare/internal/errors"
	"quickcare/internal/model"
)

// SessionHandler handles sign-in, sign-out and session keep-alive.
type SessionHandler struct{}

// NewSessionHandler creates a new session handler.
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// LoginRequest represents a sign-in form submission.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LogoutRequest optionally carries the message shown on the sign-in view.
type LogoutRequest struct {
	Reason string `json:"reason"`
}

// ActivityRequest reports one user interaction.
type ActivityRequest struct {
	Event string `json:"event" validate:"required"`
}

// SessionResponse describes the live session.
type SessionResponse struct {
	Session      *model.Session `json:"session"`
	NearExpiry   bool           `json:"nearExpiry"`
	WarningShown bool           `json:"warningShown"`
}

// Login godoc
// @Summary Sign in
// @Description Any non-empty email and password are accepted; the role is derived from the email.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} model.Session
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	sess, err := portalFrom(c).Session.Login(c.Request().Context(), auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, sess)
}

// Logout godoc
// @Summary Sign out
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LogoutRequest false "Logout reason"
// @Success 200 {object} MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := portalFrom(c).Session.Logout(c.Request().Context(), req.Reason); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out"})
}

// Session godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/session [get]
func (h *SessionHandler) Session(c echo.Context) error {
	p := portalFrom(c)
	ctx := c.Request().Context()

	sess := p.Session.CurrentSession(ctx)
	if sess == nil {
		return respondError(errors.NewAuthRequired())
	}
	return c.JSON(http.StatusOK, SessionResponse{
		Session:      sess,
		NearExpiry:   p.Session.IsNearExpiry(ctx),
		WarningShown: p.Session.WarningShown(),
	})
}

// Activity godoc
// @Summary Record user activity
// @Description Defers the inactivity timeout. Activity never revives an expired session.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ActivityRequest true "Activity event"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/activity [post]
func (h *SessionHandler) Activity(c echo.Context) error {
	var req ActivityRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if !auth.ActivityEvents[req.Event] {
		return respondError(errors.NewValidationError("event", "unknown activity event "+req.Event))
	}
	if !portalFrom(c).Session.TouchActivity(c.Request().Context()) {
		return respondError(errors.NewAuthRequired())
	}
	return c.NoContent(http.StatusNoContent)
}

// Extend godoc
// @Summary Extend the session
// @Description The action of the expiry warning: records activity and dismisses the warning.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Session
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/extend [post]
func (h *SessionHandler) Extend(c echo.Context) error {
	sess, err := portalFrom(c).Session.ExtendSession(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, sess)
}

// Renew godoc
// @Summary Renew the session
// @Description Restarts both the login and the activity clocks.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Session
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/renew [post]
func (h *SessionHandler) Renew(c echo.Context) error {
	sess, err := portalFrom(c).Session.Renew(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, sess)
}

// LogoutMessage godoc
// @Summary Pending logout message
// @Description Returns the reason of the last automatic logout once, then clears it.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Router /auth/logout-message [get]
func (h *SessionHandler) LogoutMessage(c echo.Context) error {
	msg := portalFrom(c).Session.ConsumeLogoutMessage(c.Request().Context())
	return c.JSON(http.StatusOK, MessageResponse{Message: msg})
}
