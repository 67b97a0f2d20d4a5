package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"quickcare/internal/errors"
	"quickcare/internal/model"
	"quickcare/internal/notify"
	"quickcare/internal/portal"
)

// Context keys set by the middleware below.
const (
	ClientIDKey = "client_id"
	portalKey   = "portal"
	sessionKey  = "session"
)

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// PortalMiddleware opens the portal of the client named by the token and
// releases it once the request is done.
func PortalMiddleware(hub *portal.Hub) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientID, ok := c.Get(ClientIDKey).(string)
			if !ok || clientID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "invalid token",
					Code:  "INVALID_TOKEN",
				})
			}

			p, err := hub.Open(c.Request().Context(), clientID)
			if err != nil {
				return respondError(err)
			}
			defer p.Release()

			c.Set(portalKey, p)
			return next(c)
		}
	}
}

// RequireRole rejects requests whose session is missing or of another role.
func RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := portalFrom(c).Session.RequireRole(c.Request().Context(), role)
			if err != nil {
				return respondError(err)
			}
			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

func portalFrom(c echo.Context) *portal.Portal {
	return c.Get(portalKey).(*portal.Portal)
}

func sessionFrom(c echo.Context) *model.Session {
	return c.Get(sessionKey).(*model.Session)
}

// respondError turns a domain error into an echo error with a JSON body.
func respondError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		logrus.WithError(err).Error("request failed")
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// bind decodes and validates the request body into req.
func bind(c echo.Context, req interface{}) error {
	if err := decode(c, req); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return respondError(err)
	}
	return nil
}

// decode only decodes the body. Records are validated by their repository.
func decode(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	return nil
}

// toast shows a success notice to the client.
func toast(c echo.Context, message string) {
	portalFrom(c).Notices.Toast(notify.KindSuccess, message)
}

// adminToast shows a success notice that stays a little longer.
func adminToast(c echo.Context, message string) {
	portalFrom(c).Notices.Show(notify.KindSuccess, message, "", notify.AdminToastTTL, nil)
}

// queryBool parses an optional boolean query parameter.
func queryBool(c echo.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errors.NewValidationError(name, name+" must be true or false")
	}
	return &v, nil
}
