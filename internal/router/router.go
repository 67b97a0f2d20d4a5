package router

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"quickcare/internal/handler"
	"quickcare/internal/model"
	"quickcare/internal/portal"
	"quickcare/internal/service"
	"quickcare/internal/validation"
)

// Handlers groups the HTTP handlers wired by Register.
type Handlers struct {
	Client  *handler.ClientHandler
	Session *handler.SessionHandler
	Notice  *handler.NoticeHandler
	Admin   *handler.AdminHandler
	Patient *handler.PatientHandler
	Doctor  *handler.DoctorHandler
}

// NewHandlers builds every handler over hub.
func NewHandlers(hub *portal.Hub) Handlers {
	return Handlers{
		Client:  handler.NewClientHandler(hub),
		Session: handler.NewSessionHandler(),
		Notice:  handler.NewNoticeHandler(),
		Admin:   handler.NewAdminHandler(),
		Patient: handler.NewPatientHandler(),
		Doctor:  handler.NewDoctorHandler(),
	}
}

// Register wires routes and middleware.
func Register(e *echo.Echo, clients service.ClientService, hub *portal.Hub, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validation.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/clients", h.Client.Register)

	// Client routes (require a client token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.ClientIDKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			clientID, err := clients.Authenticate(c.Request().Context(), token)
			if err != nil {
				return nil, err
			}
			return clientID, nil
		},
	}), handler.PortalMiddleware(hub))

	secured.POST("/auth/login", h.Session.Login)
	secured.POST("/auth/logout", h.Session.Logout)
	secured.GET("/auth/session", h.Session.Session)
	secured.POST("/auth/activity", h.Session.Activity)
	secured.POST("/auth/extend", h.Session.Extend)
	secured.POST("/auth/renew", h.Session.Renew)
	secured.GET("/auth/logout-message", h.Session.LogoutMessage)

	secured.GET("/notices", h.Notice.List)
	secured.DELETE("/notices/:id", h.Notice.Dismiss)

	// Admin routes
	admin := secured.Group("/admin", handler.RequireRole(model.RoleAdmin))
	admin.GET("/doctors", h.Admin.ListDoctors)
	admin.POST("/doctors", h.Admin.CreateDoctor)
	admin.GET("/doctors/:id", h.Admin.GetDoctor)
	admin.PUT("/doctors/:id", h.Admin.UpdateDoctor)
	admin.DELETE("/doctors/:id", h.Admin.DeleteDoctor)
	admin.GET("/hospitals", h.Admin.ListHospitals)
	admin.POST("/hospitals", h.Admin.CreateHospital)
	admin.GET("/hospitals/:id", h.Admin.GetHospital)
	admin.PUT("/hospitals/:id", h.Admin.UpdateHospital)
	admin.DELETE("/hospitals/:id", h.Admin.DeleteHospital)
	admin.GET("/stats", h.Admin.Stats)
	admin.POST("/seed", h.Admin.Seed)
	admin.DELETE("/cache", h.Admin.ClearCache)

	// Patient routes
	patient := secured.Group("/patient", handler.RequireRole(model.RolePatient))
	patient.GET("/doctors", h.Patient.Doctors)
	patient.GET("/appointments", h.Patient.Appointments)
	patient.POST("/appointments", h.Patient.Book)
	patient.POST("/appointments/:id/cancel", h.Patient.Cancel)
	patient.GET("/profile", h.Patient.Profile)
	patient.PUT("/profile", h.Patient.UpdateProfile)

	// Doctor routes
	doctor := secured.Group("/doctor", handler.RequireRole(model.RoleDoctor))
	doctor.GET("/appointments", h.Doctor.Appointments)
	doctor.POST("/appointments/:id/advance", h.Doctor.Advance)
	doctor.POST("/appointments/:id/cancel", h.Doctor.Cancel)
	doctor.POST("/appointments/:id/complete", h.Doctor.Complete)
	doctor.GET("/earnings", h.Doctor.Earnings)
	doctor.GET("/profile", h.Doctor.Profile)
	doctor.PUT("/profile", h.Doctor.UpdateProfile)
	doctor.GET("/availability", h.Doctor.Availability)
	doctor.POST("/availability", h.Doctor.AddAvailability)
	doctor.PUT("/availability/:id", h.Doctor.UpdateAvailability)
	doctor.DELETE("/availability/:id", h.Doctor.RemoveAvailability)
	doctor.GET("/patients", h.Doctor.Patients)
	doctor.POST("/patients", h.Doctor.AddPatient)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validation.Validator
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Check(i, nil).ErrOrNil()
}
