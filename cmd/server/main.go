package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"quickcare/docs"
	"quickcare/internal/auth"
	"quickcare/internal/config"
	"quickcare/internal/logger"
	"quickcare/internal/portal"
	"quickcare/internal/router"
	"quickcare/internal/service"
	"quickcare/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title QuickCare Portal API
// @version 1.0
// @description Healthcare portal API: client tokens, role-gated sessions, doctor and hospital directories, appointment booking and doctor practice management.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the client token.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closer, err := storage.Open(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("store init")
	}
	defer closer.Close()
	log.WithField("backend", cfg.StoreBackend).Info("store ready")

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	clientService := service.NewClientService(store, jwtService)

	scheduler := auth.NewScheduler()
	scheduler.Start()

	hub := portal.NewHub(store, clientService, scheduler, portal.Options{
		Policy: auth.Policy{
			Timeout:         cfg.Session.Timeout,
			AbsoluteTimeout: cfg.Session.Timeout,
			WarningWindow:   cfg.Session.WarningWindow,
			CheckInterval:   cfg.Session.CheckInterval,
			WarningTTL:      cfg.Session.WarningTTL,
		},
		Location: cfg.Location(),
		SeedDemo: cfg.SeedDemo,
	})

	e := echo.New()
	e.HideBanner = true
	router.Register(e, clientService, hub, router.NewHandlers(hub))

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	log.Infof("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server start")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("server shutdown")
	}
	hub.Close()
	scheduler.Stop(shutdownCtx)
}
