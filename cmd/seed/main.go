package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"quickcare/internal/auth"
	"quickcare/internal/config"
	"quickcare/internal/logger"
	"quickcare/internal/model"
	"quickcare/internal/portal"
	"quickcare/internal/service"
	"quickcare/internal/storage"
)

// SeedDoctorData represents a doctor entry from the external source.
type SeedDoctorData struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Specialty     string `json:"specialty"`
	Experience    int    `json:"experience"`
	Hospital      string `json:"hospital"`
	City          string `json:"city"`
	Qualification string `json:"qualification"`
	Availability  string `json:"availability"`
	Bio           string `json:"bio"`
	Fee           string `json:"fee"`
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel)
	log.Info("Starting seed script...")

	ctx := context.Background()
	store, closer, err := storage.Open(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to open store")
	}
	defer closer.Close()
	log.WithField("backend", cfg.StoreBackend).Info("Connected to store")

	clientService := service.NewClientService(store, auth.NewJWTService(cfg.JWTSecret))
	hub := portal.NewHub(store, clientService, auth.NewScheduler(), portal.Options{
		Location: cfg.Location(),
		SeedDemo: true,
	})
	defer hub.Close()

	reg, err := hub.EnsureClient(ctx, cfg.SeedClientID)
	if err != nil {
		log.WithError(err).Fatal("Failed to seed demo data")
	}
	log.WithField("client_id", reg.ClientID).Info("Demo data seeded")

	if cfg.SeedDoctorsURL != "" {
		if err := seedDoctorsFrom(ctx, hub, reg.ClientID, cfg.SeedDoctorsURL, log); err != nil {
			log.WithError(err).Fatal("Failed to seed doctors")
		}
	}

	log.WithFields(logrus.Fields{
		"client_id":  reg.ClientID,
		"token":      reg.Token,
		"expires_at": reg.ExpiresAt,
	}).Info("Seed completed successfully!")
}

// seedDoctorsFrom adds the doctors listed at url to the client's directory.
func seedDoctorsFrom(ctx context.Context, hub *portal.Hub, clientID, url string, log *logrus.Logger) error {
	log.WithField("url", url).Info("Fetching doctors")
	data, err := fetchDoctorsFromAPI(url)
	if err != nil {
		return err
	}

	doctors := make([]model.Doctor, 0, len(data))
	skipped := 0
	for _, item := range data {
		fee := decimal.Zero
		if strings.TrimSpace(item.Fee) != "" {
			fee, err = decimal.NewFromString(item.Fee)
			if err != nil {
				log.WithField("email", item.Email).Warnf("Skipping doctor with invalid fee: %s", item.Fee)
				skipped++
				continue
			}
		}
		doctors = append(doctors, model.Doctor{
			Name:          item.Name,
			Email:         item.Email,
			Specialty:     item.Specialty,
			Experience:    item.Experience,
			Hospital:      item.Hospital,
			City:          item.City,
			Qualification: item.Qualification,
			Availability:  model.Availability(strings.ToLower(item.Availability)),
			Bio:           item.Bio,
			Fee:           fee,
		})
	}

	p, err := hub.Open(ctx, clientID)
	if err != nil {
		return err
	}
	defer p.Release()

	added, err := p.Seeder.SeedDoctors(ctx, doctors)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"fetched": len(data),
		"added":   added,
		"skipped": skipped + len(doctors) - added,
	}).Info("Doctors seeded")
	return nil
}

// fetchDoctorsFromAPI fetches doctor data from the external source.
func fetchDoctorsFromAPI(url string) ([]SeedDoctorData, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var doctors []SeedDoctorData
	if err := json.Unmarshal(body, &doctors); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return doctors, nil
}
