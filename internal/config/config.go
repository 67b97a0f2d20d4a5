package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Store backends understood by storage.Open.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendMySQL    = "mysql"
	BackendPostgres = "postgres"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string
	StoreBackend   string
	MySQLDSN       string
	PostgresDSN    string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	JWTSecret      string
	SwaggerHost    string
	Timezone       string
	LogLevel       string
	SeedDemo       bool
	SeedClientID   string
	SeedDoctorsURL string
	Session        SessionConfig
}

// SessionConfig tunes the inactivity policy.
type SessionConfig struct {
	Timeout       time.Duration
	WarningWindow time.Duration
	CheckInterval time.Duration
	WarningTTL    time.Duration
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not read .env file")
	}

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		MySQLDSN:       getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/quickcare?charset=utf8mb4&parseTime=True&loc=Local"),
		PostgresDSN:    getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=quickcare port=5432 sslmode=disable"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      getEnv("JWT_SECRET", "change-me"),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),
		Timezone:       getEnv("TZ", "Asia/Kolkata"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SeedDemo:       getEnvBool("SEED_DEMO", true),
		SeedClientID:   getEnv("SEED_CLIENT_ID", "demo"),
		SeedDoctorsURL: os.Getenv("SEED_DOCTORS_URL"),
		Session: SessionConfig{
			Timeout:       getEnvDuration("SESSION_TIMEOUT", 30*time.Minute),
			WarningWindow: getEnvDuration("SESSION_WARNING_WINDOW", 5*time.Minute),
			CheckInterval: getEnvDuration("SESSION_CHECK_INTERVAL", 5*time.Minute),
			WarningTTL:    getEnvDuration("SESSION_WARNING_TTL", time.Minute),
		},
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		logrus.WithField("timezone", c.Timezone).WithError(err).Warn("unknown timezone, using UTC")
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
