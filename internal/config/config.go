package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port               int
	DatabasePath       string
	SessionLifetime    time.Duration
	CORSAllowedOrigins []string

	GoogleKey         string
	GoogleSecret      string
	GoogleCallbackURL string
}

// Load reads the configuration from the environment. Call godotenv.Load first
// to pick up a local .env file.
func Load() (Config, error) {
	cfg := Config{
		Port:               8080,
		DatabasePath:       getEnv("DATABASE_PATH", "clubdesk.db"),
		SessionLifetime:    24 * time.Hour,
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		GoogleKey:          os.Getenv("GOOGLE_KEY"),
		GoogleSecret:       os.Getenv("GOOGLE_SECRET"),
		GoogleCallbackURL:  getEnv("GOOGLE_CALLBACK_URL", "http://localhost:8080/auth/google/callback"),
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v := os.Getenv("SESSION_LIFETIME"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid SESSION_LIFETIME %q", v)
		}
		cfg.SessionLifetime = d
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
