package config

import (
	"os"
	"strconv"
)

// Config struct holds application configuration
// This is a simple way to make config accessible globally.
// A more advanced approach might use dependency injection.
type Config struct {
	Port              string
	DatabaseURL       string
	UploadDir         string
	ForecastBackend   string
	MaxForecastGroups int
	GeminiAPIKey      string
}

// AppConfig holds the application-wide configuration
var AppConfig Config

// Load populates AppConfig from environment variables.
func Load() {
	AppConfig = Config{
		Port:              getEnv("PORT", "3000"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		ForecastBackend:   os.Getenv("FORECAST_BACKEND"),
		MaxForecastGroups: getEnvInt("MAX_FORECAST_GROUPS", 200),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
