package config

import (
	"fmt"
	"os"
)

type SMTPConfig struct {
	Host        string
	Port        string
	User        string
	Pass        string
	SenderEmail string
}

type AppConfig struct {
	HTTPAddr       string
	DatabaseURL    string
	JWTSecret      string
	GoogleClientID string
	SMTP           SMTPConfig
}

func Load() AppConfig {
	return AppConfig{
		HTTPAddr:       getEnv("HTTP_ADDR", ":5000"),
		DatabaseURL:    databaseURL(),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		SMTP: SMTPConfig{
			Host:        getEnv("SMTP_HOST", ""),
			Port:        getEnv("SMTP_PORT", "465"),
			User:        getEnv("SMTP_USER", ""),
			Pass:        getEnv("SMTP_PASSWORD", ""),
			SenderEmail: getEnv("SENDER_EMAIL", ""),
		},
	}
}

// databaseURL prefers a full DATABASE_URL and falls back to assembling one
// from the individual DB_* vars.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "notes"),
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
