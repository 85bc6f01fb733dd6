package config

import (
	"os"
	"strings"
	"time"
)

type Env struct {
	AppAddr          string
	GinMode          string
	DBDSN            string
	JWTSecret        string
	SweepInterval    time.Duration
	GatewayBaseURL   string
	GatewayServerKey string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/ferry_app?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	sweep := 5 * time.Minute
	if raw := strings.TrimSpace(os.Getenv("SWEEP_INTERVAL")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			sweep = d
		}
	}

	return Env{
		AppAddr:          appAddr,
		GinMode:          strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:            dsn,
		JWTSecret:        secret,
		SweepInterval:    sweep,
		GatewayBaseURL:   strings.TrimSpace(os.Getenv("GATEWAY_BASE_URL")),
		GatewayServerKey: strings.TrimSpace(os.Getenv("GATEWAY_SERVER_KEY")),
	}
}
