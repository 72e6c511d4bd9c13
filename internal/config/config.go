package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cast"
)

// Config carries everything the process needs, loaded once in main and passed
// down explicitly. No package-level state.
type Config struct {
	Addr        string
	DatabaseDSN string

	MidtransServerKey  string
	MidtransClientKey  string
	MidtransProduction bool
	GatewayTimeout     time.Duration

	S3Bucket         string
	S3PublicBaseURL  string
	OrderEventsQueue string
	MetricsNamespace string

	JWTSecret string
}

// Load reads configuration from the environment. Only the database DSN and
// the Midtrans server key are hard requirements; everything else has a
// development default or degrades to disabled.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:               getenv("HTTP_ADDR", ":8080"),
		DatabaseDSN:        os.Getenv("DATABASE_DSN"),
		MidtransServerKey:  os.Getenv("MIDTRANS_SERVER_KEY"),
		MidtransClientKey:  os.Getenv("MIDTRANS_CLIENT_KEY"),
		MidtransProduction: cast.ToBool(os.Getenv("MIDTRANS_IS_PRODUCTION")),
		GatewayTimeout:     cast.ToDuration(getenv("GATEWAY_TIMEOUT", "10s")),
		S3Bucket:           os.Getenv("S3_BUCKET"),
		S3PublicBaseURL:    os.Getenv("S3_PUBLIC_BASE_URL"),
		OrderEventsQueue:   os.Getenv("ORDER_EVENTS_QUEUE_URL"),
		MetricsNamespace:   getenv("METRICS_NAMESPACE", "BakeBliss"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
	}

	if cfg.DatabaseDSN == "" {
		return nil, errors.New("DATABASE_DSN is required")
	}
	if cfg.MidtransServerKey == "" {
		return nil, errors.New("MIDTRANS_SERVER_KEY is required")
	}
	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = 10 * time.Second
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
