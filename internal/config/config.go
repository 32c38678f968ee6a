package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"backoffice/internal/utils"
)

const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"
)

type Config struct {
	Port int

	StoreBackend string
	SupabaseURL  string
	SupabaseKey  string
	StoreTimeout time.Duration

	DB DBConfig

	RedisAddr         string
	AccessTokenSecret []byte
	QRBaseURL         string
	CORSOrigins       []string
	LogLevel          logrus.Level
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// Load reads the environment (and .env, if present).
func Load() (*Config, error) {
	cfg := &Config{
		StoreBackend: getenv("STORE_BACKEND", BackendREST),
		SupabaseURL:  os.Getenv("SUPABASE_URL"),
		SupabaseKey:  os.Getenv("SUPABASE_KEY"),
		DB: DBConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     getenv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Database: os.Getenv("DB_DATABASE"),
		},
		RedisAddr:         getenv("REDIS_ADDR", "localhost:6379"),
		AccessTokenSecret: []byte(os.Getenv("ACCESS_TOKEN_SECRET")),
		QRBaseURL:         getenv("QR_BASE_URL", "https://menu.example.com/table"),
		CORSOrigins:       utils.SplitList(getenv("CORS_ORIGINS", "http://localhost:3000")),
	}

	port, err := strconv.Atoi(getenv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	cfg.Port = port

	cfg.StoreTimeout, err = time.ParseDuration(getenv("STORE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_TIMEOUT: %w", err)
	}

	cfg.LogLevel, err = logrus.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.AccessTokenSecret) == 0 {
		return fmt.Errorf("ACCESS_TOKEN_SECRET environment variable is required")
	}

	switch c.StoreBackend {
	case BackendREST:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY are required for the rest backend")
		}
	case BackendPostgres:
		if c.DB.Host == "" || c.DB.User == "" || c.DB.Database == "" {
			return fmt.Errorf("DB_HOST, DB_USERNAME and DB_DATABASE are required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
