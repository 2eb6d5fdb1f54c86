package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"

	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

type Config struct {
	Env     string
	Port    string
	Storage string

	DBDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTTTL    time.Duration

	BatchSize    int
	PollInterval time.Duration
}

// Load بارگذاری .env (اگر وجود داشته باشد) و سپس متغیرهای محیطی
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the process environment without touching .env files.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Env:           getenv("APP_ENV", EnvDevelopment),
		Port:          getenv("APP_PORT", "8080"),
		Storage:       strings.ToLower(getenv("STORAGE", StorageMySQL)),
		DBDSN:         os.Getenv("DB_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTL:        getDuration("JWT_TTL", 24*time.Hour),
		BatchSize:     getInt("BATCH_SIZE", 100),
		PollInterval:  getDuration("WORKER_POLL_INTERVAL", time.Second),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "development-secret"
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	switch c.Storage {
	case StorageMySQL:
		if c.DBDSN == "" {
			errs = append(errs, errors.New("DB_DSN is not set"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE must be %q or %q, got %q", StorageMySQL, StorageMemory, c.Storage))
	}
	if c.JWTSecret == "" && c.Env != EnvDevelopment {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	return errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
