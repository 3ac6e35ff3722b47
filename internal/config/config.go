package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Profile store backends selectable through PROFILE_STORE.
const (
	StoreSurreal = "surreal"
	StoreFile    = "file"
)

const (
	defaultQueryTimeout   = 5 * time.Second
	defaultExecuteTimeout = 10 * time.Second
	defaultPageCacheTTL   = 5 * time.Minute
	defaultServerAddr     = ":8080"
	defaultStorePath      = "data/profiles.json"
)

// Provider exposes configuration values to the rest of the application.
// Consumers depend on this interface so tests can substitute a partial mock.
type Provider interface {
	GetDBURL() string
	GetDBNs() string
	GetDBDb() string
	GetDBUser() string
	GetDBPass() string
	GetDBQueryTimeout() time.Duration
	GetDBExecuteTimeout() time.Duration
	GetSessionSecret() string
	GetServerAddr() string
	GetAppBaseURL() string
	GetProfileStore() string
	GetProfileStorePath() string
	GetPageCacheTTL() time.Duration
}

// Config holds all configuration for the application.
type Config struct {
	DBUrl            string
	DBNs             string
	DBDb             string
	DBUser           string
	DBPass           string
	DBQueryTimeout   time.Duration
	DBExecuteTimeout time.Duration
	SessionSecret    string
	ServerAddr       string
	AppBaseURL       string
	ProfileStore     string
	ProfileStorePath string
	PageCacheTTL     time.Duration
}

// New loads configuration from environment variables, reading a .env file first
// when one is present.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		DBUrl:            os.Getenv("SURREAL_URL"),
		DBUser:           os.Getenv("SURREAL_USER"),
		DBPass:           os.Getenv("SURREAL_PASS"),
		DBNs:             os.Getenv("SURREAL_NS"),
		DBDb:             os.Getenv("SURREAL_DB"),
		DBQueryTimeout:   durationEnv("DB_QUERY_TIMEOUT", defaultQueryTimeout),
		DBExecuteTimeout: durationEnv("DB_EXECUTE_TIMEOUT", defaultExecuteTimeout),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		ServerAddr:       stringEnv("SERVER_ADDR", defaultServerAddr),
		AppBaseURL:       stringEnv("APP_BASE_URL", "http://localhost:8080"),
		ProfileStore:     stringEnv("PROFILE_STORE", StoreSurreal),
		ProfileStorePath: stringEnv("PROFILE_STORE_PATH", defaultStorePath),
		PageCacheTTL:     durationEnv("PAGE_CACHE_TTL", defaultPageCacheTTL),
	}
}

// Validate checks values that every entrypoint depends on. Backend specific
// settings (the SurrealDB endpoint, for example) are checked by the component
// that uses them.
func (c *Config) Validate() error {
	if c.DBQueryTimeout <= 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must be a positive duration, got %s", c.DBQueryTimeout)
	}
	if c.DBExecuteTimeout <= 0 {
		return fmt.Errorf("DB_EXECUTE_TIMEOUT must be a positive duration, got %s", c.DBExecuteTimeout)
	}
	if c.PageCacheTTL <= 0 {
		return fmt.Errorf("PAGE_CACHE_TTL must be a positive duration, got %s", c.PageCacheTTL)
	}
	switch c.ProfileStore {
	case StoreSurreal:
	case StoreFile:
		if c.ProfileStorePath == "" {
			return fmt.Errorf("PROFILE_STORE_PATH is required when PROFILE_STORE=%s", StoreFile)
		}
	default:
		return fmt.Errorf("unknown PROFILE_STORE %q (want %q or %q)", c.ProfileStore, StoreSurreal, StoreFile)
	}
	return nil
}

func (c *Config) GetDBURL() string                   { return c.DBUrl }
func (c *Config) GetDBNs() string                    { return c.DBNs }
func (c *Config) GetDBDb() string                    { return c.DBDb }
func (c *Config) GetDBUser() string                  { return c.DBUser }
func (c *Config) GetDBPass() string                  { return c.DBPass }
func (c *Config) GetDBQueryTimeout() time.Duration   { return c.DBQueryTimeout }
func (c *Config) GetDBExecuteTimeout() time.Duration { return c.DBExecuteTimeout }
func (c *Config) GetSessionSecret() string           { return c.SessionSecret }
func (c *Config) GetServerAddr() string              { return c.ServerAddr }
func (c *Config) GetAppBaseURL() string              { return c.AppBaseURL }
func (c *Config) GetProfileStore() string            { return c.ProfileStore }
func (c *Config) GetProfileStorePath() string        { return c.ProfileStorePath }
func (c *Config) GetPageCacheTTL() time.Duration     { return c.PageCacheTTL }

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// durationEnv parses a Go duration string. Malformed values fall back to the
// default and are reported, so a typo does not silently disable a timeout.
func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("invalid %s %q, using default %s", key, raw, fallback)
		return fallback
	}
	return d
}
