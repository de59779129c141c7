package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration, loaded from environment
type Config struct {
	Server       ServerConfig
	Azure        AzureConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Availability AvailabilityConfig
}

type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

// AzureConfig carries the app registration used for the on-behalf-of flow
type AzureConfig struct {
	ClientID     string
	ClientSecret string
	TenantID     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LoggerConfig struct {
	Level  string
	Format string
}

// AvailabilityConfig tunes the slot suggestion engine
type AvailabilityConfig struct {
	// TreatUnknownAsBusy flags attendees with unknown availability as
	// conflicting instead of available. Off by default: external and
	// lookup-failed attendees are optimistically counted as free.
	TreatUnknownAsBusy bool
	LookupTimeoutSec   int
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads .env (if present) and the environment into the config singleton
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 3001)
	v.SetDefault("ALLOWED_ORIGINS", []string{
		"https://localhost:3000",
		"https://outlook.office.com",
		"https://outlook.office365.com",
	})
	v.SetDefault("AZURE_TENANT_ID", "common")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "meeting_optimizer")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("AVAILABILITY_TREAT_UNKNOWN_AS_BUSY", false)
	v.SetDefault("AVAILABILITY_LOOKUP_TIMEOUT_SEC", 10)

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetInt("PORT"),
			AllowedOrigins: v.GetStringSlice("ALLOWED_ORIGINS"),
		},
		Azure: AzureConfig{
			ClientID:     v.GetString("AZURE_CLIENT_ID"),
			ClientSecret: v.GetString("AZURE_CLIENT_SECRET"),
			TenantID:     v.GetString("AZURE_TENANT_ID"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Availability: AvailabilityConfig{
			TreatUnknownAsBusy: v.GetBool("AVAILABILITY_TREAT_UNKNOWN_AS_BUSY"),
			LookupTimeoutSec:   v.GetInt("AVAILABILITY_LOOKUP_TIMEOUT_SEC"),
		},
	}

	if cfg.Azure.ClientID == "" || cfg.Azure.ClientSecret == "" {
		return nil, fmt.Errorf("AZURE_CLIENT_ID and AZURE_CLIENT_SECRET must be set")
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()
	return cfg, nil
}

// GetSafe returns the loaded config, or false when Load has not run
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return nil, false
	}
	return instance, true
}

// SetForTesting replaces the config singleton; test helper only
func SetForTesting(cfg *Config) {
	mu.Lock()
	instance = cfg
	mu.Unlock()
}
