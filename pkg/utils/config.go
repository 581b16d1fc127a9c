package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	CommitModeTransactional = "transactional"
	CommitModeSequential    = "sequential"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Booking  BookingConfig
	Import   ImportConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	StoreDriver string
}

type DatabaseConfig struct {
	Host      string
	Port      string
	Name      string
	User      string
	Password  string
	SSLMode   string
	MaxConns  int32
	SlowQuery time.Duration // statements slower than this are logged at warn
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	ExpiryHours int
	BcryptCost  int
}

type BookingConfig struct {
	CommitMode     string
	SeatLockTTLSec int
}

func (b BookingConfig) SeatLockTTL() time.Duration {
	return time.Duration(b.SeatLockTTLSec) * time.Second
}

type ImportConfig struct {
	BatchSize int
}

// LoadConfig reads .env when present, then lets the environment override it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "cinema-ticketing")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_SLOW_QUERY_MS", 200)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_EXPIRY_HOURS", 24)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("BOOKING_COMMIT_MODE", CommitModeTransactional)
	v.SetDefault("SEAT_LOCK_TTL_SECONDS", 30)
	v.SetDefault("IMPORT_BATCH_SIZE", 500)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Port:        v.GetString("PORT"),
			Debug:       v.GetBool("DEBUG"),
			LogPath:     v.GetString("LOG_PATH"),
			StoreDriver: strings.ToLower(v.GetString("STORE_DRIVER")),
		},
		Database: DatabaseConfig{
			Host:      v.GetString("DB_HOST"),
			Port:      v.GetString("DB_PORT"),
			Name:      v.GetString("DB_NAME"),
			User:      v.GetString("DB_USER"),
			Password:  v.GetString("DB_PASS"),
			SSLMode:   v.GetString("DB_SSLMODE"),
			MaxConns:  v.GetInt32("DB_MAX_CONNS"),
			SlowQuery: time.Duration(v.GetInt("DB_SLOW_QUERY_MS")) * time.Millisecond,
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			ExpiryHours: v.GetInt("SESSION_EXPIRY_HOURS"),
			BcryptCost:  v.GetInt("BCRYPT_COST"),
		},
		Booking: BookingConfig{
			CommitMode:     strings.ToLower(v.GetString("BOOKING_COMMIT_MODE")),
			SeatLockTTLSec: v.GetInt("SEAT_LOCK_TTL_SECONDS"),
		},
		Import: ImportConfig{
			BatchSize: v.GetInt("IMPORT_BATCH_SIZE"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.App.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return errors.New("STORE_DRIVER must be postgres or memory")
	}

	switch c.Booking.CommitMode {
	case CommitModeTransactional, CommitModeSequential:
	default:
		return errors.New("BOOKING_COMMIT_MODE must be transactional or sequential")
	}

	if c.Import.BatchSize <= 0 || c.Import.BatchSize > 500 {
		c.Import.BatchSize = 500
	}

	return nil
}
