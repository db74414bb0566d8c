package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration, read from the environment with
// an optional .env file.
type Config struct {
	HTTPAddr string
	LogLevel string

	Database DatabaseConfig
}

// DatabaseConfig configures the ledger store connection.
type DatabaseConfig struct {
	Driver          string // "postgres" or "sqlite"
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Seed            bool
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "ledgerd.db")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("DB_SEED", false)

	return &Config{
		HTTPAddr: viper.GetString("HTTP_ADDR"),
		LogLevel: viper.GetString("LOG_LEVEL"),
		Database: DatabaseConfig{
			Driver:          viper.GetString("DB_DRIVER"),
			DSN:             viper.GetString("DB_DSN"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: viper.GetDuration("DB_CONN_MAX_LIFETIME"),
			Seed:            viper.GetBool("DB_SEED"),
		},
	}, nil
}
