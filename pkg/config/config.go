// Package config reads the backend configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port   string
	APIURL string

	// SQLite is used unless DBHost is set
	DBPath     string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	AuthJWTSecret string

	// Publishing ledger changes is disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string

	RecurringInterval time.Duration
}

// Load reads a .env file in the working directory if there is one and
// returns the configuration from the environment.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded environment from .env")
	}

	return Config{
		Port:   getEnv("PORT", "8080"),
		APIURL: getEnv("API_URL", ""),

		DBPath:     getEnv("DB_PATH", "data/ledger.db"),
		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "ledger"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "ledger"),

		RecurringInterval: getEnvDuration("RECURRING_INTERVAL", time.Hour),
	}
}

// Validate returns all problems with the configuration at once.
func (c Config) Validate() error {
	var errs []error

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.APIURL == "" {
		errs = append(errs, errors.New("API_URL must be set. If you are unsure, set it to 'http://localhost:8080'"))
	} else if _, err := url.Parse(c.APIURL); err != nil {
		errs = append(errs, fmt.Errorf("invalid API_URL '%s': %w", c.APIURL, err))
	}

	if c.DBHost == "" && c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH must not be empty when DB_HOST is not set"))
	}

	if c.DBHost != "" && c.DBUser == "" {
		errs = append(errs, errors.New("DB_USER must be set when DB_HOST is set"))
	}

	if c.AuthJWTSecret == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET must be set"))
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Errorf("invalid AMQP URL: %w", err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			errs = append(errs, fmt.Errorf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", u.Scheme))
		}

		if c.AMQPExchange == "" {
			errs = append(errs, errors.New("AMQP_EXCHANGE must not be empty when AMQP_URL is set"))
		}
	}

	if c.RecurringInterval < time.Minute {
		errs = append(errs, fmt.Errorf("invalid recurring interval %v: must be at least 1 minute", c.RecurringInterval))
	}

	return errors.Join(errs...)
}

// URL returns the parsed API_URL.
func (c Config) URL() (*url.URL, error) {
	return url.Parse(c.APIURL)
}

// Postgres reports whether PostgreSQL is configured.
func (c Config) Postgres() bool {
	return c.DBHost != ""
}

// PostgresDSN returns the connection string for PostgreSQL.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// SQLiteDSN returns the data source name for the SQLite database file.
func (c Config) SQLiteDSN() string {
	return c.DBPath
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Warn().Str("key", key).Str("value", value).Msg("not a number, using default")
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", value).Msg("not a duration, using default")
	}
	return defaultValue
}
