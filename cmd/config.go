package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort                 string
	DBDriver                 string
	DBHost                   string
	DBPort                   string
	DBUser                   string
	DBPassword               string
	DBName                   string
	DBSslMode                string
	SQLitePath               string
	KafkaHost                string
	KafkaConsumerGroup       string
	KafkaOrderChangedTopic   string
	KafkaDroneChangedTopic   string
	ReservationMaxAttempts   int
	ReservationRetryInterval time.Duration
	FleetSeedPath            string
	LogLevel                 zerolog.Level
	DailyResetSchedule       string
}

// LoadConfig reads the configuration from the environment. Values from a
// .env file in the working directory are loaded first when the file exists;
// variables already set in the environment win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return ConfigFromEnv(os.LookupEnv)
}

// ConfigFromEnv builds a Config from lookup, applying defaults for every key
// except the PostgreSQL credentials.
func ConfigFromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:               get("HTTP_PORT", "8080"),
		DBDriver:               strings.ToLower(get("DB_DRIVER", DriverPostgres)),
		DBHost:                 get("DB_HOST", "localhost"),
		DBPort:                 get("DB_PORT", "5432"),
		DBUser:                 get("DB_USER", ""),
		DBPassword:             get("DB_PASSWORD", ""),
		DBName:                 get("DB_NAME", ""),
		DBSslMode:              get("DB_SSLMODE", "disable"),
		SQLitePath:             get("SQLITE_PATH", "foodfast.db"),
		KafkaHost:              get("KAFKA_HOST", ""),
		KafkaConsumerGroup:     get("KAFKA_CONSUMER_GROUP", "foodfast-lifecycle"),
		KafkaOrderChangedTopic: get("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),
		KafkaDroneChangedTopic: get("KAFKA_DRONE_CHANGED_TOPIC", "drone.changed"),
		FleetSeedPath:          get("FLEET_SEED_PATH", ""),
		DailyResetSchedule:     get("DAILY_RESET_SCHEDULE", "0 0 * * *"),
	}

	var errList []error

	attempts, err := strconv.Atoi(get("RESERVATION_MAX_ATTEMPTS", "5"))
	if err != nil || attempts < 1 {
		errList = append(errList, errors.New("RESERVATION_MAX_ATTEMPTS must be a positive integer"))
	}
	cfg.ReservationMaxAttempts = attempts

	interval, err := time.ParseDuration(get("RESERVATION_RETRY_INTERVAL", "20ms"))
	if err != nil || interval <= 0 {
		errList = append(errList, errors.New("RESERVATION_RETRY_INTERVAL must be a positive duration"))
	}
	cfg.ReservationRetryInterval = interval

	level, err := zerolog.ParseLevel(strings.ToLower(get("LOG_LEVEL", "info")))
	if err != nil {
		errList = append(errList, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	cfg.LogLevel = level

	errList = append(errList, cfg.validate())

	if err = errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errList []error

	if _, err := strconv.Atoi(c.HTTPPort); err != nil {
		errList = append(errList, errors.New("HTTP_PORT must be numeric"))
	}

	switch c.DBDriver {
	case DriverPostgres:
		if c.DBUser == "" {
			errList = append(errList, errors.New("DB_USER is required for postgres"))
		}
		if c.DBName == "" {
			errList = append(errList, errors.New("DB_NAME is required for postgres"))
		}
	case DriverSQLite:
	default:
		errList = append(errList, fmt.Errorf("DB_DRIVER must be %q or %q", DriverPostgres, DriverSQLite))
	}

	return errors.Join(errList...)
}

// PostgresDSN returns the connection string for the configured database.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// KafkaEnabled reports whether a broker is configured.
func (c Config) KafkaEnabled() bool {
	return c.KafkaHost != ""
}
