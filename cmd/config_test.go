package cmd_test

import (
	"testing"
	"time"

	"foodfast/cmd"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := cmd.ConfigFromEnv(lookupFrom(map[string]string{
		"DB_USER": "app",
		"DB_NAME": "foodfast",
	}))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, cmd.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "disable", cfg.DBSslMode)
	assert.Equal(t, "foodfast-lifecycle", cfg.KafkaConsumerGroup)
	assert.Equal(t, "order.changed", cfg.KafkaOrderChangedTopic)
	assert.Equal(t, "drone.changed", cfg.KafkaDroneChangedTopic)
	assert.Equal(t, 5, cfg.ReservationMaxAttempts)
	assert.Equal(t, 20*time.Millisecond, cfg.ReservationRetryInterval)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "0 0 * * *", cfg.DailyResetSchedule)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t,
		"host=localhost port=5432 user=app password= dbname=foodfast sslmode=disable",
		cfg.PostgresDSN(),
	)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	cfg, err := cmd.ConfigFromEnv(lookupFrom(map[string]string{
		"HTTP_PORT":                  "9090",
		"DB_DRIVER":                  "SQLite",
		"SQLITE_PATH":                "/tmp/ff.db",
		"KAFKA_HOST":                 " kafka-1:9092, kafka-2:9092 ,",
		"RESERVATION_MAX_ATTEMPTS":   "8",
		"RESERVATION_RETRY_INTERVAL": "5ms",
		"LOG_LEVEL":                  "DEBUG",
		"FLEET_SEED_PATH":            "fleet.yaml",
	}))

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, cmd.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/ff.db", cfg.SQLitePath)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers())
	assert.Equal(t, 8, cfg.ReservationMaxAttempts)
	assert.Equal(t, 5*time.Millisecond, cfg.ReservationRetryInterval)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "fleet.yaml", cfg.FleetSeedPath)
}

func TestConfigFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "postgres without credentials",
			env:     map[string]string{},
			wantErr: "DB_USER is required for postgres",
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"DB_DRIVER": "mysql"},
			wantErr: `DB_DRIVER must be "postgres" or "sqlite"`,
		},
		{
			name:    "port",
			env:     map[string]string{"DB_DRIVER": "sqlite", "HTTP_PORT": "http"},
			wantErr: "HTTP_PORT must be numeric",
		},
		{
			name:    "attempts",
			env:     map[string]string{"DB_DRIVER": "sqlite", "RESERVATION_MAX_ATTEMPTS": "0"},
			wantErr: "RESERVATION_MAX_ATTEMPTS must be a positive integer",
		},
		{
			name:    "interval",
			env:     map[string]string{"DB_DRIVER": "sqlite", "RESERVATION_RETRY_INTERVAL": "soon"},
			wantErr: "RESERVATION_RETRY_INTERVAL must be a positive duration",
		},
		{
			name:    "log level",
			env:     map[string]string{"DB_DRIVER": "sqlite", "LOG_LEVEL": "loud"},
			wantErr: "LOG_LEVEL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cmd.ConfigFromEnv(lookupFrom(tt.env))
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
