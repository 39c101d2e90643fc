package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[storage]
driver = "memory"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Booking.SlotDurationMinutes)
	assert.Equal(t, NotificationModeLog, cfg.Notifications.Mode)
	assert.Equal(t, "UTC", cfg.Booking.Timezone)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	path := writeConfig(t, `
[notifications]
mode = "kafka"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad port", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "sqlite" }},
		{"http without url", func(c *Config) { c.Notifications.Mode = NotificationModeHTTP }},
		{"kafka without brokers", func(c *Config) { c.Notifications.Mode = NotificationModeKafka }},
		{"unknown mode", func(c *Config) { c.Notifications.Mode = "sms" }},
		{"zero slot", func(c *Config) { c.Booking.SlotDurationMinutes = 0 }},
		{"zero attempts", func(c *Config) { c.Booking.ReferenceMaxAttempts = 0 }},
		{"bad timezone", func(c *Config) { c.Booking.Timezone = "Mars/Olympus" }},
		{"rate limit without rps", func(c *Config) {
			c.RateLimit.Enabled = true
			c.RateLimit.RPS = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "appointments", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=appointments sslmode=disable", c.DSN())
}
