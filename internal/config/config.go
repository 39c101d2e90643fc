package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	NotificationModeLog   = "log"
	NotificationModeHTTP  = "http"
	NotificationModeKafka = "kafka"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Storage       StorageConfig       `toml:"storage"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Redis         RedisConfig         `toml:"redis"`
	Kafka         KafkaConfig         `toml:"kafka"`
	Notifications NotificationsConfig `toml:"notifications"`
	Booking       BookingConfig       `toml:"booking"`
	RateLimit     RateLimitConfig     `toml:"ratelimit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host                string `toml:"host"`
	Port                int    `toml:"port"`
	User                string `toml:"user"`
	Password            string `toml:"password"`
	DBName              string `toml:"dbname"`
	SSLMode             string `toml:"sslmode"`
	MaxOpenConns        int    `toml:"max_open_conns"`
	MaxIdleConns        int    `toml:"max_idle_conns"`
	ConnMaxLifetime     int    `toml:"conn_max_lifetime"`
	SerializableRetries int    `toml:"serializable_retries"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type StorageConfig struct {
	// Driver: "postgres" или "memory"
	Driver string `toml:"driver"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled          bool   `toml:"enabled"`
	Addr             string `toml:"addr"`
	Password         string `toml:"password"`
	DB               int    `toml:"db"`
	BranchTTLSeconds int    `toml:"branch_ttl_seconds"`
}

// BranchTTL время жизни закешированного филиала
func (c RedisConfig) BranchTTL() time.Duration {
	return time.Duration(c.BranchTTLSeconds) * time.Second
}

type KafkaConfig struct {
	Brokers        []string `toml:"brokers"`
	TopicConfirmed string   `toml:"topic_confirmed"`
	TopicCancelled string   `toml:"topic_cancelled"`
}

type NotificationsConfig struct {
	// Mode: "log" (имитация), "http" или "kafka"
	Mode       string `toml:"mode"`
	URL        string `toml:"url"`
	Timeout    int    `toml:"timeout"`
	Workers    int    `toml:"workers"`
	BufferSize int    `toml:"buffer_size"`
}

type BookingConfig struct {
	SlotDurationMinutes       int    `toml:"slot_duration_minutes"`
	ReferenceMaxAttempts      int    `toml:"reference_max_attempts"`
	DefaultCancellationReason string `toml:"default_cancellation_reason"`
	Timezone                  string `toml:"timezone"`
}

// Location часовой пояс филиалов
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию
// и переопределения из окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:                "localhost",
			Port:                5432,
			SSLMode:             "disable",
			MaxOpenConns:        25,
			MaxIdleConns:        5,
			ConnMaxLifetime:     300,
			SerializableRetries: 3,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "appointment-service",
		},
		Redis: RedisConfig{
			Addr:             "localhost:6379",
			BranchTTLSeconds: 600,
		},
		Kafka: KafkaConfig{
			TopicConfirmed: "appointment.confirmed",
			TopicCancelled: "appointment.cancelled",
		},
		Notifications: NotificationsConfig{
			Mode:       NotificationModeLog,
			Timeout:    5,
			Workers:    2,
			BufferSize: 1000,
		},
		Booking: BookingConfig{
			SlotDurationMinutes:       30,
			ReferenceMaxAttempts:      5,
			DefaultCancellationReason: "Customer requested cancellation",
			Timezone:                  "UTC",
		},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("%w: storage.driver=%q", ErrInvalidConfig, c.Storage.Driver)
	}

	switch c.Notifications.Mode {
	case NotificationModeLog:
	case NotificationModeHTTP:
		if strings.TrimSpace(c.Notifications.URL) == "" {
			return fmt.Errorf("%w: notifications.url is required for http mode", ErrInvalidConfig)
		}
	case NotificationModeKafka:
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("%w: kafka.brokers is required for kafka mode", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: notifications.mode=%q", ErrInvalidConfig, c.Notifications.Mode)
	}

	if c.Booking.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: booking.slot_duration_minutes must be positive", ErrInvalidConfig)
	}
	if c.Booking.ReferenceMaxAttempts <= 0 {
		return fmt.Errorf("%w: booking.reference_max_attempts must be positive", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone=%q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: ratelimit.rps and ratelimit.burst must be positive", ErrInvalidConfig)
	}

	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitBrokers(v)
	}
}

func splitBrokers(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
