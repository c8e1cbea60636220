// Package config builds the validated runtime configuration from the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ManuelReschke/PayHook/internal/pkg/env"
	"github.com/ManuelReschke/PayHook/internal/pkg/history"
	"github.com/ManuelReschke/PayHook/internal/pkg/relay"
)

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

type Config struct {
	Host            string `validate:"required"`
	Port            string `validate:"required,numeric"`
	Mode            string `validate:"oneof=development production"`
	ClientURL       string `validate:"required,url"`
	ClientBuildPath string `validate:"required"`
	HistoryCapacity int    `validate:"min=1,max=100000"`
	ClientBuffer    int    `validate:"min=1"`
	ToggleLimit     int    `validate:"min=1"`

	MonitorUser     string
	MonitorPassword string

	Redis RedisConfig
	Kafka KafkaConfig
	Nats  NatsConfig
	Relay RelayConfig
}

type RedisConfig struct {
	Host     string
	Port     string `validate:"required_with=Host,omitempty,numeric"`
	Password string
	Channel  string
}

type KafkaConfig struct {
	Brokers []string `validate:"dive,hostname_port"`
	Topic   string
}

type NatsConfig struct {
	URL     string `validate:"omitempty,url"`
	Subject string
}

type RelayConfig struct {
	QueueSize int `validate:"min=1"`
}

var validate = validator.New()

// Load reads the configuration. env.SetupEnvFile should run first.
func Load() (*Config, error) {
	historyCapacity, err := intEnv("HISTORY_CAPACITY", history.DefaultCapacity)
	if err != nil {
		return nil, err
	}
	clientBuffer, err := intEnv("CLIENT_BUFFER", 64)
	if err != nil {
		return nil, err
	}
	toggleLimit, err := intEnv("TOGGLE_RATE_LIMIT", 30)
	if err != nil {
		return nil, err
	}
	queueSize, err := intEnv("RELAY_QUEUE_SIZE", relay.DefaultQueueSize)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Host:            env.GetEnv("APP_HOST", "0.0.0.0"),
		Port:            env.GetEnv("APP_PORT", env.GetEnv("PORT", "3001")),
		Mode:            strings.ToLower(env.GetEnv("APP_ENV", ModeDevelopment)),
		ClientURL:       env.GetEnv("CLIENT_URL", "http://localhost:3000"),
		ClientBuildPath: env.GetEnv("CLIENT_BUILD_PATH", "client/build"),
		HistoryCapacity: historyCapacity,
		ClientBuffer:    clientBuffer,
		ToggleLimit:     toggleLimit,
		MonitorUser:     env.GetEnv("MONITOR_USER", "admin"),
		MonitorPassword: env.GetEnv("MONITOR_PASSWORD", ""),
		Redis: RedisConfig{
			Host:     env.GetEnv("CACHE_HOST", ""),
			Port:     env.GetEnv("CACHE_PORT", "6379"),
			Password: env.GetEnv("CACHE_PASSWORD", ""),
			Channel:  env.GetEnv("RELAY_REDIS_CHANNEL", relay.DefaultRedisChannel),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(env.GetEnv("KAFKA_BROKERS", "")),
			Topic:   env.GetEnv("KAFKA_TOPIC", relay.DefaultKafkaTopic),
		},
		Nats: NatsConfig{
			URL:     env.GetEnv("NATS_URL", ""),
			Subject: env.GetEnv("NATS_SUBJECT", relay.DefaultNatsSubject),
		},
		Relay: RelayConfig{QueueSize: queueSize},
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether the bundled client is served. This is the
// case when APP_ENV=production or a client build exists on disk.
func (c *Config) IsProduction() bool {
	return c.Mode == ModeProduction || c.HasClientBuild()
}

// HasClientBuild reports whether the client build directory exists.
func (c *Config) HasClientBuild() bool {
	info, err := os.Stat(c.ClientBuildPath)
	return err == nil && info.IsDir()
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.Redis.Host == "" {
		return ""
	}
	return c.Redis.Host + ":" + c.Redis.Port
}

func intEnv(key string, def int) (int, error) {
	raw := env.GetEnv(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
