package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP  HTTPConfig  `yaml:"http"`
	CORS  CORSConfig  `yaml:"cors"`
	Store StoreConfig `yaml:"store"`
	Redis RedisConfig `yaml:"redis"`
	Kafka KafkaConfig `yaml:"kafka"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type CORSConfig struct {
	// AllowedOrigin is the single origin permitted to call the API.
	// Empty means any origin is allowed.
	AllowedOrigin string `yaml:"allowed_origin"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Addr           string `yaml:"addr"`
	Password       string `yaml:"password"`
	DB             int    `yaml:"db"`
	LockTTLSeconds int    `yaml:"lock_ttl_seconds"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

// envOverrides mirrors the environment variables the booking API has always honored.
type envOverrides struct {
	Port         int      `envconfig:"PORT"`
	CORSOrigin   string   `envconfig:"CORS_ORIGIN"`
	BookingsFile string   `envconfig:"BOOKINGS_FILE"`
	RedisAddr    string   `envconfig:"REDIS_ADDR"`
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
}

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:    ":3000",
			SwaggerDir: "./swagger",
		},
		Store: StoreConfig{
			Path: "./data/bookings.jsonl",
		},
		Redis: RedisConfig{
			LockTTLSeconds: 5,
		},
		Kafka: KafkaConfig{
			BookingTopic:       "bookings",
			NotificationsTopic: "booking-notifications",
			GroupID:            "shopbooking-worker",
		},
	}
}

// LoadConfig reads the yaml config at path and applies environment overrides.
// A missing config file is not an error; defaults are used instead.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// missing file, run on defaults
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if env.Port != 0 {
		cfg.HTTP.Address = fmt.Sprintf(":%d", env.Port)
	}
	if env.CORSOrigin != "" {
		cfg.CORS.AllowedOrigin = env.CORSOrigin
	}
	if env.BookingsFile != "" {
		cfg.Store.Path = env.BookingsFile
	}
	if env.RedisAddr != "" {
		cfg.Redis.Addr = env.RedisAddr
	}
	if len(env.KafkaBrokers) > 0 {
		cfg.Kafka.Brokers = env.KafkaBrokers
	}

	return cfg, nil
}
