package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	applogger "GearValue/pkg/logger"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowRequest     time.Duration `yaml:"slow_request" default:"2s"`
	} `yaml:"server"`
	CORS struct {
		Origins          []string `yaml:"origins" default:"[\"https://npoet.dev\"]"`
		AllowCredentials bool     `yaml:"allow_credentials" default:"true"`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Log    applogger.Config `yaml:"log"`
	Prices struct {
		LatestURL       string        `yaml:"latest_url" default:"https://prices.runescape.wiki/api/v1/osrs/latest"`
		TimeseriesURL   string        `yaml:"timeseries_url" default:"https://prices.runescape.wiki/api/v1/osrs/timeseries"`
		UserAgent       string        `yaml:"user_agent" default:"gearvalue - @npoet on discord"`
		Timeout         time.Duration `yaml:"timeout" default:"15s"`
		MaxConnsPerHost int           `yaml:"max_conns_per_host" default:"16"`
	} `yaml:"prices"`
	Catalog struct {
		Name string `yaml:"name" default:"gear"`
		File string `yaml:"file" default:"config/items.json"`
	} `yaml:"catalog"`
	Cache struct {
		Backend         string        `yaml:"backend" default:"memory"`
		LatestTTL       time.Duration `yaml:"latest_ttl" default:"30s"`
		TimeseriesTTL   time.Duration `yaml:"timeseries_ttl" default:"2m"`
		MaxEntries      int           `yaml:"max_entries" default:"1000"`
		CleanupInterval time.Duration `yaml:"cleanup_interval" default:"5m"`
		Redis           struct {
			Host         string        `yaml:"host" default:"localhost"`
			Port         int           `yaml:"port" default:"6379"`
			Password     string        `yaml:"password"`
			DB           int           `yaml:"db"`
			Prefix       string        `yaml:"prefix" default:"gearvalue"`
			PoolSize     int           `yaml:"pool_size" default:"10"`
			MinIdleConns int           `yaml:"min_idle_conns" default:"2"`
			PoolTimeout  time.Duration `yaml:"pool_timeout" default:"30s"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Snapshot struct {
		Schedule  string `yaml:"schedule"`
		Publisher string `yaml:"publisher" default:"log"`
		Kafka     struct {
			Brokers      []string      `yaml:"brokers"`
			Topic        string        `yaml:"topic" default:"gearvalue.snapshots"`
			Compression  string        `yaml:"compression" default:"gzip"`
			RequiredAcks int           `yaml:"required_acks" default:"-1"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
		} `yaml:"kafka"`
	} `yaml:"snapshot"`
}

// Default returns a config populated only from `default` tags.
func Default() *Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &c
}

// Load reads and parses a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML, then a .env file if present, and
// overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GEARVALUE_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("GEARVALUE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("GEARVALUE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("GEARVALUE_ITEMS_FILE"); v != "" {
		c.Catalog.File = v
	}
	if v := os.Getenv("GEARVALUE_USER_AGENT"); v != "" {
		c.Prices.UserAgent = v
	}
	if v := os.Getenv("GEARVALUE_CORS_ORIGINS"); v != "" {
		c.CORS.Origins = splitList(v)
	}
	if v := os.Getenv("GEARVALUE_CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("GEARVALUE_REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("GEARVALUE_SNAPSHOT_SCHEDULE"); v != "" {
		c.Snapshot.Schedule = v
	}
	if v := os.Getenv("GEARVALUE_KAFKA_BROKERS"); v != "" {
		c.Snapshot.Kafka.Brokers = splitList(v)
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Prices.LatestURL == "" || c.Prices.TimeseriesURL == "" {
		return fmt.Errorf("prices.latest_url and prices.timeseries_url are required")
	}
	if c.Prices.UserAgent == "" {
		return fmt.Errorf("prices.user_agent is required")
	}
	if c.Catalog.File == "" {
		return fmt.Errorf("catalog.file is required")
	}
	switch c.Cache.Backend {
	case "none", "memory", "redis":
	default:
		return fmt.Errorf("cache.backend must be 'none', 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	switch c.Snapshot.Publisher {
	case "log":
	case "kafka":
		if len(c.Snapshot.Kafka.Brokers) == 0 {
			return fmt.Errorf("snapshot.kafka.brokers cannot be empty when publisher is kafka")
		}
	default:
		return fmt.Errorf("snapshot.publisher must be 'log' or 'kafka', got '%s'", c.Snapshot.Publisher)
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
