package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application-wide configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Decision DecisionConfig `mapstructure:"decision"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig configures the local HTTP API.
type ServerConfig struct {
	Port         int        `mapstructure:"port"`
	BodyLimit    int64      `mapstructure:"body_limit"`
	CORS         CORSConfig `mapstructure:"cors"`
	ReadTimeout  int        `mapstructure:"read_timeout"`  // seconds
	WriteTimeout int        `mapstructure:"write_timeout"` // seconds
}

// CORSConfig lists origins allowed to call the API.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig configures the local SQLite file.
type DatabaseConfig struct {
	Path        string `mapstructure:"path"`
	BusyTimeout int    `mapstructure:"busy_timeout"` // milliseconds
	JournalMode string `mapstructure:"journal_mode"`
}

// DSN builds the go-sqlite3 connection string. Foreign keys are always on:
// SQLite leaves them off by default and the cascade rules depend on them.
func (c *DatabaseConfig) DSN() string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	if c.BusyTimeout > 0 {
		params.Set("_busy_timeout", fmt.Sprintf("%d", c.BusyTimeout))
	}
	if c.JournalMode != "" {
		params.Set("_journal_mode", c.JournalMode)
	}
	return fmt.Sprintf("file:%s?%s", c.Path, params.Encode())
}

// RedisConfig configures the optional Redis used for pending decisions and rate limiting.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SyncConfig configures the outbound upload.
type SyncConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	ConnectivityTimeout time.Duration `mapstructure:"connectivity_timeout"`
	PriceAsString       bool          `mapstructure:"price_as_string"`
	RateLimit           int           `mapstructure:"rate_limit"`
	RateWindow          time.Duration `mapstructure:"rate_window"`
}

// DecisionConfig configures pending day-change decisions.
type DecisionConfig struct {
	// TTL of an unresolved decision; 0 keeps it until resolved.
	TTL time.Duration `mapstructure:"ttl"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment.
// Precedence: environment > config file > defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 30)

	v.SetDefault("db.path", "yoga.db")
	v.SetDefault("db.busy_timeout", 5000)
	v.SetDefault("db.journal_mode", "WAL")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("sync.base_url", "http://10.0.2.2:3000/api/sync")
	v.SetDefault("sync.timeout", "30s")
	v.SetDefault("sync.connectivity_timeout", "3s")
	v.SetDefault("sync.price_as_string", false)
	v.SetDefault("sync.rate_limit", 5)
	v.SetDefault("sync.rate_window", "1m")

	v.SetDefault("decision.ttl", "0s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("YOGA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the process cannot start without.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be between 1 and 65535")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("invalid config: db.path must not be empty")
	}
	u, err := url.Parse(c.Sync.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid config: sync.base_url %q is not an absolute URL", c.Sync.BaseURL)
	}
	if c.Decision.TTL < 0 {
		return fmt.Errorf("invalid config: decision.ttl must not be negative")
	}
	return nil
}
