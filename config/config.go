package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration tree.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Pricing  PricingConfig  `mapstructure:"pricing"`
	Review   ReviewConfig   `mapstructure:"review"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

// AppConfig identifies the application
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"` // development, staging, production
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string          `mapstructure:"port"`
	ReadTimeout     time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig configures the per-client limiter
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Rate    float64 `mapstructure:"rate"`  // requests per second
	Burst   int     `mapstructure:"burst"` // burst capacity
}

// DatabaseConfig holds MySQL settings. Type "memory" runs on the in-memory
// repositories with no database.
type DatabaseConfig struct {
	Type            string        `mapstructure:"type"` // mysql, memory
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	Retry           RetryConfig   `mapstructure:"retry"`
}

// DSN builds the MySQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database)
}

// RetryConfig configures transaction retries on deadlocks and lock timeouts
type RetryConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	MaxAttempts        int           `mapstructure:"max_attempts"`
	InitialDelay       time.Duration `mapstructure:"initial_delay"`
	MaxDelay           time.Duration `mapstructure:"max_delay"`
	BackoffFactor      float64       `mapstructure:"backoff_factor"`
	JitterEnabled      bool          `mapstructure:"jitter_enabled"`
	RetryOnDeadlock    bool          `mapstructure:"retry_on_deadlock"`
	RetryOnLockTimeout bool          `mapstructure:"retry_on_lock_timeout"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level    string `mapstructure:"level"`     // debug, info, warn, error
	Format   string `mapstructure:"format"`    // json, console
	Output   string `mapstructure:"output"`    // stdout, file
	FilePath string `mapstructure:"file_path"` // used when output is file
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// AuthConfig holds JWT verification settings
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// RedisConfig holds the optional redis cache. Empty Addr disables it.
type RedisConfig struct {
	Addr           string        `mapstructure:"addr"`
	Password       string        `mapstructure:"password"`
	DB             int           `mapstructure:"db"`
	CouponTTL      time.Duration `mapstructure:"coupon_ttl"`
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`
}

// Enabled reports whether redis is configured
func (c *RedisConfig) Enabled() bool { return c.Addr != "" }

// KafkaConfig holds the optional event relay target. Empty Brokers falls back
// to the logging publisher.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// Enabled reports whether kafka brokers are configured
func (c *KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

// PricingConfig holds the storefront-wide cart pricing knobs
type PricingConfig struct {
	TaxRate          float64 `mapstructure:"tax_rate"`
	ShippingFlat     float64 `mapstructure:"shipping_flat"`
	FreeShippingOver float64 `mapstructure:"free_shipping_over"`
}

// ReviewConfig holds review moderation settings
type ReviewConfig struct {
	AutoApprove bool `mapstructure:"auto_approve"`
}

// WorkerConfig configures the outbox polling worker. It only runs on the
// MySQL persistence layer.
type WorkerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	BatchSize    int           `mapstructure:"batch_size"`
	MaxRetries   int           `mapstructure:"max_retries"`
}

// IsDevelopment reports whether the app runs in development
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction reports whether the app runs in production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Load reads the configuration from file (optional) and environment.
// Environment variables use the STOREFRONT_ prefix with "." replaced by "_",
// e.g. STOREFRONT_DATABASE_HOST.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// run on defaults when no config file exists
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "storefront")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.env", "development")

	// Server
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.rate", 50.0)
	v.SetDefault("server.rate_limit.burst", 100)

	// Database
	v.SetDefault("database.type", "memory")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.username", "storefront")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "storefront")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.retry.enabled", true)
	v.SetDefault("database.retry.max_attempts", 3)
	v.SetDefault("database.retry.initial_delay", "100ms")
	v.SetDefault("database.retry.max_delay", "2s")
	v.SetDefault("database.retry.backoff_factor", 2.0)
	v.SetDefault("database.retry.jitter_enabled", true)
	v.SetDefault("database.retry.retry_on_deadlock", true)
	v.SetDefault("database.retry.retry_on_lock_timeout", true)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "logs/storefront.log")

	// CORS
	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cors.allow_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allow_headers", []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 86400)

	// Auth
	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.token_ttl", "24h")

	// Redis (disabled by default)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.coupon_ttl", "5m")
	v.SetDefault("redis.idempotency_ttl", "24h")

	// Kafka (disabled by default)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "storefront.orders")

	// Pricing
	v.SetDefault("pricing.tax_rate", 0.1)
	v.SetDefault("pricing.shipping_flat", 5.0)
	v.SetDefault("pricing.free_shipping_over", 100.0)

	// Review
	v.SetDefault("review.auto_approve", true)

	// Outbox worker
	v.SetDefault("worker.enabled", true)
	v.SetDefault("worker.poll_interval", "5s")
	v.SetDefault("worker.batch_size", 50)
	v.SetDefault("worker.max_retries", 5)
}
