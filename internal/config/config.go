// Package config defines all configuration structures for the ShipCert
// platform.  No I/O or parsing logic lives here, only plain data types and
// validation.
package config

import (
	"fmt"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the document store.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// RedisConfig holds Redis connection parameters for the scan-result cache.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// KafkaConfig holds Apache Kafka parameters.  Topic receives computed-field
// events; ChangeTopic, when set, carries document-store change notifications
// that trigger recalculation.
type KafkaConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	Brokers         []string `mapstructure:"brokers"`
	Topic           string   `mapstructure:"topic"`
	ChangeTopic     string   `mapstructure:"change_topic"`
	GroupID         string   `mapstructure:"group_id"`
	TimeoutMS       int      `mapstructure:"timeout_ms"`
	ProducerRetries int      `mapstructure:"producer_retries"`
	BatchSize       int      `mapstructure:"batch_size"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "text"
	Output string `mapstructure:"output"`
}

// MetricsConfig controls the Prometheus collector.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// SurveyConfig carries the scheduling constants handed to the survey engine.
// None of these values are read by the engine itself; the application layer
// passes them in as explicit arguments.
type SurveyConfig struct {
	// DockingIntervalMonths is the calendar-month offset between drydockings.
	DockingIntervalMonths int `mapstructure:"docking_interval_months"`

	// DueSoonDays is the upper bound of the due-soon flag (inclusive).
	DueSoonDays int `mapstructure:"due_soon_days"`

	// EquipmentFallbackMonths is used when no interval table matches.
	EquipmentFallbackMonths int `mapstructure:"equipment_fallback_months"`

	// ScanWorkers > 1 evaluates ships in parallel.
	ScanWorkers int `mapstructure:"scan_workers"`

	// CacheTTL bounds how long a company's upcoming-survey list is cached.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// EquipmentIntervals is the global default maintenance-interval table,
	// equipment name → months.
	EquipmentIntervals map[string]int `mapstructure:"equipment_intervals"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for every ShipCert binary.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Survey   SurveyConfig   `mapstructure:"survey"`
}

// DSN renders the PostgreSQL connection string understood by the pgx driver.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	// Database
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("config: database.port %d is out of range [1, 65535]", c.Database.Port)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.db_name is required")
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("config: database.max_conns must be ≥ 1, got %d", c.Database.MaxConns)
	}

	// Redis
	if c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
	}

	// Kafka
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("config: kafka.brokers must contain at least one broker address")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("config: kafka.topic is required when kafka is enabled")
		}
		if c.Kafka.ChangeTopic != "" && c.Kafka.GroupID == "" {
			return fmt.Errorf("config: kafka.group_id is required when kafka.change_topic is set")
		}
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|text", c.Log.Format)
	}

	// Survey
	if c.Survey.DockingIntervalMonths < 1 {
		return fmt.Errorf("config: survey.docking_interval_months must be ≥ 1, got %d", c.Survey.DockingIntervalMonths)
	}
	if c.Survey.DueSoonDays < 0 {
		return fmt.Errorf("config: survey.due_soon_days must be ≥ 0, got %d", c.Survey.DueSoonDays)
	}
	if c.Survey.EquipmentFallbackMonths < 1 {
		return fmt.Errorf("config: survey.equipment_fallback_months must be ≥ 1, got %d", c.Survey.EquipmentFallbackMonths)
	}
	if c.Survey.ScanWorkers < 1 {
		return fmt.Errorf("config: survey.scan_workers must be ≥ 1, got %d", c.Survey.ScanWorkers)
	}
	for name, months := range c.Survey.EquipmentIntervals {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("config: survey.equipment_intervals contains an empty equipment name")
		}
		if months < 1 {
			return fmt.Errorf("config: survey.equipment_intervals[%q] must be ≥ 1, got %d", name, months)
		}
	}

	return nil
}

//Personal.AI order the ending
