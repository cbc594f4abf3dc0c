// Package config provides configuration loading, defaults, and validation for
// the ShipCert platform.
package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort = 8080
	DefaultServerMode = "debug"

	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBName     = "shipcert"
	DefaultDBMaxConns = 25

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisKeyPrefix = "shipcert:"

	DefaultKafkaBroker = "localhost:9092"
	DefaultKafkaTopic  = "shipcert.survey.computed"
	DefaultKafkaGroup  = "shipcert-survey"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "shipcert"
	DefaultMetricsPath      = "/metrics"

	DefaultDockingIntervalMonths   = 36
	DefaultDueSoonDays             = 30
	DefaultEquipmentFallbackMonths = 12
	DefaultScanWorkers             = 1
	DefaultSurveyCacheTTL          = 10 * time.Minute
)

// DefaultEquipmentIntervals is the global maintenance-interval table used when
// the configuration file does not supply one.  Keys are normalized names.
func DefaultEquipmentIntervals() map[string]int {
	return map[string]int{
		"eebd":                12,
		"scba":                12,
		"life raft":           12,
		"liferaft":            12,
		"fire extinguisher":   12,
		"immersion suit":      36,
		"lifejacket":          12,
		"epirb":               12,
		"sart":                12,
		"hydrostatic release": 24,
		"co2 system":          24,
		"fixed fire":          24,
		"lifeboat":            12,
		"fire hose":           12,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ApplyDefaults fills zero-value fields in cfg with well-known defaults.
// It must be called after unmarshalling raw config data and before Validate()
// so that optional-but-defaulted fields are never seen as missing.
// ─────────────────────────────────────────────────────────────────────────────

// ApplyDefaults fills every zero-value field in cfg with the platform default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	// ── Database ──────────────────────────────────────────────────────────────
	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = DefaultDBName
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = DefaultDBMaxConns
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	// DB is an int; 0 is a valid explicit value and also the default.

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = DefaultKafkaTopic
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroup
	}
	if cfg.Kafka.ProducerRetries == 0 {
		cfg.Kafka.ProducerRetries = 3
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// ── Survey ────────────────────────────────────────────────────────────────
	if cfg.Survey.DockingIntervalMonths == 0 {
		cfg.Survey.DockingIntervalMonths = DefaultDockingIntervalMonths
	}
	if cfg.Survey.DueSoonDays == 0 {
		cfg.Survey.DueSoonDays = DefaultDueSoonDays
	}
	if cfg.Survey.EquipmentFallbackMonths == 0 {
		cfg.Survey.EquipmentFallbackMonths = DefaultEquipmentFallbackMonths
	}
	if cfg.Survey.ScanWorkers == 0 {
		cfg.Survey.ScanWorkers = DefaultScanWorkers
	}
	if cfg.Survey.CacheTTL == 0 {
		cfg.Survey.CacheTTL = DefaultSurveyCacheTTL
	}
	if len(cfg.Survey.EquipmentIntervals) == 0 {
		cfg.Survey.EquipmentIntervals = DefaultEquipmentIntervals()
	}
}

// Default returns a fully defaulted Config.  The CLI uses it when no config
// file is given.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

//Personal.AI order the ending
