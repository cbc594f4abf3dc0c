// Package config provides configuration loading, defaults, and validation for
// the ShipCert platform.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all platform settings.
const envPrefix = "SHIPCERT"

// newViper builds a pre-configured Viper instance with the platform's standard
// settings: YAML file type, SHIPCERT_ env prefix, automatic env binding, and a
// key replacer that maps "." → "_" so that nested keys like "survey.due_soon_days"
// resolve to "SHIPCERT_SURVEY_DUE_SOON_DAYS".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindEnvKeys(v)
	return v
}

// bindEnvKeys registers every scalar key so that AutomaticEnv can resolve it
// during Unmarshal even when the key is absent from the config file.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"server.port", "server.mode", "server.read_timeout", "server.write_timeout",
		"server.request_timeout", "server.shutdown_timeout", "server.allowed_origins",
		"database.host", "database.port", "database.user", "database.password",
		"database.db_name", "database.ssl_mode", "database.max_conns",
		"redis.addr", "redis.password", "redis.db", "redis.key_prefix",
		"kafka.enabled", "kafka.brokers", "kafka.topic", "kafka.change_topic", "kafka.group_id",
		"log.level", "log.format", "log.output",
		"metrics.enabled", "metrics.namespace", "metrics.path",
		"survey.docking_interval_months", "survey.due_soon_days",
		"survey.equipment_fallback_months", "survey.scan_workers", "survey.cache_ttl",
	} {
		_ = v.BindEnv(key)
	}
}

// Load reads the YAML file at configPath, merges any SHIPCERT_* environment
// variable overrides, applies platform defaults for unset fields, and
// validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from SHIPCERT_* environment variables,
// with no config file required.
//
// Environment variable naming convention:
//
//	SHIPCERT_<SECTION>_<FIELD>   e.g.  SHIPCERT_DATABASE_HOST, SHIPCERT_SURVEY_DUE_SOON_DAYS
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

// LoadOrDefault loads configPath when it is non-empty and otherwise falls
// back to the environment.
func LoadOrDefault(configPath string) (*Config, error) {
	if configPath == "" {
		return LoadFromEnv()
	}
	return Load(configPath)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  The API server uses
// it to pick up survey-section changes (due-soon threshold, interval table)
// without a restart.
//
// If the changed file fails to parse or validate, onChange is NOT called.
// Only write and create events trigger a reload.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}

// MustLoad is a convenience wrapper around Load that panics on any error.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending
