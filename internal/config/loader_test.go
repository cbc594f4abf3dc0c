package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
server:
  port: 8088
  mode: release
database:
  host: db.internal
  port: 5432
  user: shipcert
  password: secret
  db_name: fleet
redis:
  addr: cache.internal:6379
kafka:
  enabled: true
  brokers: ["k1:9092", "k2:9092"]
  topic: survey.events
log:
  level: debug
  format: text
survey:
  docking_interval_months: 30
  due_soon_days: 14
  scan_workers: 4
  cache_ttl: 5m
  equipment_intervals:
    eebd: 6
    life raft: 12
`

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	cfg, err := Load(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "fleet", cfg.Database.DBName)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "survey.events", cfg.Kafka.Topic)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Survey.DockingIntervalMonths)
	assert.Equal(t, 14, cfg.Survey.DueSoonDays)
	assert.Equal(t, 4, cfg.Survey.ScanWorkers)
	assert.Equal(t, 5*time.Minute, cfg.Survey.CacheTTL)
	assert.Equal(t, 6, cfg.Survey.EquipmentIntervals["eebd"])
	assert.Equal(t, 12, cfg.Survey.EquipmentIntervals["life raft"])

	// unset fields are defaulted
	assert.Equal(t, DefaultEquipmentFallbackMonths, cfg.Survey.EquipmentFallbackMonths)
	assert.Equal(t, DefaultRedisKeyPrefix, cfg.Redis.KeyPrefix)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidValue(t *testing.T) {
	path := createTempConfigFile(t, "log:\n  level: loud\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "log.level")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("SHIPCERT_SURVEY_DUE_SOON_DAYS", "45")
	t.Setenv("SHIPCERT_DATABASE_HOST", "override.internal")

	cfg, err := Load(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.Survey.DueSoonDays)
	assert.Equal(t, "override.internal", cfg.Database.Host)
}

func TestLoadFromEnv_DefaultsOnly(t *testing.T) {
	t.Setenv("SHIPCERT_SURVEY_DOCKING_INTERVAL_MONTHS", "30")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Survey.DockingIntervalMonths)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.NotEmpty(t, cfg.Survey.EquipmentIntervals)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDockingIntervalMonths, cfg.Survey.DockingIntervalMonths)

	cfg, err = LoadOrDefault(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Survey.DockingIntervalMonths)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "absent.yaml")) })
}

//Personal.AI order the ending
