// Integration test helpers.
// Boots the survey service, the HTTP router and the Prometheus registry
// in-process over an in-memory document store.  Redis is attached when
// SHIPCERT_INTEGRATION_TEST is set and SHIPCERT_TEST_REDIS_ADDR points at a
// live server; otherwise scans run uncached.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/turtacn/ShipCert-Intelligence/internal/application/survey"
	"github.com/turtacn/ShipCert-Intelligence/internal/config"
	domain "github.com/turtacn/ShipCert-Intelligence/internal/domain/survey"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/ShipCert-Intelligence/internal/interfaces/http"
	"github.com/turtacn/ShipCert-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/ShipCert-Intelligence/internal/interfaces/http/middleware"
	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
	"github.com/turtacn/ShipCert-Intelligence/pkg/types/common"
)

// ---------------------------------------------------------------------------
// Environment detection
// ---------------------------------------------------------------------------

const (
	// EnvIntegrationEnabled enables the tests that need external services.
	EnvIntegrationEnabled = "SHIPCERT_INTEGRATION_TEST"

	// EnvRedisAddr is the host:port of a disposable Redis.
	EnvRedisAddr = "SHIPCERT_TEST_REDIS_ADDR"
)

// IntegrationEnabled reports whether external services may be used.
func IntegrationEnabled() bool {
	v := os.Getenv(EnvIntegrationEnabled)
	return v == "1" || v == "true"
}

// SkipIfNoIntegration skips the calling test when the integration flag is unset.
func SkipIfNoIntegration(t *testing.T) {
	t.Helper()
	if !IntegrationEnabled() {
		t.Skipf("skipping integration test: set %s=1 to enable", EnvIntegrationEnabled)
	}
}

// Reference clock for every flow.
var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

// ---------------------------------------------------------------------------
// In-memory document store
// ---------------------------------------------------------------------------

// MemoryStore implements survey.SnapshotRepository and
// survey.ComputedFieldWriter.  Computed fields are recorded separately from
// the seeded records so tests can assert on exactly what was written.
type MemoryStore struct {
	mu    sync.RWMutex
	ships map[string]domain.ShipRecord
	certs map[string]domain.CertificateRecord

	nextSurveys map[string]domain.NextSurveyResult
	shipComps   map[string]domain.ShipComputation
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		ships:       make(map[string]domain.ShipRecord),
		certs:       make(map[string]domain.CertificateRecord),
		nextSurveys: make(map[string]domain.NextSurveyResult),
		shipComps:   make(map[string]domain.ShipComputation),
	}
}

// Seed adds or replaces records.
func (m *MemoryStore) Seed(ships []domain.ShipRecord, certs []domain.CertificateRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range ships {
		m.ships[s.ID] = s
	}
	for _, c := range certs {
		m.certs[c.ID] = c
	}
}

func (m *MemoryStore) GetShip(_ context.Context, id string) (*domain.ShipRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.ships[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeShipNotFound, "ship not found").WithDetail("id=" + id)
	}
	return &s, nil
}

func (m *MemoryStore) ListShipsByCompany(_ context.Context, companyID string) ([]domain.ShipRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.ShipRecord{}
	for _, s := range m.ships {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) GetCertificate(_ context.Context, id string) (*domain.CertificateRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.certs[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeCertificateNotFound, "certificate not found").WithDetail("id=" + id)
	}
	return &c, nil
}

func (m *MemoryStore) ListCertificatesByShips(_ context.Context, shipIDs []string) ([]domain.CertificateRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := make(map[string]bool, len(shipIDs))
	for _, id := range shipIDs {
		want[id] = true
	}
	out := []domain.CertificateRecord{}
	for _, c := range m.certs {
		if want[c.ShipID] {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) SaveNextSurvey(_ context.Context, certID string, res domain.NextSurveyResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.certs[certID]; !ok {
		return errors.New(errors.ErrCodeCertificateNotFound, "certificate not found").WithDetail("id=" + certID)
	}
	m.nextSurveys[certID] = res
	return nil
}

func (m *MemoryStore) SaveShipComputation(_ context.Context, comp domain.ShipComputation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ships[comp.ShipID]; !ok {
		return errors.New(errors.ErrCodeShipNotFound, "ship not found").WithDetail("id=" + comp.ShipID)
	}
	m.shipComps[comp.ShipID] = comp
	for _, c := range comp.Certificates {
		m.nextSurveys[c.CertificateID] = c.Result
	}
	return nil
}

// SavedNextSurvey returns the last persisted result for a certificate.
func (m *MemoryStore) SavedNextSurvey(certID string) (domain.NextSurveyResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.nextSurveys[certID]
	return r, ok
}

// SavedShip returns the last persisted computation for a ship.
func (m *MemoryStore) SavedShip(shipID string) (domain.ShipComputation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.shipComps[shipID]
	return c, ok
}

// ---------------------------------------------------------------------------
// Event sink
// ---------------------------------------------------------------------------

// EventSink records published survey events in order.
type EventSink struct {
	mu     sync.Mutex
	events []*survey.SurveyEvent
}

func (s *EventSink) PublishSurveyEvent(_ context.Context, evt *survey.SurveyEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
	return nil
}

// Events returns a copy of the recorded events.
func (s *EventSink) Events() []*survey.SurveyEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*survey.SurveyEvent(nil), s.events...)
}

// ---------------------------------------------------------------------------
// TestEnvironment
// ---------------------------------------------------------------------------

// TestEnvironment holds one fully wired server.  Each test gets its own.
type TestEnvironment struct {
	Config    *config.Config
	Logger    logging.Logger
	Store     *MemoryStore
	Events    *EventSink
	Collector prometheus.MetricsCollector
	Metrics   *prometheus.SurveyMetrics
	Service   *survey.Service
	Server    *httptest.Server
}

// SetupTestEnvironment wires the stack and registers its teardown.
func SetupTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	cfg := config.Default()
	env := &TestEnvironment{
		Config: cfg,
		Logger: logging.NewNopLogger(),
		Store:  NewMemoryStore(),
		Events: &EventSink{},
	}

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "shipcert_it"}, env.Logger)
	require.NoError(t, err)
	env.Collector = collector
	env.Metrics = prometheus.NewSurveyMetrics(collector)

	svcCfg := survey.Config{
		DockingIntervalMonths:   cfg.Survey.DockingIntervalMonths,
		DueSoonDays:             cfg.Survey.DueSoonDays,
		EquipmentFallbackMonths: cfg.Survey.EquipmentFallbackMonths,
		ScanWorkers:             cfg.Survey.ScanWorkers,
		CacheTTL:                cfg.Survey.CacheTTL,
		EquipmentIntervals:      cfg.Survey.EquipmentIntervals,
	}
	env.Service, err = survey.NewService(survey.Dependencies{
		Repository: env.Store,
		Writer:     env.Store,
		Cache:      env.connectRedis(t),
		Publisher:  env.Events,
		Metrics:    env.Metrics,
		Logger:     env.Logger,
		Clock:      func() time.Time { return fixedNow },
	}, svcCfg)
	require.NoError(t, err)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Mode:           "test",
		SurveyHandler:  handlers.NewSurveyHandler(env.Service, env.Logger),
		HealthHandler:  handlers.NewHealthHandler("it"),
		MetricsHandler: collector.Handler(),
		RequestTimeout: 5 * time.Second,
		Logging:        middleware.DefaultLoggingConfig(),
		Recorder:       env.Metrics,
		Logger:         env.Logger,
	})
	env.Server = httptest.NewServer(router)
	t.Cleanup(env.Server.Close)
	return env
}

// connectRedis returns a cache on a live Redis, or nil.  Keys are namespaced
// per test and removed on cleanup.
func (env *TestEnvironment) connectRedis(t *testing.T) survey.CachePort {
	addr := os.Getenv(EnvRedisAddr)
	if !IntegrationEnabled() || addr == "" {
		return nil
	}
	rcfg := env.Config.Redis
	rcfg.Addr = addr
	client, err := redis.NewClient(rcfg, env.Logger)
	if err != nil {
		t.Logf("redis at %s unavailable, running uncached: %v", addr, err)
		return nil
	}
	prefix := "shipcert-it:" + t.Name() + ":"
	cache := redis.NewCache(client, env.Logger, redis.WithPrefix(prefix), redis.WithDefaultTTL(time.Minute))
	t.Cleanup(func() {
		_, _ = cache.DeleteByPrefix(context.Background(), "")
		_ = client.Close()
	})
	return cache
}

// ---------------------------------------------------------------------------
// HTTP helpers
// ---------------------------------------------------------------------------

// Do sends a request and returns the status and the raw body.
func (env *TestEnvironment) Do(t *testing.T, method, path string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, env.Server.URL+path, bytes.NewReader(nil))
	require.NoError(t, err)
	resp, err := env.Server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

// DoAPI sends a request and decodes the response envelope.
func DoAPI[T any](t *testing.T, env *TestEnvironment, method, path string) (int, common.APIResponse[T]) {
	t.Helper()
	status, body := env.Do(t, method, path)
	var out common.APIResponse[T]
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return status, out
}

//Personal.AI order the ending
