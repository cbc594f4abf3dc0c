// internal/application/survey/ports.go
//
// Ports consumed by the survey application service.  Adapters live in
// internal/infrastructure and are wired in cmd/apiserver.

package survey

import (
	"context"
	"time"

	domain "github.com/turtacn/ShipCert-Intelligence/internal/domain/survey"
)

// SnapshotRepository reads immutable ship and certificate snapshots from the
// document store.  Lookups of a missing id return a not-found AppError.
type SnapshotRepository interface {
	GetShip(ctx context.Context, shipID string) (*domain.ShipRecord, error)
	ListShipsByCompany(ctx context.Context, companyID string) ([]domain.ShipRecord, error)
	GetCertificate(ctx context.Context, certID string) (*domain.CertificateRecord, error)
	ListCertificatesByShips(ctx context.Context, shipIDs []string) ([]domain.CertificateRecord, error)
}

// ComputedFieldWriter hands computed fields back to the document store.
// Every write is an idempotent overwrite.
type ComputedFieldWriter interface {
	SaveNextSurvey(ctx context.Context, certID string, res domain.NextSurveyResult) error
	SaveShipComputation(ctx context.Context, comp domain.ShipComputation) error
}

// CachePort abstracts cache get/set for scan results.  Get returns an error
// on a miss.
type CachePort interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) (int64, error)
}

// EventPublisher emits survey events to downstream consumers.
type EventPublisher interface {
	PublishSurveyEvent(ctx context.Context, evt *SurveyEvent) error
}

// Metrics records service-level measurements.
type Metrics interface {
	ObserveScan(duration time.Duration, included, skipped int)
	RecordRecalculation(kind string, err error)
	RecordCacheLookup(hit bool)
}

// ---------------------------------------------------------------------------
// No-op adapters for optional ports
// ---------------------------------------------------------------------------

type nopCache struct{}

func (nopCache) Get(context.Context, string, interface{}) error { return errCacheDisabled }
func (nopCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (nopCache) DeleteByPrefix(context.Context, string) (int64, error) { return 0, nil }

type nopPublisher struct{}

func (nopPublisher) PublishSurveyEvent(context.Context, *SurveyEvent) error { return nil }

type nopMetrics struct{}

func (nopMetrics) ObserveScan(time.Duration, int, int) {}
func (nopMetrics) RecordRecalculation(string, error)   {}
func (nopMetrics) RecordCacheLookup(bool)              {}

//Personal.AI order the ending
