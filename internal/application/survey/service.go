// internal/application/survey/service.go
//
// Application service for survey scheduling.  Loads snapshots through the
// repository port, runs the engine, caches fleet scans, hands computed
// fields back to the document store and publishes change events.
//
// Dependencies:
//   Depends on: domain/survey, pkg/errors, monitoring/logging
//   Depended by: interfaces/http/handlers, cmd/apiserver

package survey

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	domain "github.com/turtacn/ShipCert-Intelligence/internal/domain/survey"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
)

var errCacheDisabled = errors.New(errors.ErrCodeCacheError, "cache disabled")

// Recalculation kinds reported to Metrics.
const (
	KindCertificate = "certificate"
	KindShip        = "ship"
	KindEquipment   = "equipment"
)

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// Config holds the scheduling constants the service passes to the engine.
type Config struct {
	DockingIntervalMonths   int
	DueSoonDays             int
	EquipmentFallbackMonths int
	ScanWorkers             int
	CacheTTL                time.Duration
	EquipmentIntervals      map[string]int
}

func (c Config) withDefaults() Config {
	if c.DockingIntervalMonths <= 0 {
		c.DockingIntervalMonths = domain.DefaultDockingIntervalMonths
	}
	if c.DueSoonDays <= 0 {
		c.DueSoonDays = domain.DefaultDueSoonDays
	}
	if c.EquipmentFallbackMonths <= 0 {
		c.EquipmentFallbackMonths = domain.DefaultEquipmentFallbackMonths
	}
	if c.ScanWorkers <= 0 {
		c.ScanWorkers = 1
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 10 * time.Minute
	}
	return c
}

// Dependencies groups the ports.  Repository and Writer are required; the
// rest fall back to no-op implementations.
type Dependencies struct {
	Repository SnapshotRepository
	Writer     ComputedFieldWriter
	Cache      CachePort
	Publisher  EventPublisher
	Metrics    Metrics
	Logger     logging.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service orchestrates the survey engine over the document store.
type Service struct {
	repo      SnapshotRepository
	writer    ComputedFieldWriter
	cache     CachePort
	publisher EventPublisher
	metrics   Metrics
	logger    logging.Logger
	clock     func() time.Time

	mu       sync.RWMutex
	cfg      Config
	scanner  *domain.Scanner
	defaults domain.IntervalTable
}

// NewService constructs a Service.
func NewService(deps Dependencies, cfg Config) (*Service, error) {
	if deps.Repository == nil {
		return nil, errors.New(errors.ErrCodeBadRequest, "survey service: repository is required")
	}
	if deps.Writer == nil {
		return nil, errors.New(errors.ErrCodeBadRequest, "survey service: writer is required")
	}
	s := &Service{
		repo:      deps.Repository,
		writer:    deps.Writer,
		cache:     deps.Cache,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		clock:     deps.Clock,
	}
	if s.cache == nil {
		s.cache = nopCache{}
	}
	if s.publisher == nil {
		s.publisher = nopPublisher{}
	}
	if s.metrics == nil {
		s.metrics = nopMetrics{}
	}
	if s.logger == nil {
		s.logger = logging.NewNopLogger()
	}
	s.logger = s.logger.Named("survey")
	if s.clock == nil {
		s.clock = time.Now
	}
	s.UpdateConfig(cfg)
	return s, nil
}

// UpdateConfig swaps the scheduling constants.  Safe to call while requests
// are in flight; used by the config watcher.
func (s *Service) UpdateConfig(cfg Config) {
	cfg = cfg.withDefaults()
	scanner := domain.NewScanner(
		domain.WithDueSoonDays(cfg.DueSoonDays),
		domain.WithWorkers(cfg.ScanWorkers),
		domain.WithLogger(s.logger.Named("scanner")),
	)
	defaults := domain.NewIntervalTable(cfg.EquipmentIntervals)

	s.mu.Lock()
	s.cfg, s.scanner, s.defaults = cfg, scanner, defaults
	s.mu.Unlock()
}

func (s *Service) snapshot() (Config, *domain.Scanner, domain.IntervalTable) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg, s.scanner, s.defaults
}

func (s *Service) today() time.Time { return domain.Civil(s.clock()) }

func upcomingCachePrefix(companyID string) string {
	return "upcoming:" + companyID + ":"
}

func upcomingCacheKey(companyID string, day time.Time) string {
	return upcomingCachePrefix(companyID) + day.Format(domain.DateLayout)
}

// ListUpcoming scans every certificate of a company's fleet.  A zero day
// means today.
func (s *Service) ListUpcoming(ctx context.Context, companyID string, day time.Time) (*domain.ScanResult, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return nil, errors.InvalidParam("company_id is required")
	}
	if day.IsZero() {
		day = s.today()
	}
	day = domain.Civil(day)
	key := upcomingCacheKey(companyID, day)

	var cached domain.ScanResult
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		s.metrics.RecordCacheLookup(true)
		return &cached, nil
	}
	s.metrics.RecordCacheLookup(false)

	ships, err := s.repo.ListShipsByCompany(ctx, companyID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnknown, "load ships")
	}
	shipIDs := make([]string, len(ships))
	for i, sh := range ships {
		shipIDs[i] = sh.ID
	}
	var certs []domain.CertificateRecord
	if len(shipIDs) > 0 {
		if certs, err = s.repo.ListCertificatesByShips(ctx, shipIDs); err != nil {
			return nil, errors.Wrap(err, errors.CodeUnknown, "load certificates")
		}
	}

	cfg, scanner, _ := s.snapshot()
	start := time.Now()
	res, err := scanner.Scan(ctx, certs, ships, day)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTimeout, "fleet scan aborted")
	}
	s.metrics.ObserveScan(time.Since(start), res.TotalCount, len(res.Skipped))

	s.logger.Info("fleet scan completed",
		logging.String("company_id", companyID),
		logging.Date("check_date", day),
		logging.Int("ships", len(ships)),
		logging.Int("certificates", len(certs)),
		logging.Int("upcoming", res.TotalCount),
		logging.Int("skipped", len(res.Skipped)),
	)

	if err := s.cache.Set(ctx, key, res, cfg.CacheTTL); err != nil {
		s.logger.Warn("failed to cache fleet scan", logging.String("key", key), logging.Err(err))
	}
	return res, nil
}

// RecalculateCertificate recomputes and persists one certificate's next survey.
func (s *Service) RecalculateCertificate(ctx context.Context, certID string) (res *domain.NextSurveyResult, err error) {
	defer func() { s.metrics.RecordRecalculation(KindCertificate, err) }()

	certID = strings.TrimSpace(certID)
	if certID == "" {
		return nil, errors.InvalidParam("certificate_id is required")
	}
	cert, err := s.repo.GetCertificate(ctx, certID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnknown, "load certificate")
	}

	out, _, err := domain.CalculateForRecord(*cert)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnknown, fmt.Sprintf("certificate %s has a malformed date", certID))
	}
	if err := s.writer.SaveNextSurvey(ctx, certID, out); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeComputedWriteFailed, "persist next survey")
	}

	companyID := s.invalidateForShip(ctx, cert.ShipID)
	s.publish(ctx, newEvent(EventCertificateRecalculated, companyID, cert.ShipID, certID, out, s.clock()))
	return &out, nil
}

// RecalculateShip recomputes anniversary, special-survey cycle, next docking
// and every certificate's next survey for a ship, then persists them.
func (s *Service) RecalculateShip(ctx context.Context, shipID string) (comp *domain.ShipComputation, err error) {
	defer func() { s.metrics.RecordRecalculation(KindShip, err) }()

	shipID = strings.TrimSpace(shipID)
	if shipID == "" {
		return nil, errors.InvalidParam("ship_id is required")
	}
	ship, err := s.repo.GetShip(ctx, shipID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnknown, "load ship")
	}
	certs, err := s.repo.ListCertificatesByShips(ctx, []string{shipID})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnknown, "load certificates")
	}

	cfg, _, _ := s.snapshot()
	out := domain.ComputeShip(*ship, certs, cfg.DockingIntervalMonths)
	for _, sk := range out.Skipped {
		s.logger.Warn("skipping malformed date during ship recalculation",
			logging.String("ship_id", shipID),
			logging.String("certificate_id", sk.CertificateID),
			logging.String("field", sk.Field),
			logging.String("value", sk.Value),
		)
	}

	if err := s.writer.SaveShipComputation(ctx, out); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeComputedWriteFailed, "persist ship computation")
	}

	s.invalidateCompany(ctx, ship.CompanyID)
	s.publish(ctx, newEvent(EventShipRecalculated, ship.CompanyID, shipID, "", out, s.clock()))
	return &out, nil
}

// EquipmentValidity computes the re-test due date of one piece of safety
// equipment, honouring the ship's interval overrides.
func (s *Service) EquipmentValidity(ctx context.Context, shipID, equipmentName string, issued time.Time) (v *domain.EquipmentValidity, err error) {
	defer func() { s.metrics.RecordRecalculation(KindEquipment, err) }()

	if strings.TrimSpace(equipmentName) == "" {
		return nil, errors.InvalidParam("equipment name is required")
	}
	if issued.IsZero() {
		return nil, errors.InvalidParam("issued date is required")
	}
	ship, err := s.repo.GetShip(ctx, shipID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnknown, "load ship")
	}

	cfg, _, defaults := s.snapshot()
	out := domain.CalculateEquipmentValidity(equipmentName, issued,
		domain.NewIntervalTable(ship.TestReportIntervals), defaults, cfg.EquipmentFallbackMonths)
	return &out, nil
}

func (s *Service) invalidateForShip(ctx context.Context, shipID string) string {
	ship, err := s.repo.GetShip(ctx, shipID)
	if err != nil {
		s.logger.Warn("cannot resolve company for cache invalidation",
			logging.String("ship_id", shipID), logging.Err(err))
		return ""
	}
	s.invalidateCompany(ctx, ship.CompanyID)
	return ship.CompanyID
}

func (s *Service) invalidateCompany(ctx context.Context, companyID string) {
	if companyID == "" {
		return
	}
	if _, err := s.cache.DeleteByPrefix(ctx, upcomingCachePrefix(companyID)); err != nil {
		s.logger.Warn("failed to invalidate fleet scan cache",
			logging.String("company_id", companyID), logging.Err(err))
	}
}

// publish logs and drops publisher failures.
func (s *Service) publish(ctx context.Context, evt *SurveyEvent) {
	if err := s.publisher.PublishSurveyEvent(ctx, evt); err != nil {
		s.logger.Warn("failed to publish survey event",
			logging.String("event_type", evt.Type),
			logging.String("ship_id", evt.ShipID),
			logging.Err(err),
		)
	}
}

//Personal.AI order the ending
