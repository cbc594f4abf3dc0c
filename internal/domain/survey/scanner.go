package survey

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/monitoring/logging"
)

// DefaultDueSoonDays is the inclusive upper bound of the due-soon flag.
const DefaultDueSoonDays = 30

// UpcomingSurveyEntry is one actionable certificate in a fleet scan.
type UpcomingSurveyEntry struct {
	CertificateID    string        `json:"certificate_id"`
	ShipID           string        `json:"ship_id"`
	ShipName         string        `json:"ship_name"`
	CertName         string        `json:"cert_name"`
	CertAbbreviation string        `json:"cert_abbreviation"`
	// NextSurveyDate is the date the entry is actioned by.  For an Interim
	// certificate that is its valid date, not the valid − 3 months which
	// recalculation persists as next_survey_date.
	NextSurveyDate   *time.Time    `json:"next_survey_date"`
	NextSurveyType   string        `json:"next_survey_type"`
	DaysUntilSurvey  int           `json:"days_until_survey"`
	IsOverdue        bool          `json:"is_overdue"`
	IsDueSoon        bool          `json:"is_due_soon"`
	Bucket           SurveyBucket  `json:"bucket"`
	Window           *SurveyWindow `json:"window,omitempty"`
}

// SkippedCertificate records a certificate left out because a stored date
// could not be parsed.
type SkippedCertificate struct {
	CertificateID string `json:"certificate_id"`
	ShipID        string `json:"ship_id"`
	Field         string `json:"field"`
	Value         string `json:"value"`
	Reason        string `json:"reason"`
}

// ScanResult is the fleet-scan output.
type ScanResult struct {
	UpcomingSurveys []UpcomingSurveyEntry `json:"upcoming_surveys"`
	TotalCount      int                   `json:"total_count"`
	CheckDate       time.Time             `json:"check_date"`
	Skipped         []SkippedCertificate  `json:"skipped,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Scanner
// ─────────────────────────────────────────────────────────────────────────────

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithDueSoonDays overrides the due-soon threshold.  Negative values are ignored.
func WithDueSoonDays(days int) ScannerOption {
	return func(s *Scanner) {
		if days >= 0 {
			s.dueSoonDays = days
		}
	}
}

// WithWorkers evaluates up to n ships concurrently.  n ≤ 1 scans sequentially.
func WithWorkers(n int) ScannerOption {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the logger used to report skipped certificates.
func WithLogger(l logging.Logger) ScannerOption {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// Scanner evaluates every certificate of a fleet against a check date.  A
// Scanner holds only its options and is safe for concurrent use.
type Scanner struct {
	dueSoonDays int
	workers     int
	logger      logging.Logger
}

// NewScanner builds a Scanner with a 30-day due-soon threshold, sequential
// evaluation and a no-op logger unless overridden.
func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{
		dueSoonDays: DefaultDueSoonDays,
		workers:     1,
		logger:      logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// shipBatch is the unit of work: one ship and its certificates in input order.
type shipBatch struct {
	ship  ShipRecord
	certs []CertificateRecord
}

type batchResult struct {
	entries []UpcomingSurveyEntry
	skipped []SkippedCertificate
}

// Scan classifies, schedules and windows every certificate that belongs to
// one of ships.  Certificates with a malformed stored date are logged and
// reported in Skipped; the scan itself only fails when ctx is cancelled.
func (s *Scanner) Scan(ctx context.Context, certs []CertificateRecord, ships []ShipRecord, today time.Time) (*ScanResult, error) {
	today = Civil(today)
	batches := groupByShip(certs, ships)
	results := make([]batchResult, len(batches))

	if s.workers <= 1 || len(batches) <= 1 {
		for i, b := range batches {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = s.scanShip(b, today)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.workers)
		for i, b := range batches {
			i, b := i, b
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = s.scanShip(b, today)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	out := &ScanResult{CheckDate: today, UpcomingSurveys: []UpcomingSurveyEntry{}}
	for _, r := range results {
		out.UpcomingSurveys = append(out.UpcomingSurveys, r.entries...)
		out.Skipped = append(out.Skipped, r.skipped...)
	}
	SortEntries(out.UpcomingSurveys)
	out.TotalCount = len(out.UpcomingSurveys)
	return out, nil
}

func groupByShip(certs []CertificateRecord, ships []ShipRecord) []shipBatch {
	batches := make([]shipBatch, len(ships))
	index := make(map[string]int, len(ships))
	for i, sh := range ships {
		batches[i].ship = sh
		if _, dup := index[sh.ID]; !dup {
			index[sh.ID] = i
		}
	}
	for _, c := range certs {
		if i, ok := index[c.ShipID]; ok {
			batches[i].certs = append(batches[i].certs, c)
		}
	}
	return batches
}

func (s *Scanner) scanShip(b shipBatch, today time.Time) batchResult {
	var r batchResult
	for _, c := range b.certs {
		entry, included, err := s.Evaluate(c, b.ship, today)
		if err != nil {
			sk := skipFor(c, err)
			s.logger.Warn("skipping certificate with malformed date",
				logging.String("certificate_id", sk.CertificateID),
				logging.String("ship_id", sk.ShipID),
				logging.String("field", sk.Field),
				logging.String("value", sk.Value),
				logging.Err(err),
			)
			r.skipped = append(r.skipped, sk)
			continue
		}
		if included {
			r.entries = append(r.entries, *entry)
		}
	}
	return r
}

// Evaluate runs one certificate through classification, scheduling and
// window resolution.  The entry is returned even when it is not inside its
// window; included reports membership.
//
// Interim certificates are windowed on their valid date in the scan: the
// initial full-term survey must be completed before the interim lapses, so
// the actionable period is the 90 days before expiry.  Direct-window buckets
// carry the window close as their entry date.
func (s *Scanner) Evaluate(c CertificateRecord, ship ShipRecord, today time.Time) (*UpcomingSurveyEntry, bool, error) {
	today = Civil(today)
	res, d, err := CalculateForRecord(c)
	if err != nil {
		return nil, false, err
	}

	var (
		w        *SurveyWindow
		within   bool
		date     *time.Time
		typeName = res.NextSurveyType
	)
	switch res.Bucket {
	case BucketInterim:
		w, within = ResolveWindow(BucketInitialSafetyDocument, res, d.Issue, d.Valid, today)
		if w != nil {
			date = datePtr(w.Close)
			typeName = SurveyTypeInitial
		}
	case BucketConditionCertificate, BucketInitialSafetyDocument:
		w, within = ResolveWindow(res.Bucket, res, d.Issue, d.Valid, today)
		if w != nil {
			date = datePtr(w.Close)
		}
	default:
		w, within = ResolveWindow(res.Bucket, res, d.Issue, d.Valid, today)
		date = res.NextSurvey
	}

	entry := &UpcomingSurveyEntry{
		CertificateID:    c.ID,
		ShipID:           c.ShipID,
		ShipName:         ship.Name,
		CertName:         c.DisplayName(),
		CertAbbreviation: c.CertAbbreviation,
		NextSurveyDate:   date,
		NextSurveyType:   typeName,
		Bucket:           res.Bucket,
		Window:           w,
	}
	if date != nil {
		entry.DaysUntilSurvey = DaysBetween(today, *date)
		entry.IsOverdue = entry.DaysUntilSurvey < 0
		entry.IsDueSoon = entry.DaysUntilSurvey >= 0 && entry.DaysUntilSurvey <= s.dueSoonDays
	}
	return entry, within, nil
}

// SortEntries orders entries ascending by next survey date with undated
// entries last.  Ties break on ship name, certificate name, then id so equal
// inputs always sort identically.
func SortEntries(entries []UpcomingSurveyEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.NextSurveyDate == nil && b.NextSurveyDate != nil:
			return false
		case a.NextSurveyDate != nil && b.NextSurveyDate == nil:
			return true
		case a.NextSurveyDate != nil && !a.NextSurveyDate.Equal(*b.NextSurveyDate):
			return a.NextSurveyDate.Before(*b.NextSurveyDate)
		}
		if a.ShipName != b.ShipName {
			return a.ShipName < b.ShipName
		}
		if a.CertName != b.CertName {
			return a.CertName < b.CertName
		}
		return a.CertificateID < b.CertificateID
	})
}

//Personal.AI order the ending
