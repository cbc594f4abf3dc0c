package prometheus

import (
	"strconv"
	"time"

	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
	"github.com/turtacn/ShipCert-Intelligence/pkg/types/common"
)

// SurveyMetrics holds every metric the survey service exports.
type SurveyMetrics struct {
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec

	ScanDuration       HistogramVec
	ScanCertificates   HistogramVec
	ScanSkippedTotal   CounterVec
	RecalculationTotal CounterVec

	CacheLookupsTotal CounterVec

	EventsPublishedTotal CounterVec
	ChangesConsumedTotal CounterVec

	DBPoolOpen        GaugeVec
	DBPoolInUse       GaugeVec
	HealthCheckStatus GaugeVec
}

var (
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	DefaultScanDurationBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}
	DefaultScanSizeBuckets     = []float64{0, 10, 50, 100, 500, 1000, 5000}
)

// NewSurveyMetrics registers all survey metrics on collector.
func NewSurveyMetrics(c MetricsCollector) *SurveyMetrics {
	return &SurveyMetrics{
		HTTPRequestsTotal:   c.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code"),
		HTTPRequestDuration: c.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path"),

		ScanDuration:       c.RegisterHistogram("scan_duration_seconds", "Fleet scan duration", DefaultScanDurationBuckets),
		ScanCertificates:   c.RegisterHistogram("scan_upcoming_certificates", "Certificates with an upcoming survey per scan", DefaultScanSizeBuckets),
		ScanSkippedTotal:   c.RegisterCounter("scan_skipped_total", "Certificates skipped by scans because of malformed dates"),
		RecalculationTotal: c.RegisterCounter("recalculations_total", "Recalculations by kind and outcome", "kind", "status"),

		CacheLookupsTotal: c.RegisterCounter("cache_lookups_total", "Fleet scan cache lookups", "result"),

		EventsPublishedTotal: c.RegisterCounter("events_published_total", "Survey events handed to the broker", "event_type", "status"),
		ChangesConsumedTotal: c.RegisterCounter("changes_consumed_total", "Document change notifications consumed", "kind", "status"),

		DBPoolOpen:        c.RegisterGauge("db_pool_open_connections", "Open database connections"),
		DBPoolInUse:       c.RegisterGauge("db_pool_in_use_connections", "In-use database connections"),
		HealthCheckStatus: c.RegisterGauge("health_check_status", "Health check status (1=up, 0.5=degraded, 0=down)", "component"),
	}
}

func statusLabel(err error) string {
	if err == nil {
		return "success"
	}
	if errors.IsNotFound(err) {
		return "not_found"
	}
	return "failure"
}

// ObserveScan records one completed fleet scan.
func (m *SurveyMetrics) ObserveScan(d time.Duration, included, skipped int) {
	m.ScanDuration.WithLabelValues().Observe(d.Seconds())
	m.ScanCertificates.WithLabelValues().Observe(float64(included))
	if skipped > 0 {
		m.ScanSkippedTotal.WithLabelValues().Add(float64(skipped))
	}
}

// RecordRecalculation counts one recalculation of kind.
func (m *SurveyMetrics) RecordRecalculation(kind string, err error) {
	m.RecalculationTotal.WithLabelValues(kind, statusLabel(err)).Inc()
}

func (m *SurveyMetrics) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}

func (m *SurveyMetrics) RecordHTTPRequest(method, path string, statusCode int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *SurveyMetrics) RecordEventPublished(eventType string, err error) {
	m.EventsPublishedTotal.WithLabelValues(eventType, statusLabel(err)).Inc()
}

func (m *SurveyMetrics) RecordChangeConsumed(kind string, err error) {
	m.ChangesConsumedTotal.WithLabelValues(kind, statusLabel(err)).Inc()
}

// RecordDBPool copies connection pool gauges.
func (m *SurveyMetrics) RecordDBPool(open, inUse int) {
	m.DBPoolOpen.WithLabelValues().Set(float64(open))
	m.DBPoolInUse.WithLabelValues().Set(float64(inUse))
}

// RecordHealth exports each component's health as a gauge.
func (m *SurveyMetrics) RecordHealth(components []common.ComponentHealth) {
	for _, c := range components {
		v := 0.0
		switch c.Status {
		case common.HealthUp:
			v = 1
		case common.HealthDegraded:
			v = 0.5
		}
		m.HealthCheckStatus.WithLabelValues(c.Name).Set(v)
	}
}

//Personal.AI order the ending
