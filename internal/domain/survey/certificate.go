package survey

import (
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// CertType enumeration
// ─────────────────────────────────────────────────────────────────────────────

// CertType is the declared statutory validity class of a certificate.
type CertType string

const (
	CertTypeFullTerm    CertType = "Full Term"
	CertTypeInterim     CertType = "Interim"
	CertTypeShortTerm   CertType = "Short Term"
	CertTypeProvisional CertType = "Provisional"
	CertTypeOther       CertType = "Other"
)

// ParseCertType maps the many stored spellings ("full term", "FULL-TERM",
// "fullterm", "short_term") onto the closed CertType set.  Anything else is
// CertTypeOther.
func ParseCertType(s string) CertType {
	k := strings.ToLower(strings.TrimSpace(s))
	k = strings.NewReplacer("-", "", "_", "", " ", "").Replace(k)
	switch k {
	case "fullterm", "full":
		return CertTypeFullTerm
	case "interim":
		return CertTypeInterim
	case "shortterm", "short":
		return CertTypeShortTerm
	case "provisional":
		return CertTypeProvisional
	default:
		return CertTypeOther
	}
}

// UnmarshalText normalizes the stored spelling when decoding snapshots.
func (t *CertType) UnmarshalText(b []byte) error {
	*t = ParseCertType(string(b))
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Records supplied by the document store
// ─────────────────────────────────────────────────────────────────────────────

// CertificateRecord is a read-only certificate snapshot.  Dates are kept in
// their stored string form; an empty string means the date is absent.
type CertificateRecord struct {
	ID               string   `json:"id"`
	ShipID           string   `json:"ship_id"`
	CertName         string   `json:"cert_name"`
	CertType         CertType `json:"cert_type"`
	CertAbbreviation string   `json:"cert_abbreviation,omitempty"`
	IssueDate        string   `json:"issue_date,omitempty"`
	ValidDate        string   `json:"valid_date,omitempty"`
	LastEndorse      string   `json:"last_endorse,omitempty"`
	Status           string   `json:"status,omitempty"`
}

// AnniversaryDate is the recurring day/month of a ship's statutory cycle.
type AnniversaryDate struct {
	Day                 int    `json:"day"`
	Month               int    `json:"month"`
	SourceCertificateID string `json:"source_certificate_id,omitempty"`
	ManualOverride      bool   `json:"manual_override"`
	AutoCalculated      bool   `json:"auto_calculated"`
}

// SpecialSurveyCycle bounds a class-renewal cycle.
type SpecialSurveyCycle struct {
	From                 time.Time `json:"from"`
	To                   time.Time `json:"to"`
	CycleType            string    `json:"cycle_type"`
	IntermediateRequired bool      `json:"intermediate_required"`
	SourceCertificateID  string    `json:"source_certificate_id,omitempty"`
}

// ShipRecord is a read-only ship snapshot.
type ShipRecord struct {
	ID                  string              `json:"id"`
	CompanyID           string              `json:"company_id"`
	Name                string              `json:"name"`
	Anniversary         *AnniversaryDate    `json:"anniversary_date,omitempty"`
	SpecialSurveyCycle  *SpecialSurveyCycle `json:"special_survey_cycle,omitempty"`
	LastDocking         string              `json:"last_docking,omitempty"`
	LastDocking2        string              `json:"last_docking_2,omitempty"`
	NextDocking         string              `json:"next_docking,omitempty"`
	TestReportIntervals map[string]int      `json:"test_report_intervals,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Parsed dates
// ─────────────────────────────────────────────────────────────────────────────

// CertificateDates holds the parsed optional dates of one certificate.
type CertificateDates struct {
	Issue       *time.Time
	Valid       *time.Time
	LastEndorse *time.Time
}

// Date field names, as reported in DateFieldError and skip logs.
const (
	FieldIssueDate    = "issue_date"
	FieldValidDate    = "valid_date"
	FieldLastEndorse  = "last_endorse"
	FieldLastDocking  = "last_docking"
	FieldLastDocking2 = "last_docking_2"
)

// DateFieldError reports which stored field failed to parse.
type DateFieldError struct {
	Field string
	Value string
	Err   error
}

func (e *DateFieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *DateFieldError) Unwrap() error { return e.Err }

func parseField(field, raw string) (*time.Time, error) {
	t, err := ParseDate(raw)
	if err != nil {
		return nil, &DateFieldError{Field: field, Value: raw, Err: err}
	}
	return t, nil
}

// Dates parses the record's stored dates.  The first malformed field aborts
// parsing with a *DateFieldError.
func (c CertificateRecord) Dates() (CertificateDates, error) {
	var d CertificateDates
	var err error
	if d.Issue, err = parseField(FieldIssueDate, c.IssueDate); err != nil {
		return CertificateDates{}, err
	}
	if d.Valid, err = parseField(FieldValidDate, c.ValidDate); err != nil {
		return CertificateDates{}, err
	}
	if d.LastEndorse, err = parseField(FieldLastEndorse, c.LastEndorse); err != nil {
		return CertificateDates{}, err
	}
	return d, nil
}

// DisplayName is the certificate name shown to operators.
func (c CertificateRecord) DisplayName() string {
	if name := strings.TrimSpace(c.CertName); name != "" {
		return name
	}
	return strings.TrimSpace(c.CertAbbreviation)
}

//Personal.AI order the ending
