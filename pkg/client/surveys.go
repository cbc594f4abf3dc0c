package client

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
)

// DateLayout is the wire format of every date.
const DateLayout = "2006-01-02"

// ---------------------------------------------------------------------------
// Response types
// ---------------------------------------------------------------------------

type Window struct {
	Open       string `json:"open"`
	Close      string `json:"close"`
	Annotation string `json:"annotation"`
}

type UpcomingSurvey struct {
	CertificateID    string  `json:"certificate_id"`
	ShipID           string  `json:"ship_id"`
	ShipName         string  `json:"ship_name"`
	CertName         string  `json:"cert_name"`
	CertAbbreviation string  `json:"cert_abbreviation"`
	NextSurveyDate   *string `json:"next_survey_date"`
	NextSurveyType   string  `json:"next_survey_type"`
	DaysUntilSurvey  int     `json:"days_until_survey"`
	IsOverdue        bool    `json:"is_overdue"`
	IsDueSoon        bool    `json:"is_due_soon"`
	Window           *Window `json:"window,omitempty"`
}

// Skipped names a certificate left out because a stored date is malformed.
type Skipped struct {
	CertificateID string `json:"certificate_id"`
	ShipID        string `json:"ship_id"`
	Field         string `json:"field"`
	Value         string `json:"value"`
}

type UpcomingSurveys struct {
	UpcomingSurveys []UpcomingSurvey `json:"upcoming_surveys"`
	TotalCount      int              `json:"total_count"`
	CheckDate       string           `json:"check_date"`
	Skipped         []Skipped        `json:"skipped,omitempty"`
}

type NextSurvey struct {
	CertificateID  string  `json:"certificate_id"`
	Bucket         string  `json:"bucket"`
	NextSurveyDate *string `json:"next_survey_date"`
	NextSurveyType string  `json:"next_survey_type,omitempty"`
	Annotation     string  `json:"annotation"`
	Reasoning      string  `json:"reasoning"`
}

type Anniversary struct {
	Day                 int    `json:"day"`
	Month               int    `json:"month"`
	SourceCertificateID string `json:"source_certificate_id,omitempty"`
	ManualOverride      bool   `json:"manual_override"`
	AutoCalculated      bool   `json:"auto_calculated"`
}

type SpecialSurveyCycle struct {
	From                 string `json:"from"`
	To                   string `json:"to"`
	CycleType            string `json:"cycle_type"`
	IntermediateRequired bool   `json:"intermediate_required"`
	SourceCertificateID  string `json:"source_certificate_id,omitempty"`
}

type Docking struct {
	LastDocking    *string `json:"last_docking"`
	NextDocking    *string `json:"next_docking"`
	IntervalMonths int     `json:"interval_months"`
	Reasoning      string  `json:"reasoning"`
}

type ShipRecalculation struct {
	ShipID             string              `json:"ship_id"`
	Anniversary        *Anniversary        `json:"anniversary_date"`
	AnniversaryManual  bool                `json:"anniversary_manual"`
	SpecialSurveyCycle *SpecialSurveyCycle `json:"special_survey_cycle"`
	Docking            Docking             `json:"docking"`
	Certificates       []NextSurvey        `json:"certificates"`
	Skipped            []Skipped           `json:"skipped,omitempty"`
}

type EquipmentValidity struct {
	EquipmentName  string `json:"equipment_name"`
	Issued         string `json:"issued"`
	IntervalMonths int    `json:"interval_months"`
	DueDate        string `json:"due_date"`
	Source         string `json:"source"`
	MatchedKey     string `json:"matched_key,omitempty"`
}

// ---------------------------------------------------------------------------
// SurveysClient
// ---------------------------------------------------------------------------

// SurveysClient wraps the /api/v1 survey endpoints.
type SurveysClient struct {
	client *Client
}

// ListUpcoming scans a company's fleet.  A zero day lets the server use its
// own today.
func (s *SurveysClient) ListUpcoming(ctx context.Context, companyID string, day time.Time) (*UpcomingSurveys, error) {
	if strings.TrimSpace(companyID) == "" {
		return nil, errors.InvalidParam("companyID is required")
	}
	path := "/api/v1/companies/" + url.PathEscape(companyID) + "/upcoming-surveys"
	if !day.IsZero() {
		path += "?" + url.Values{"date": {day.Format(DateLayout)}}.Encode()
	}
	var out UpcomingSurveys
	if err := s.client.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecalculateCertificate recomputes and persists one certificate.
func (s *SurveysClient) RecalculateCertificate(ctx context.Context, certID string) (*NextSurvey, error) {
	if strings.TrimSpace(certID) == "" {
		return nil, errors.InvalidParam("certID is required")
	}
	var out NextSurvey
	if err := s.client.post(ctx, "/api/v1/certificates/"+url.PathEscape(certID)+"/recalculate", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecalculateShip recomputes and persists every derived field of a ship.
func (s *SurveysClient) RecalculateShip(ctx context.Context, shipID string) (*ShipRecalculation, error) {
	if strings.TrimSpace(shipID) == "" {
		return nil, errors.InvalidParam("shipID is required")
	}
	var out ShipRecalculation
	if err := s.client.post(ctx, "/api/v1/ships/"+url.PathEscape(shipID)+"/recalculate", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EquipmentValidity asks for the re-test due date of one piece of equipment.
func (s *SurveysClient) EquipmentValidity(ctx context.Context, shipID, name string, issued time.Time) (*EquipmentValidity, error) {
	if strings.TrimSpace(shipID) == "" || strings.TrimSpace(name) == "" {
		return nil, errors.InvalidParam("shipID and name are required")
	}
	if issued.IsZero() {
		return nil, errors.InvalidParam("issued is required")
	}
	q := url.Values{"name": {name}, "issued": {issued.Format(DateLayout)}}
	var out EquipmentValidity
	if err := s.client.get(ctx, "/api/v1/ships/"+url.PathEscape(shipID)+"/equipment-validity?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

//Personal.AI order the ending
