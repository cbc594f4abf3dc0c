package handlers

import (
	"time"

	domain "github.com/turtacn/ShipCert-Intelligence/internal/domain/survey"
)

// Response DTOs render every civil date as YYYY-MM-DD; absent dates are null.

type WindowDTO struct {
	Open       string `json:"open"`
	Close      string `json:"close"`
	Annotation string `json:"annotation"`
}

type UpcomingSurveyDTO struct {
	CertificateID    string     `json:"certificate_id"`
	ShipID           string     `json:"ship_id"`
	ShipName         string     `json:"ship_name"`
	CertName         string     `json:"cert_name"`
	CertAbbreviation string     `json:"cert_abbreviation"`
	NextSurveyDate   *string    `json:"next_survey_date"`
	NextSurveyType   string     `json:"next_survey_type"`
	DaysUntilSurvey  int        `json:"days_until_survey"`
	IsOverdue        bool       `json:"is_overdue"`
	IsDueSoon        bool       `json:"is_due_soon"`
	Window           *WindowDTO `json:"window,omitempty"`
}

type SkippedDTO struct {
	CertificateID string `json:"certificate_id"`
	ShipID        string `json:"ship_id"`
	Field         string `json:"field"`
	Value         string `json:"value"`
}

// UpcomingSurveysResponse is the fleet-scan output contract.
type UpcomingSurveysResponse struct {
	UpcomingSurveys []UpcomingSurveyDTO `json:"upcoming_surveys"`
	TotalCount      int                 `json:"total_count"`
	CheckDate       string              `json:"check_date"`
	Skipped         []SkippedDTO        `json:"skipped,omitempty"`
}

type NextSurveyDTO struct {
	CertificateID  string  `json:"certificate_id"`
	Bucket         string  `json:"bucket"`
	NextSurveyDate *string `json:"next_survey_date"`
	NextSurveyType string  `json:"next_survey_type,omitempty"`
	Annotation     string  `json:"annotation"`
	Reasoning      string  `json:"reasoning"`
}

type AnniversaryDTO struct {
	Day                 int    `json:"day"`
	Month               int    `json:"month"`
	SourceCertificateID string `json:"source_certificate_id,omitempty"`
	ManualOverride      bool   `json:"manual_override"`
	AutoCalculated      bool   `json:"auto_calculated"`
}

type SpecialSurveyCycleDTO struct {
	From                 string `json:"from"`
	To                   string `json:"to"`
	CycleType            string `json:"cycle_type"`
	IntermediateRequired bool   `json:"intermediate_required"`
	SourceCertificateID  string `json:"source_certificate_id,omitempty"`
}

type DockingDTO struct {
	LastDocking    *string `json:"last_docking"`
	NextDocking    *string `json:"next_docking"`
	IntervalMonths int     `json:"interval_months"`
	Reasoning      string  `json:"reasoning"`
}

type ShipRecalculationResponse struct {
	ShipID             string                 `json:"ship_id"`
	Anniversary        *AnniversaryDTO        `json:"anniversary_date"`
	AnniversaryManual  bool                   `json:"anniversary_manual"`
	SpecialSurveyCycle *SpecialSurveyCycleDTO `json:"special_survey_cycle"`
	Docking            DockingDTO             `json:"docking"`
	Certificates       []NextSurveyDTO        `json:"certificates"`
	Skipped            []SkippedDTO           `json:"skipped,omitempty"`
}

type EquipmentValidityResponse struct {
	EquipmentName  string `json:"equipment_name"`
	Issued         string `json:"issued"`
	IntervalMonths int    `json:"interval_months"`
	DueDate        string `json:"due_date"`
	Source         string `json:"source"`
	MatchedKey     string `json:"matched_key,omitempty"`
}

func dateString(t time.Time) string { return t.Format(domain.DateLayout) }

func optionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := dateString(*t)
	return &s
}

func toSkippedDTOs(in []domain.SkippedCertificate) []SkippedDTO {
	if len(in) == 0 {
		return nil
	}
	out := make([]SkippedDTO, len(in))
	for i, s := range in {
		out[i] = SkippedDTO{CertificateID: s.CertificateID, ShipID: s.ShipID, Field: s.Field, Value: s.Value}
	}
	return out
}

func toUpcomingResponse(res *domain.ScanResult) UpcomingSurveysResponse {
	out := UpcomingSurveysResponse{
		UpcomingSurveys: make([]UpcomingSurveyDTO, 0, len(res.UpcomingSurveys)),
		TotalCount:      res.TotalCount,
		CheckDate:       dateString(res.CheckDate),
		Skipped:         toSkippedDTOs(res.Skipped),
	}
	for _, e := range res.UpcomingSurveys {
		dto := UpcomingSurveyDTO{
			CertificateID:    e.CertificateID,
			ShipID:           e.ShipID,
			ShipName:         e.ShipName,
			CertName:         e.CertName,
			CertAbbreviation: e.CertAbbreviation,
			NextSurveyDate:   optionalDate(e.NextSurveyDate),
			NextSurveyType:   e.NextSurveyType,
			DaysUntilSurvey:  e.DaysUntilSurvey,
			IsOverdue:        e.IsOverdue,
			IsDueSoon:        e.IsDueSoon,
		}
		if e.Window != nil {
			dto.Window = &WindowDTO{
				Open:       dateString(e.Window.Open),
				Close:      dateString(e.Window.Close),
				Annotation: string(e.Window.Annotation),
			}
		}
		out.UpcomingSurveys = append(out.UpcomingSurveys, dto)
	}
	return out
}

func toNextSurveyDTO(certID string, r domain.NextSurveyResult) NextSurveyDTO {
	return NextSurveyDTO{
		CertificateID:  certID,
		Bucket:         string(r.Bucket),
		NextSurveyDate: optionalDate(r.NextSurvey),
		NextSurveyType: r.NextSurveyType,
		Annotation:     string(r.Annotation),
		Reasoning:      r.Reasoning,
	}
}

func toShipResponse(c *domain.ShipComputation) ShipRecalculationResponse {
	out := ShipRecalculationResponse{
		ShipID:            c.ShipID,
		AnniversaryManual: c.AnniversaryManual,
		Docking: DockingDTO{
			LastDocking:    optionalDate(c.Docking.LastDocking),
			NextDocking:    optionalDate(c.Docking.NextDocking),
			IntervalMonths: c.Docking.IntervalMonths,
			Reasoning:      c.Docking.Reasoning,
		},
		Certificates: make([]NextSurveyDTO, 0, len(c.Certificates)),
		Skipped:      toSkippedDTOs(c.Skipped),
	}
	if a := c.Anniversary; a != nil {
		out.Anniversary = &AnniversaryDTO{
			Day: a.Day, Month: a.Month, SourceCertificateID: a.SourceCertificateID,
			ManualOverride: a.ManualOverride, AutoCalculated: a.AutoCalculated,
		}
	}
	if s := c.SpecialSurveyCycle; s != nil {
		out.SpecialSurveyCycle = &SpecialSurveyCycleDTO{
			From: dateString(s.From), To: dateString(s.To), CycleType: s.CycleType,
			IntermediateRequired: s.IntermediateRequired, SourceCertificateID: s.SourceCertificateID,
		}
	}
	for _, cc := range c.Certificates {
		out.Certificates = append(out.Certificates, toNextSurveyDTO(cc.CertificateID, cc.Result))
	}
	return out
}

func toEquipmentResponse(v *domain.EquipmentValidity) EquipmentValidityResponse {
	return EquipmentValidityResponse{
		EquipmentName:  v.EquipmentName,
		Issued:         dateString(v.Issued),
		IntervalMonths: v.IntervalMonths,
		DueDate:        dateString(v.DueDate),
		Source:         string(v.Source),
		MatchedKey:     v.MatchedKey,
	}
}

//Personal.AI order the ending
