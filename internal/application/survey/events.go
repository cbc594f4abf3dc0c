package survey

import (
	"time"

	"github.com/google/uuid"
)

// Event types published by the service.
const (
	EventCertificateRecalculated = "survey.certificate.recalculated"
	EventShipRecalculated        = "survey.ship.recalculated"
)

// SurveyEvent announces freshly computed fields.  Key is the partition key.
type SurveyEvent struct {
	ID            string      `json:"id"`
	Type          string      `json:"type"`
	CompanyID     string      `json:"company_id,omitempty"`
	ShipID        string      `json:"ship_id"`
	CertificateID string      `json:"certificate_id,omitempty"`
	OccurredAt    time.Time   `json:"occurred_at"`
	Payload       interface{} `json:"payload"`
}

// Key returns the partition key; events for one ship stay ordered.
func (e *SurveyEvent) Key() string { return e.ShipID }

func newEvent(eventType, companyID, shipID, certID string, payload interface{}, at time.Time) *SurveyEvent {
	return &SurveyEvent{
		ID:            uuid.NewString(),
		Type:          eventType,
		CompanyID:     companyID,
		ShipID:        shipID,
		CertificateID: certID,
		OccurredAt:    at.UTC(),
		Payload:       payload,
	}
}

//Personal.AI order the ending
