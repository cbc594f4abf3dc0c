package survey

import (
	"context"
	"strings"

	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
)

// ChangeKind names the kind of document that changed in the store.
type ChangeKind string

const (
	ChangeCertificate ChangeKind = "certificate"
	ChangeShip        ChangeKind = "ship"
)

// DocumentChange is a notification from the document store that a ship or
// certificate was created or edited.
type DocumentChange struct {
	Kind          ChangeKind `json:"kind"`
	ShipID        string     `json:"ship_id,omitempty"`
	CertificateID string     `json:"certificate_id,omitempty"`
}

// ApplyChange runs the recalculation a document change calls for.  A
// certificate change without a certificate id falls back to recalculating
// its ship.
func (s *Service) ApplyChange(ctx context.Context, ch DocumentChange) error {
	kind := ChangeKind(strings.ToLower(strings.TrimSpace(string(ch.Kind))))
	s.logger.Debug("applying document change",
		logging.String("kind", string(kind)),
		logging.String("ship_id", ch.ShipID),
		logging.String("certificate_id", ch.CertificateID))

	switch kind {
	case ChangeCertificate:
		if strings.TrimSpace(ch.CertificateID) != "" {
			_, err := s.RecalculateCertificate(ctx, ch.CertificateID)
			return err
		}
		if strings.TrimSpace(ch.ShipID) == "" {
			return errors.InvalidParam("certificate change carries neither certificate_id nor ship_id")
		}
		_, err := s.RecalculateShip(ctx, ch.ShipID)
		return err
	case ChangeShip:
		_, err := s.RecalculateShip(ctx, ch.ShipID)
		return err
	default:
		return errors.InvalidParam("unknown change kind").WithDetail(string(ch.Kind))
	}
}

//Personal.AI order the ending
