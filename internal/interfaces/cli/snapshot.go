package cli

import (
	"io"
	"os"

	"github.com/goccy/go-json"

	domain "github.com/turtacn/ShipCert-Intelligence/internal/domain/survey"
	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
)

// Snapshot is a fleet export: ships and their certificates as stored.
type Snapshot struct {
	Ships        []domain.ShipRecord        `json:"ships"`
	Certificates []domain.CertificateRecord `json:"certificates"`
}

// LoadSnapshot reads a snapshot file.  "-" reads standard input.
func LoadSnapshot(path string, stdin io.Reader) (*Snapshot, error) {
	if path == "" {
		return nil, errors.InvalidParam("--snapshot is required")
	}
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSnapshotInvalid, "open snapshot").WithDetail(path)
		}
		defer f.Close()
		r = f
	}
	return DecodeSnapshot(r)
}

// DecodeSnapshot decodes a snapshot document.  Certificates whose ship is
// absent from the ships list are kept but never scanned.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSnapshotInvalid, "decode snapshot")
	}
	return &snap, nil
}

// FilterCompany keeps only ships of companyID and their certificates.  An
// empty companyID returns the snapshot unchanged.
func (s *Snapshot) FilterCompany(companyID string) *Snapshot {
	if companyID == "" {
		return s
	}
	out := &Snapshot{}
	keep := make(map[string]struct{})
	for _, sh := range s.Ships {
		if sh.CompanyID == companyID {
			out.Ships = append(out.Ships, sh)
			keep[sh.ID] = struct{}{}
		}
	}
	for _, c := range s.Certificates {
		if _, ok := keep[c.ShipID]; ok {
			out.Certificates = append(out.Certificates, c)
		}
	}
	return out
}

// Ship returns the ship with the given id.
func (s *Snapshot) Ship(id string) (domain.ShipRecord, error) {
	for _, sh := range s.Ships {
		if sh.ID == id {
			return sh, nil
		}
	}
	return domain.ShipRecord{}, errors.New(errors.ErrCodeShipNotFound, "ship not found").WithDetail(id)
}

//Personal.AI order the ending
