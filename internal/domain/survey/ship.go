package survey

import stderrors "errors"

// CertificateComputation is the recomputed next survey of one certificate.
type CertificateComputation struct {
	CertificateID string           `json:"certificate_id"`
	Result        NextSurveyResult `json:"result"`
}

// ShipComputation bundles every field the engine derives for a ship.  The
// caller persists it; recomputing from the same snapshot yields the same
// value, so a failed write can simply be retried.
type ShipComputation struct {
	ShipID             string                   `json:"ship_id"`
	Anniversary        *AnniversaryDate         `json:"anniversary_date,omitempty"`
	AnniversaryManual  bool                     `json:"anniversary_manual"`
	SpecialSurveyCycle *SpecialSurveyCycle      `json:"special_survey_cycle,omitempty"`
	Docking            DockingSchedule          `json:"docking"`
	DockingSkipped     bool                     `json:"docking_skipped,omitempty"`
	Certificates       []CertificateComputation `json:"certificates"`
	Skipped            []SkippedCertificate     `json:"skipped,omitempty"`
}

// ComputeShip recomputes anniversary, special-survey cycle, next docking and
// every certificate's next survey.  A manually overridden anniversary is
// carried through unchanged.
func ComputeShip(ship ShipRecord, certs []CertificateRecord, dockingIntervalMonths int) ShipComputation {
	out := ShipComputation{ShipID: ship.ID, Certificates: []CertificateComputation{}}

	for _, c := range certs {
		res, _, err := CalculateForRecord(c)
		if err != nil {
			out.Skipped = append(out.Skipped, skipFor(c, err))
			continue
		}
		out.Certificates = append(out.Certificates, CertificateComputation{CertificateID: c.ID, Result: res})
	}

	if ship.Anniversary != nil && ship.Anniversary.ManualOverride {
		kept := *ship.Anniversary
		out.Anniversary = &kept
		out.AnniversaryManual = true
	} else {
		out.Anniversary, _ = CalculateAnniversary(certs)
	}
	out.SpecialSurveyCycle, _ = CalculateSpecialSurveyCycle(certs)

	docking, err := ScheduleShipDocking(ship, dockingIntervalMonths)
	if err != nil {
		sk := SkippedCertificate{ShipID: ship.ID, Reason: err.Error()}
		var fe *DateFieldError
		if stderrors.As(err, &fe) {
			sk.Field, sk.Value = fe.Field, fe.Value
		}
		out.Skipped = append(out.Skipped, sk)
		docking = DockingSchedule{IntervalMonths: dockingIntervalMonths, Reasoning: err.Error()}
		out.DockingSkipped = true
	}
	out.Docking = docking
	return out
}

func skipFor(c CertificateRecord, err error) SkippedCertificate {
	sk := SkippedCertificate{CertificateID: c.ID, ShipID: c.ShipID, Reason: err.Error()}
	var fe *DateFieldError
	if stderrors.As(err, &fe) {
		sk.Field, sk.Value = fe.Field, fe.Value
	}
	return sk
}

//Personal.AI order the ending
