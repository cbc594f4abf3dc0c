package survey

import "time"

// CalculateSpecialSurveyCycle derives the class-renewal cycle from the Full
// Term classification certificate with the latest valid date.  Both issue and
// valid dates must be present.  Returns nil when no certificate qualifies.
func CalculateSpecialSurveyCycle(certs []CertificateRecord) (cycle *SpecialSurveyCycle, skipped []string) {
	var (
		best *CertificateRecord
		from time.Time
		to   time.Time
	)
	for i := range certs {
		c := &certs[i]
		if c.CertType != CertTypeFullTerm || !IsClassificationCertificate(c.CertName, c.CertAbbreviation) {
			continue
		}
		issue, err := ParseDate(c.IssueDate)
		if err != nil {
			skipped = append(skipped, c.ID)
			continue
		}
		valid, err := ParseDate(c.ValidDate)
		if err != nil {
			skipped = append(skipped, c.ID)
			continue
		}
		if issue == nil || valid == nil {
			continue
		}
		if best == nil || valid.After(to) || (valid.Equal(to) && c.ID < best.ID) {
			best, from, to = c, *issue, *valid
		}
	}
	if best == nil {
		return nil, skipped
	}
	return &SpecialSurveyCycle{
		From:                 from,
		To:                   to,
		CycleType:            best.DisplayName(),
		IntermediateRequired: true,
		SourceCertificateID:  best.ID,
	}, skipped
}

//Personal.AI order the ending
