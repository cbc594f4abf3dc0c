package survey

import "time"

// CalculateAnniversary derives a ship's anniversary day/month from the Full
// Term certificate with the latest valid date.  It returns nil when no Full
// Term certificate has a valid date.  Stored dates that fail to parse are
// ignored and their certificate ids returned in skipped.
func CalculateAnniversary(certs []CertificateRecord) (ann *AnniversaryDate, skipped []string) {
	var (
		best     *time.Time
		sourceID string
	)
	for _, c := range certs {
		if c.CertType != CertTypeFullTerm {
			continue
		}
		valid, err := ParseDate(c.ValidDate)
		if err != nil {
			skipped = append(skipped, c.ID)
			continue
		}
		if valid == nil {
			continue
		}
		if best == nil || valid.After(*best) || (valid.Equal(*best) && c.ID < sourceID) {
			best, sourceID = valid, c.ID
		}
	}
	if best == nil {
		return nil, skipped
	}
	return &AnniversaryDate{
		Day:                 best.Day(),
		Month:               int(best.Month()),
		SourceCertificateID: sourceID,
		AutoCalculated:      true,
	}, skipped
}

//Personal.AI order the ending
