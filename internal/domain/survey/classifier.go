package survey

import "strings"

// ─────────────────────────────────────────────────────────────────────────────
// SurveyBucket enumeration
// ─────────────────────────────────────────────────────────────────────────────

// SurveyBucket is the closed set of scheduling rule buckets.  Every consumer
// switches over all of them; adding a bucket means updating
// CalculateNextSurvey, ResolveWindow and the scanner.
type SurveyBucket string

const (
	BucketInterim               SurveyBucket = "interim"
	BucketFullTermNoEndorse     SurveyBucket = "full_term_no_endorse"
	BucketFullTermWithEndorse   SurveyBucket = "full_term_with_endorse"
	BucketSpecialDocument       SurveyBucket = "special_document"
	BucketShortTerm             SurveyBucket = "short_term"
	BucketConditionCertificate  SurveyBucket = "condition_certificate"
	BucketInitialSafetyDocument SurveyBucket = "initial_safety_document"
	BucketSpecialSurvey         SurveyBucket = "special_survey"
	BucketOther                 SurveyBucket = "other"
)

// AllBuckets lists every bucket in classification order.
var AllBuckets = []SurveyBucket{
	BucketSpecialDocument,
	BucketConditionCertificate,
	BucketInitialSafetyDocument,
	BucketSpecialSurvey,
	BucketInterim,
	BucketShortTerm,
	BucketFullTermWithEndorse,
	BucketFullTermNoEndorse,
	BucketOther,
}

// keywordSet matches a certificate by lower-cased name substring or by exact
// upper-cased abbreviation.
type keywordSet struct {
	names         []string
	abbreviations map[string]struct{}
}

func newKeywordSet(names []string, abbreviations ...string) keywordSet {
	ks := keywordSet{names: names, abbreviations: make(map[string]struct{}, len(abbreviations))}
	for _, a := range abbreviations {
		ks.abbreviations[a] = struct{}{}
	}
	return ks
}

func (ks keywordSet) match(lowerName, upperAbbr string) bool {
	if _, ok := ks.abbreviations[upperAbbr]; ok && upperAbbr != "" {
		return true
	}
	for _, kw := range ks.names {
		if strings.Contains(lowerName, kw) {
			return true
		}
	}
	return false
}

var (
	// Documents issued once that never call for a periodic survey.
	specialDocumentKeywords = newKeywordSet([]string{
		"declaration of maritime labour compliance",
		"continuous synopsis record",
		"minimum safe manning",
		"tonnage certificate",
		"certificate of registry",
		"registry certificate",
	}, "DMLC", "DMLC-I", "DMLC-II", "DMLC I", "DMLC II", "CSR", "MSMC", "ITC")

	conditionKeywords = newKeywordSet([]string{
		"condition of class",
		"condition certificate",
		"conditional certificate",
		"certificate of condition",
	}, "COC-CLASS")

	initialSafetyKeywords = newKeywordSet([]string{
		"safety management certificate",
		"ship security certificate",
		"maritime labour certificate",
		"maritime labor certificate",
	}, "SMC", "ISSC", "MLC")

	specialSurveyKeywords = newKeywordSet([]string{
		"special survey",
		"renewal survey record",
	}, "SS")

	interimKeywords   = newKeywordSet([]string{"interim"})
	shortTermKeywords = newKeywordSet([]string{"short term", "short-term", "provisional"})

	classificationKeywords = newKeywordSet([]string{
		"classification",
		"class certificate",
		"certificate of class",
	}, "CLASS", "COC")
)

// Classify assigns a certificate to exactly one bucket.  Buckets are tried
// most specific first: special documents, condition certificates, first-issue
// safety documents (interim SMC/ISSC/MLC), special surveys, interim, short
// term, then full term split on endorsement.  Unmatched certificates are
// BucketOther.
func Classify(name string, certType CertType, abbreviation string, hasLastEndorse bool) SurveyBucket {
	lowerName := strings.ToLower(strings.TrimSpace(name))
	upperAbbr := strings.ToUpper(strings.TrimSpace(abbreviation))

	switch {
	case specialDocumentKeywords.match(lowerName, upperAbbr):
		return BucketSpecialDocument
	case conditionKeywords.match(lowerName, upperAbbr):
		return BucketConditionCertificate
	case initialSafetyKeywords.match(lowerName, upperAbbr) && isInterim(certType, lowerName):
		return BucketInitialSafetyDocument
	case specialSurveyKeywords.match(lowerName, upperAbbr):
		return BucketSpecialSurvey
	case isInterim(certType, lowerName):
		return BucketInterim
	case certType == CertTypeShortTerm || certType == CertTypeProvisional ||
		shortTermKeywords.match(lowerName, upperAbbr):
		return BucketShortTerm
	case certType == CertTypeFullTerm && hasLastEndorse:
		return BucketFullTermWithEndorse
	case certType == CertTypeFullTerm:
		return BucketFullTermNoEndorse
	default:
		return BucketOther
	}
}

func isInterim(certType CertType, lowerName string) bool {
	return certType == CertTypeInterim || interimKeywords.match(lowerName, "")
}

// ClassifyRecord classifies a stored certificate given its parsed dates.
func ClassifyRecord(c CertificateRecord, d CertificateDates) SurveyBucket {
	return Classify(c.CertName, c.CertType, c.CertAbbreviation, d.LastEndorse != nil)
}

// IsClassificationCertificate reports whether the name or abbreviation
// identifies a class certificate.
func IsClassificationCertificate(name, abbreviation string) bool {
	return classificationKeywords.match(
		strings.ToLower(strings.TrimSpace(name)),
		strings.ToUpper(strings.TrimSpace(abbreviation)),
	)
}

//Personal.AI order the ending
