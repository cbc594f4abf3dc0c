package survey

import (
	"fmt"
	"time"
)

// Survey types reported alongside a next-survey date.
const (
	SurveyTypeInitial         = "Initial"
	SurveyTypeIntermediate    = "Intermediate"
	SurveyTypeRenewal         = "Renewal"
	SurveyTypeConditionExpiry = "Condition Certificate Expiry"
	SurveyTypeSpecialSurvey   = "Special Survey"
	SurveyTypeOther           = "Other"
)

const (
	intermediateOffsetMonths = -24
	renewalOffsetMonths      = -3
)

// NextSurveyResult is the per-certificate output.  NextSurvey is nil when the
// certificate cannot be scheduled from its own dates; Reasoning then names
// the missing field.  NextSurveyType is empty when there is no survey to
// report.
type NextSurveyResult struct {
	Bucket         SurveyBucket `json:"bucket"`
	NextSurvey     *time.Time   `json:"next_survey_date"`
	NextSurveyType string       `json:"next_survey_type,omitempty"`
	Annotation     Annotation   `json:"annotation"`
	Reasoning      string       `json:"reasoning"`
}

func missing(bucket SurveyBucket, surveyType string, ann Annotation, fields ...string) NextSurveyResult {
	return NextSurveyResult{
		Bucket:         bucket,
		NextSurveyType: surveyType,
		Annotation:     ann,
		Reasoning:      fmt.Sprintf("cannot schedule: missing %s", joinFields(fields)),
	}
}

func joinFields(fields []string) string {
	switch len(fields) {
	case 0:
		return "date"
	case 1:
		return fields[0]
	default:
		out := fields[0]
		for _, f := range fields[1:] {
			out += " and " + f
		}
		return out
	}
}

// CalculateNextSurvey derives the next statutory survey for a bucket from the
// certificate's dates.  It never fails: an unschedulable certificate returns
// a nil NextSurvey with a reasoning string.
func CalculateNextSurvey(bucket SurveyBucket, issue, valid, lastEndorse *time.Time) NextSurveyResult {
	switch bucket {
	case BucketInterim:
		if valid == nil {
			return missing(bucket, "", AnnotationMinus3M, FieldValidDate)
		}
		next := AddMonths(*valid, renewalOffsetMonths)
		return NextSurveyResult{
			Bucket:         bucket,
			NextSurvey:     &next,
			NextSurveyType: SurveyTypeInitial,
			Annotation:     AnnotationMinus3M,
			Reasoning:      fmt.Sprintf("interim certificate: initial survey due 3 months before expiry %s", valid.Format(DateLayout)),
		}

	case BucketFullTermNoEndorse:
		if valid == nil {
			return missing(bucket, "", AnnotationPlusMinus3M, FieldValidDate)
		}
		next := AddMonths(*valid, intermediateOffsetMonths)
		return NextSurveyResult{
			Bucket:         bucket,
			NextSurvey:     &next,
			NextSurveyType: SurveyTypeIntermediate,
			Annotation:     AnnotationPlusMinus3M,
			Reasoning:      fmt.Sprintf("full term, not endorsed: intermediate survey due 24 months before expiry %s", valid.Format(DateLayout)),
		}

	case BucketFullTermWithEndorse:
		if valid == nil {
			return missing(bucket, "", AnnotationMinus3M, FieldValidDate)
		}
		next := AddMonths(*valid, renewalOffsetMonths)
		return NextSurveyResult{
			Bucket:         bucket,
			NextSurvey:     &next,
			NextSurveyType: SurveyTypeRenewal,
			Annotation:     AnnotationMinus3M,
			Reasoning: fmt.Sprintf("full term, endorsed %s: renewal survey due 3 months before expiry %s",
				FormatDate(lastEndorse), valid.Format(DateLayout)),
		}

	case BucketSpecialDocument:
		return NextSurveyResult{
			Bucket:     bucket,
			Annotation: AnnotationNone,
			Reasoning:  "special document: no recurring survey",
		}

	case BucketShortTerm:
		return NextSurveyResult{
			Bucket:     bucket,
			Annotation: AnnotationNone,
			Reasoning:  "short term certificate: replaced by the full term certificate, no survey scheduled",
		}

	case BucketConditionCertificate:
		switch {
		case issue == nil && valid == nil:
			return missing(bucket, SurveyTypeConditionExpiry, AnnotationDirect, FieldIssueDate, FieldValidDate)
		case issue == nil:
			return missing(bucket, SurveyTypeConditionExpiry, AnnotationDirect, FieldIssueDate)
		case valid == nil:
			return missing(bucket, SurveyTypeConditionExpiry, AnnotationDirect, FieldValidDate)
		}
		return NextSurveyResult{
			Bucket:         bucket,
			NextSurveyType: SurveyTypeConditionExpiry,
			Annotation:     AnnotationDirect,
			Reasoning: fmt.Sprintf("condition certificate: window runs from issue %s to expiry %s",
				issue.Format(DateLayout), valid.Format(DateLayout)),
		}

	case BucketInitialSafetyDocument:
		if valid == nil {
			return missing(bucket, SurveyTypeInitial, AnnotationDirect, FieldValidDate)
		}
		return NextSurveyResult{
			Bucket:         bucket,
			NextSurveyType: SurveyTypeInitial,
			Annotation:     AnnotationDirect,
			Reasoning:      fmt.Sprintf("initial safety document: initial audit due in the 90 days before expiry %s", valid.Format(DateLayout)),
		}

	case BucketSpecialSurvey:
		if valid == nil {
			return missing(bucket, "", AnnotationDirect, FieldValidDate)
		}
		next := *valid
		return NextSurveyResult{
			Bucket:         bucket,
			NextSurvey:     &next,
			NextSurveyType: SurveyTypeSpecialSurvey,
			Annotation:     AnnotationDirect,
			Reasoning:      fmt.Sprintf("special survey due %s", valid.Format(DateLayout)),
		}

	case BucketOther:
		if valid == nil {
			return missing(bucket, "", AnnotationPlusMinus3M, FieldValidDate)
		}
		next := AddMonths(*valid, renewalOffsetMonths)
		return NextSurveyResult{
			Bucket:         bucket,
			NextSurvey:     &next,
			NextSurveyType: SurveyTypeOther,
			Annotation:     AnnotationPlusMinus3M,
			Reasoning:      fmt.Sprintf("survey due 3 months before expiry %s", valid.Format(DateLayout)),
		}
	}

	return NextSurveyResult{
		Bucket:     bucket,
		Annotation: AnnotationUnknown,
		Reasoning:  fmt.Sprintf("unknown bucket %q", bucket),
	}
}

// CalculateForRecord classifies and schedules a stored certificate.  The only
// error is a *DateFieldError for a malformed stored date.
func CalculateForRecord(c CertificateRecord) (NextSurveyResult, CertificateDates, error) {
	d, err := c.Dates()
	if err != nil {
		return NextSurveyResult{}, CertificateDates{}, err
	}
	bucket := ClassifyRecord(c, d)
	return CalculateNextSurvey(bucket, d.Issue, d.Valid, d.LastEndorse), d, nil
}

//Personal.AI order the ending
