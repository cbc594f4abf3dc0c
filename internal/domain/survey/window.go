package survey

import (
	"strings"
	"time"
)

// Annotation tags the shape of an inspection window.
type Annotation string

const (
	AnnotationMinus3M     Annotation = "-3M"
	AnnotationPlusMinus3M Annotation = "±3M"
	AnnotationPlusMinus6M Annotation = "±6M"
	AnnotationNone        Annotation = "none"

	// AnnotationDirect marks windows derived straight from certificate dates
	// rather than from a next-survey offset.
	AnnotationDirect Annotation = "direct"

	// AnnotationUnknown is any stored encoding ParseAnnotation cannot read.
	AnnotationUnknown Annotation = "unknown"
)

// directLeadInDays is the lead-in of the valid-date and special-survey windows.
const directLeadInDays = 90

// ParseAnnotation normalizes a stored window annotation.  The stored data
// mixes "±3M", "+3M" and "+-3M" for the same symmetric window; all of them map
// to AnnotationPlusMinus3M.  Unrecognised values map to AnnotationUnknown,
// which never resolves to a window.
func ParseAnnotation(s string) Annotation {
	k := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	switch k {
	case "-3M":
		return AnnotationMinus3M
	case "±3M", "+-3M", "+/-3M", "+3M":
		return AnnotationPlusMinus3M
	case "±6M", "+-6M", "+/-6M", "+6M":
		return AnnotationPlusMinus6M
	case "NONE", "":
		return AnnotationNone
	case "DIRECT":
		return AnnotationDirect
	default:
		return AnnotationUnknown
	}
}

// SurveyWindow is an inclusive [Open, Close] range of civil dates.
type SurveyWindow struct {
	Open       time.Time  `json:"open"`
	Close      time.Time  `json:"close"`
	Annotation Annotation `json:"annotation"`
}

// Contains reports whether Open ≤ day ≤ Close.
func (w SurveyWindow) Contains(day time.Time) bool {
	d := Civil(day)
	return !d.Before(w.Open) && !d.After(w.Close)
}

// annotationWindow builds the offset window around next for an annotation.
func annotationWindow(next time.Time, ann Annotation) (*SurveyWindow, bool) {
	switch ann {
	case AnnotationMinus3M:
		return &SurveyWindow{Open: AddMonths(next, -3), Close: next, Annotation: ann}, true
	case AnnotationPlusMinus3M:
		return &SurveyWindow{Open: AddMonths(next, -3), Close: AddMonths(next, 3), Annotation: ann}, true
	case AnnotationPlusMinus6M:
		return &SurveyWindow{Open: AddMonths(next, -6), Close: AddMonths(next, 6), Annotation: ann}, true
	default:
		return nil, false
	}
}

// validDateWindow is [valid − 90 days, valid].
func validDateWindow(valid time.Time) *SurveyWindow {
	return &SurveyWindow{Open: AddDays(valid, -directLeadInDays), Close: valid, Annotation: AnnotationDirect}
}

// ResolveWindow computes the inspection window for a calculated result and
// reports whether today lies inside it.  A bucket lacking its required date,
// or an annotation outside the known set, yields (nil, false).
func ResolveWindow(bucket SurveyBucket, res NextSurveyResult, issue, valid *time.Time, today time.Time) (*SurveyWindow, bool) {
	var w *SurveyWindow

	switch bucket {
	case BucketConditionCertificate:
		if issue == nil || valid == nil {
			return nil, false
		}
		w = &SurveyWindow{Open: *issue, Close: *valid, Annotation: AnnotationDirect}

	case BucketInitialSafetyDocument:
		if valid == nil {
			return nil, false
		}
		w = validDateWindow(*valid)

	case BucketSpecialSurvey:
		if res.NextSurvey == nil {
			return nil, false
		}
		next := *res.NextSurvey
		w = &SurveyWindow{Open: AddDays(next, -directLeadInDays), Close: next, Annotation: AnnotationDirect}

	case BucketInterim, BucketFullTermNoEndorse, BucketFullTermWithEndorse,
		BucketSpecialDocument, BucketShortTerm, BucketOther:
		if res.NextSurvey == nil {
			return nil, false
		}
		var ok bool
		if w, ok = annotationWindow(*res.NextSurvey, res.Annotation); !ok {
			return nil, false
		}

	default:
		return nil, false
	}

	return w, w.Contains(today)
}

//Personal.AI order the ending
