package survey

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func civilGen() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(1990, 2090),
		gen.IntRange(1, 12),
		gen.IntRange(1, 31),
	).Map(func(vals []interface{}) time.Time {
		y, m, day := vals[0].(int), time.Month(vals[1].(int)), vals[2].(int)
		if last := daysIn(y, m); day > last {
			day = last
		}
		return Date(y, m, day)
	})
}

func TestAddMonthsProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("month index advances by exactly n", prop.ForAll(
		func(start time.Time, n int) bool {
			got := AddMonths(start, n)
			before := start.Year()*12 + int(start.Month())
			after := got.Year()*12 + int(got.Month())
			return after-before == n
		},
		civilGen(), gen.IntRange(-240, 240),
	))

	properties.Property("day is preserved or clamped to month end", prop.ForAll(
		func(start time.Time, n int) bool {
			got := AddMonths(start, n)
			if got.Day() == start.Day() {
				return true
			}
			return got.Day() < start.Day() && got.Day() == daysIn(got.Year(), got.Month())
		},
		civilGen(), gen.IntRange(-240, 240),
	))

	properties.Property("round trip is exact for days up to 28", prop.ForAll(
		func(start time.Time, n int) bool {
			if start.Day() > 28 {
				return true
			}
			return AddMonths(AddMonths(start, n), -n).Equal(start)
		},
		civilGen(), gen.IntRange(-240, 240),
	))

	properties.TestingRun(t)
}

func TestNextSurveyProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("interim is V-3M Initial", prop.ForAll(
		func(v time.Time) bool {
			res := CalculateNextSurvey(BucketInterim, nil, &v, nil)
			return res.NextSurvey != nil && res.NextSurvey.Equal(AddMonths(v, -3)) &&
				res.NextSurveyType == SurveyTypeInitial
		},
		civilGen(),
	))

	properties.Property("full term without endorsement is V-24M Intermediate", prop.ForAll(
		func(v time.Time) bool {
			res := CalculateNextSurvey(BucketFullTermNoEndorse, nil, &v, nil)
			return res.NextSurvey != nil && res.NextSurvey.Equal(AddMonths(v, -24)) &&
				res.NextSurveyType == SurveyTypeIntermediate
		},
		civilGen(),
	))

	properties.Property("full term with endorsement is V-3M Renewal", prop.ForAll(
		func(v, e time.Time) bool {
			res := CalculateNextSurvey(BucketFullTermWithEndorse, nil, &v, &e)
			return res.NextSurvey != nil && res.NextSurvey.Equal(AddMonths(v, -3)) &&
				res.NextSurveyType == SurveyTypeRenewal
		},
		civilGen(), civilGen(),
	))

	properties.Property("special documents and short term never schedule", prop.ForAll(
		func(i, v time.Time) bool {
			a := CalculateNextSurvey(BucketSpecialDocument, &i, &v, &v)
			b := CalculateNextSurvey(BucketShortTerm, &i, &v, &v)
			return a.NextSurvey == nil && b.NextSurvey == nil
		},
		civilGen(), civilGen(),
	))

	properties.Property("window membership implies the window exists", prop.ForAll(
		func(v, today time.Time, bucketIdx int) bool {
			bucket := AllBuckets[bucketIdx]
			res := CalculateNextSurvey(bucket, nil, &v, nil)
			w, in := ResolveWindow(bucket, res, nil, &v, today)
			if !in {
				return true
			}
			return w != nil && !today.Before(w.Open) && !today.After(w.Close)
		},
		civilGen(), civilGen(), gen.IntRange(0, len(AllBuckets)-1),
	))

	properties.Property("condition certificate without issue date is never in window", prop.ForAll(
		func(v, today time.Time) bool {
			res := CalculateNextSurvey(BucketConditionCertificate, nil, &v, nil)
			_, in := ResolveWindow(BucketConditionCertificate, res, nil, &v, today)
			return !in
		},
		civilGen(), civilGen(),
	))

	properties.TestingRun(t)
}

//Personal.AI order the ending
