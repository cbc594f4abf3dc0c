// Package survey implements the survey scheduling engine: certificate
// classification, next-survey calculation, inspection windows, the fleet
// scanner, and the sibling calculators (anniversary, special-survey cycle,
// drydocking, equipment validity).  Every function here is a deterministic
// transform over caller-supplied records; nothing performs I/O.
package survey

import (
	"strings"
	"time"

	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
)

// DateLayout is the canonical civil-date rendering.
const DateLayout = "2006-01-02"

// acceptedLayouts lists the stored date encodings ParseDate understands, in
// the order they are tried.  Slash, dash and dot numeric forms are read as
// day-month-year.
var acceptedLayouts = []string{
	DateLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"2006/01/02",
	"02 Jan 2006",
	"2 Jan 2006",
	"02 January 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// Date builds a civil date at UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Civil drops the clock component of t and re-anchors its calendar day at
// UTC midnight.
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths advances t by n calendar months (n may be negative).  The
// day-of-month is preserved when the target month has it and clamped to the
// target month's last day otherwise, so 2024-01-31 + 1 month is 2024-02-29.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	years := total / 12
	rem := total % 12
	if rem < 0 {
		rem += 12
		years--
	}
	ny, nm := y+years, time.Month(rem+1)
	if last := daysIn(ny, nm); d > last {
		d = last
	}
	return Date(ny, nm, d)
}

// AddDays advances t by n whole days.
func AddDays(t time.Time, n int) time.Time {
	return Civil(t).AddDate(0, 0, n)
}

// DaysBetween returns the signed number of whole days from → to.
func DaysBetween(from, to time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	return int(Civil(to).Unix()/secondsPerDay - Civil(from).Unix()/secondsPerDay)
}

// ParseDate reads a stored date string.  An empty or whitespace-only string
// means the date is absent and yields (nil, nil).  A non-empty string that
// matches no accepted layout yields an SRV_001 error.
func ParseDate(raw string) (*time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			c := Civil(t)
			return &c, nil
		}
	}
	return nil, errors.New(errors.ErrCodeDateParseFailed, "unrecognised date format").
		WithDetail("value=" + s)
}

// FormatDate renders t as YYYY-MM-DD; nil renders as "".
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

func datePtr(t time.Time) *time.Time { return &t }

// latest returns the later of two optional dates.
func latest(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.After(*a):
		return b
	default:
		return a
	}
}

//Personal.AI order the ending
