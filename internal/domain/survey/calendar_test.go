package survey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
)

func TestAddMonths(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"docking regression", Date(2022, 5, 5), 36, Date(2025, 5, 5)},
		{"clamp leap february", Date(2024, 1, 31), 1, Date(2024, 2, 29)},
		{"clamp common february", Date(2023, 1, 31), 1, Date(2023, 2, 28)},
		{"backwards clamp", Date(2024, 3, 31), -1, Date(2024, 2, 29)},
		{"minus three clamps", Date(2024, 5, 31), -3, Date(2024, 2, 29)},
		{"leap day plus year", Date(2024, 2, 29), 12, Date(2025, 2, 28)},
		{"year rollover", Date(2024, 12, 15), 1, Date(2025, 1, 15)},
		{"year rollback", Date(2025, 1, 15), -1, Date(2024, 12, 15)},
		{"minus 24", Date(2024, 1, 10), -24, Date(2022, 1, 10)},
		{"minus 12 exact", Date(2024, 6, 1), -12, Date(2023, 6, 1)},
		{"zero", Date(2026, 5, 7), 0, Date(2026, 5, 7)},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, AddMonths(tc.in, tc.n))
		})
	}
}

func TestAddMonths_DropsClock(t *testing.T) {
	t.Parallel()
	in := time.Date(2026, 5, 7, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, Date(2026, 2, 7), AddMonths(in, -3))
}

func TestDaysBetween(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 67, DaysBetween(Date(2026, 3, 1), Date(2026, 5, 7)))
	assert.Equal(t, -67, DaysBetween(Date(2026, 5, 7), Date(2026, 3, 1)))
	assert.Equal(t, 0, DaysBetween(Date(2026, 5, 7), time.Date(2026, 5, 7, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, 366, DaysBetween(Date(2024, 1, 1), Date(2025, 1, 1)))
}

func TestDaysBetween_FarDates(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 2912383, DaysBetween(Date(2026, 3, 1), Date(9999, 12, 31)))
	assert.Equal(t, -739675, DaysBetween(Date(2026, 3, 1), Date(1, 1, 1)))
}

func TestAddDays(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Date(2026, 2, 6), AddDays(Date(2026, 5, 7), -90))
	assert.Equal(t, Date(2024, 3, 1), AddDays(Date(2024, 2, 28), 2))
}

func TestParseDate(t *testing.T) {
	t.Parallel()
	want := Date(2026, 5, 7)
	for _, raw := range []string{
		"2026-05-07",
		" 2026-05-07 ",
		"2026-05-07T10:30:00Z",
		"2026-05-07T10:30:00+07:00",
		"2026-05-07 10:30:00",
		"07/05/2026",
		"7/5/2026",
		"07-05-2026",
		"07.05.2026",
		"2026/05/07",
		"07 May 2026",
		"7 May 2026",
		"May 7, 2026",
	} {
		got, err := ParseDate(raw)
		require.NoError(t, err, raw)
		require.NotNil(t, got, raw)
		assert.Equal(t, want, *got, raw)
	}
}

func TestParseDate_Absent(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"", "   ", "\t"} {
		got, err := ParseDate(raw)
		assert.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestParseDate_Malformed(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"not a date", "31/02/2026", "2026-13-01", "05/07"} {
		got, err := ParseDate(raw)
		require.Error(t, err, raw)
		assert.Nil(t, got)
		assert.True(t, errors.IsCode(err, errors.ErrCodeDateParseFailed), raw)
		assert.Contains(t, err.Error(), raw)
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()
	d := Date(2026, 5, 7)
	assert.Equal(t, "2026-05-07", FormatDate(&d))
	assert.Equal(t, "", FormatDate(nil))
}

func TestLatest(t *testing.T) {
	t.Parallel()
	a, b := Date(2022, 5, 5), Date(2023, 1, 10)
	assert.Nil(t, latest(nil, nil))
	assert.Equal(t, &a, latest(&a, nil))
	assert.Equal(t, &b, latest(nil, &b))
	assert.Equal(t, b, *latest(&a, &b))
	assert.Equal(t, b, *latest(&b, &a))
}

//Personal.AI order the ending
