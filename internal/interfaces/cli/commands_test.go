package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
)

func decodeInto[T any](t *testing.T, raw string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(raw), &v), raw)
	return v
}

// ---------------------------------------------------------------------------
// next-survey
// ---------------------------------------------------------------------------

func TestNextSurvey_FullTermEndorsed(t *testing.T) {
	r := runCLI(t, "", "next-survey",
		"--name", "International Load Line Certificate", "--type", "FULL-TERM",
		"--valid", "2026-06-10", "--last-endorse", "2025-06-01", "-o", "json")
	require.NoError(t, r.err)

	rep := decodeInto[NextSurveyReport](t, r.stdout)
	assert.Equal(t, "Full Term", rep.CertType)
	assert.Equal(t, "full_term_with_endorse", rep.Bucket)
	assert.Equal(t, "2026-03-10", rep.NextSurvey)
	assert.Equal(t, "Renewal", rep.NextSurveyType)
	assert.Equal(t, "-3M", rep.Annotation)
	assert.Equal(t, "2025-12-10", rep.WindowOpen)
	assert.Equal(t, "2026-03-10", rep.WindowClose)
	assert.Equal(t, "2026-03-01", rep.CheckDate)
	assert.True(t, rep.InWindow)
}

func TestNextSurvey_NotInWindowOnLaterDate(t *testing.T) {
	r := runCLI(t, "", "next-survey",
		"--name", "International Load Line Certificate", "--type", "Full Term",
		"--valid", "2026-06-10", "--last-endorse", "2025-06-01", "--date", "2026-03-11", "-o", "json")
	require.NoError(t, r.err)

	rep := decodeInto[NextSurveyReport](t, r.stdout)
	assert.False(t, rep.InWindow)
}

func TestNextSurvey_MissingValidDate(t *testing.T) {
	r := runCLI(t, "", "next-survey", "--name", "IOPP Certificate", "--type", "Full Term", "-o", "json")
	require.NoError(t, r.err)

	rep := decodeInto[NextSurveyReport](t, r.stdout)
	assert.Empty(t, rep.NextSurvey)
	assert.Contains(t, rep.Reasoning, "valid_date")
	assert.Empty(t, rep.WindowOpen)
	assert.False(t, rep.InWindow)
}

func TestNextSurvey_TextOutput(t *testing.T) {
	r := runCLI(t, "", "next-survey", "--name", "Interim Load Line Certificate", "--type", "Interim", "--valid", "2026-05-07")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "interim")
	assert.Contains(t, r.stdout, "2026-02-07")
	assert.Contains(t, r.stdout, "2025-11-07..2026-02-07")
}

func TestNextSurvey_MalformedDate(t *testing.T) {
	r := runCLI(t, "", "next-survey", "--name", "IOPP", "--valid", "next spring")
	require.Error(t, r.err)
	assert.True(t, errors.IsCode(r.err, errors.CodeInvalidParam))
	msg, detail := errors.ChainMessage(r.err)
	assert.Equal(t, "--valid must be YYYY-MM-DD", msg)
	assert.Equal(t, "next spring", detail)
}

// ---------------------------------------------------------------------------
// docking
// ---------------------------------------------------------------------------

func TestDocking_DefaultInterval(t *testing.T) {
	r := runCLI(t, "", "docking", "--last", "2022-05-05", "-o", "json")
	require.NoError(t, r.err)

	rep := decodeInto[DockingReport](t, r.stdout)
	assert.Equal(t, "2022-05-05", rep.LastDocking)
	assert.Equal(t, "2025-05-05", rep.NextDocking)
	assert.Equal(t, 36, rep.IntervalMonths)
	require.NotNil(t, rep.DaysUntil)
	assert.Negative(t, *rep.DaysUntil)
}

func TestDocking_LatestOfTwoAndExplicitInterval(t *testing.T) {
	r := runCLI(t, "", "docking", "--last", "2019-11-30", "--last2", "2022-05-05", "--interval", "48", "-o", "json")
	require.NoError(t, r.err)

	rep := decodeInto[DockingReport](t, r.stdout)
	assert.Equal(t, "2022-05-05", rep.LastDocking)
	assert.Equal(t, "2026-05-05", rep.NextDocking)
	require.NotNil(t, rep.DaysUntil)
	assert.Equal(t, 65, *rep.DaysUntil)
}

func TestDocking_TextOutput(t *testing.T) {
	r := runCLI(t, "", "docking", "--last", "2022-05-05")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "2025-05-05")
	assert.Contains(t, r.stdout, "36 months")
	assert.Contains(t, r.stdout, StatusOverdue)
}

func TestDocking_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.ErrorCode
	}{
		{"no dates", []string{"docking"}, errors.ErrCodeScheduleUnavailable},
		{"negative interval", []string{"docking", "--last", "2022-05-05", "--interval", "-1"}, errors.CodeInvalidParam},
		{"bad last2", []string{"docking", "--last2", "yesterday"}, errors.CodeInvalidParam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, "", tt.args...)
			require.Error(t, r.err)
			assert.True(t, errors.IsCode(r.err, tt.code), "got %v", r.err)
		})
	}
}

// ---------------------------------------------------------------------------
// equipment
// ---------------------------------------------------------------------------

func TestEquipment_IntervalSources(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		stdin      string
		source     string
		months     int
		due        string
		matchedKey string
	}{
		{"default exact", []string{"--name", "  EEBD ", "--issued", "2025-01-15"}, "", "default_exact", 12, "2026-01-15", "eebd"},
		{"default substring", []string{"--name", "Portable EEBD unit", "--issued", "2025-01-15"}, "", "default_substring", 12, "2026-01-15", "eebd"},
		{"fallback", []string{"--name", "Gyro Compass", "--issued", "2025-01-15"}, "", "fallback", 12, "2026-01-15", ""},
		{"ship override", []string{"--name", "eebd", "--issued", "2025-01-15", "--snapshot", "-", "--ship", "s1"}, fleetSnapshot, "ship_exact", 24, "2027-01-15", "eebd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"equipment", "-o", "json"}, tt.args...)
			r := runCLI(t, tt.stdin, args...)
			require.NoError(t, r.err)

			rep := decodeInto[EquipmentReport](t, r.stdout)
			assert.Equal(t, tt.source, rep.Source)
			assert.Equal(t, tt.months, rep.IntervalMonths)
			assert.Equal(t, tt.due, rep.DueDate)
			assert.Equal(t, tt.matchedKey, rep.MatchedKey)
		})
	}
}

func TestEquipment_TextOutput(t *testing.T) {
	r := runCLI(t, "", "equipment", "--name", "Immersion Suit", "--issued", "2024-02-01")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "36 months")
	assert.Contains(t, r.stdout, "2027-02-01")
	assert.Contains(t, r.stdout, StatusUpcoming)
}

func TestEquipment_Errors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		code  errors.ErrorCode
	}{
		{"snapshot without ship", fleetSnapshot, []string{"--name", "EEBD", "--issued", "2025-01-15", "--snapshot", "-"}, errors.CodeInvalidParam},
		{"unknown ship", fleetSnapshot, []string{"--name", "EEBD", "--issued", "2025-01-15", "--snapshot", "-", "--ship", "s404"}, errors.ErrCodeShipNotFound},
		{"bad issued", "", []string{"--name", "EEBD", "--issued", "someday"}, errors.CodeInvalidParam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, tt.stdin, append([]string{"equipment"}, tt.args...)...)
			require.Error(t, r.err)
			assert.True(t, errors.IsCode(r.err, tt.code), "got %v", r.err)
		})
	}
}

//Personal.AI order the ending
