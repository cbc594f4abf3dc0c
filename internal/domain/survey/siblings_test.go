package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateAnniversary(t *testing.T) {
	t.Parallel()
	certs := []CertificateRecord{
		{ID: "c1", CertType: CertTypeFullTerm, ValidDate: "2027-03-15"},
		{ID: "c2", CertType: CertTypeFullTerm, ValidDate: "2028-07-20"},
		{ID: "c3", CertType: CertTypeInterim, ValidDate: "2029-01-01"},
		{ID: "c4", CertType: CertTypeFullTerm},
		{ID: "c5", CertType: CertTypeFullTerm, ValidDate: "xx"},
	}
	ann, skipped := CalculateAnniversary(certs)
	require.NotNil(t, ann)
	assert.Equal(t, 20, ann.Day)
	assert.Equal(t, 7, ann.Month)
	assert.Equal(t, "c2", ann.SourceCertificateID)
	assert.True(t, ann.AutoCalculated)
	assert.False(t, ann.ManualOverride)
	assert.Equal(t, []string{"c5"}, skipped)
}

func TestCalculateAnniversary_NoneQualifies(t *testing.T) {
	t.Parallel()
	ann, skipped := CalculateAnniversary([]CertificateRecord{
		{ID: "c1", CertType: CertTypeInterim, ValidDate: "2027-03-15"},
	})
	assert.Nil(t, ann)
	assert.Empty(t, skipped)

	ann, _ = CalculateAnniversary(nil)
	assert.Nil(t, ann)
}

func TestCalculateAnniversary_TieBreaksOnID(t *testing.T) {
	t.Parallel()
	ann, _ := CalculateAnniversary([]CertificateRecord{
		{ID: "b", CertType: CertTypeFullTerm, ValidDate: "2027-03-15"},
		{ID: "a", CertType: CertTypeFullTerm, ValidDate: "2027-03-15"},
	})
	require.NotNil(t, ann)
	assert.Equal(t, "a", ann.SourceCertificateID)
}

func TestCalculateSpecialSurveyCycle(t *testing.T) {
	t.Parallel()
	certs := []CertificateRecord{
		{ID: "old", CertName: "Certificate of Class", CertType: CertTypeFullTerm, IssueDate: "2018-07-20", ValidDate: "2023-07-19"},
		{ID: "cur", CertName: "Certificate of Class", CertType: CertTypeFullTerm, IssueDate: "2023-07-20", ValidDate: "2028-07-19"},
		{ID: "iopp", CertName: "IOPP Certificate", CertType: CertTypeFullTerm, IssueDate: "2025-01-01", ValidDate: "2030-01-01"},
		{ID: "nodate", CertName: "Classification Certificate", CertType: CertTypeFullTerm, ValidDate: "2031-01-01"},
		{ID: "interim", CertName: "Interim Certificate of Class", CertType: CertTypeInterim, IssueDate: "2025-01-01", ValidDate: "2032-01-01"},
	}
	cycle, skipped := CalculateSpecialSurveyCycle(certs)
	require.NotNil(t, cycle)
	assert.Equal(t, Date(2023, 7, 20), cycle.From)
	assert.Equal(t, Date(2028, 7, 19), cycle.To)
	assert.Equal(t, "Certificate of Class", cycle.CycleType)
	assert.True(t, cycle.IntermediateRequired)
	assert.Equal(t, "cur", cycle.SourceCertificateID)
	assert.Empty(t, skipped)
}

func TestCalculateSpecialSurveyCycle_None(t *testing.T) {
	t.Parallel()
	cycle, skipped := CalculateSpecialSurveyCycle([]CertificateRecord{
		{ID: "bad", CertName: "Certificate of Class", CertType: CertTypeFullTerm, IssueDate: "??", ValidDate: "2028-07-19"},
	})
	assert.Nil(t, cycle)
	assert.Equal(t, []string{"bad"}, skipped)
}

func TestScheduleDocking(t *testing.T) {
	t.Parallel()

	s := ScheduleDocking(d(2022, 5, 5), nil, 36)
	require.NotNil(t, s.NextDocking)
	assert.Equal(t, Date(2025, 5, 5), *s.NextDocking)
	assert.Equal(t, 36, s.IntervalMonths)

	s = ScheduleDocking(d(2022, 5, 5), d(2023, 1, 10), 30)
	require.NotNil(t, s.NextDocking)
	assert.Equal(t, Date(2023, 1, 10), *s.LastDocking)
	assert.Equal(t, Date(2025, 7, 10), *s.NextDocking)

	s = ScheduleDocking(d(2024, 2, 29), nil, 0)
	require.NotNil(t, s.NextDocking)
	assert.Equal(t, DefaultDockingIntervalMonths, s.IntervalMonths)
	assert.Equal(t, Date(2027, 2, 28), *s.NextDocking)

	s = ScheduleDocking(nil, nil, 36)
	assert.Nil(t, s.NextDocking)
	assert.Contains(t, s.Reasoning, FieldLastDocking)
}

func TestScheduleShipDocking(t *testing.T) {
	t.Parallel()
	s, err := ScheduleShipDocking(ShipRecord{ID: "s1", LastDocking: "05/05/2022"}, 36)
	require.NoError(t, err)
	assert.Equal(t, Date(2025, 5, 5), *s.NextDocking)

	_, err = ScheduleShipDocking(ShipRecord{ID: "s1", LastDocking: "2022-05-05", LastDocking2: "spring"}, 36)
	var fe *DateFieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, FieldLastDocking2, fe.Field)
}

func TestResolveInterval_Precedence(t *testing.T) {
	t.Parallel()
	defaults := NewIntervalTable(map[string]int{"eebd": 12, "life raft": 12, "immersion suit": 36})

	cases := []struct {
		name       string
		equipment  string
		ship       map[string]int
		wantMonths int
		wantSource IntervalSource
		wantKey    string
	}{
		{"ship exact beats default", "eebd", map[string]int{"EEBD": 6}, 6, SourceShipExact, "eebd"},
		{"normalized ship exact", "  EEBD ", map[string]int{"EEBD": 6}, 6, SourceShipExact, "eebd"},
		{"ship substring", "EEBD set No.2", map[string]int{"EEBD": 6}, 6, SourceShipSubstring, "eebd"},
		{"ship substring reverse", "raft", map[string]int{"Liferaft 25p": 24}, 24, SourceShipSubstring, "liferaft 25p"},
		{"default exact", "Immersion Suit", nil, 36, SourceDefaultExact, "immersion suit"},
		{"default substring", "Inflatable life raft 25p", nil, 12, SourceDefaultSubstring, "life raft"},
		{"fallback", "Unknown gizmo", map[string]int{"EEBD": 6}, 18, SourceFallback, ""},
		{"empty name falls back", "   ", map[string]int{"EEBD": 6}, 18, SourceFallback, ""},
		{"full width form", "ＥＥＢＤ", map[string]int{"eebd": 6}, 6, SourceShipExact, "eebd"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			months, source, key := ResolveInterval(tc.equipment, NewIntervalTable(tc.ship), defaults, 18)
			assert.Equal(t, tc.wantMonths, months)
			assert.Equal(t, tc.wantSource, source)
			assert.Equal(t, tc.wantKey, key)
		})
	}
}

func TestResolveInterval_LongestKeyFirst(t *testing.T) {
	t.Parallel()
	defaults := NewIntervalTable(map[string]int{"raft": 24, "life raft": 12, "hydrostatic": 24})
	months, source, key := ResolveInterval("life raft hydrostatic release", IntervalTable{}, defaults, 0)
	assert.Equal(t, SourceDefaultSubstring, source)
	assert.Equal(t, "hydrostatic", key)
	assert.Equal(t, 24, months)

	months, _, key = ResolveInterval("life raft 6p", IntervalTable{}, defaults, 0)
	assert.Equal(t, "life raft", key)
	assert.Equal(t, 12, months)
}

func TestResolveInterval_DefaultFallback(t *testing.T) {
	t.Parallel()
	months, source, _ := ResolveInterval("gizmo", IntervalTable{}, IntervalTable{}, 0)
	assert.Equal(t, DefaultEquipmentFallbackMonths, months)
	assert.Equal(t, SourceFallback, source)
}

func TestNewIntervalTable_DropsInvalidAndDuplicates(t *testing.T) {
	t.Parallel()
	tbl := NewIntervalTable(map[string]int{"EEBD": 6, "eebd": 9, " ": 12, "sart": 0})
	assert.Equal(t, 1, tbl.Len())
	months, ok := tbl.exact("eebd")
	assert.True(t, ok)
	assert.Equal(t, 6, months)
}

func TestCalculateEquipmentValidity(t *testing.T) {
	t.Parallel()
	v := CalculateEquipmentValidity("EEBD", Date(2025, 8, 31), NewIntervalTable(map[string]int{"eebd": 6}), IntervalTable{}, 12)
	assert.Equal(t, Date(2026, 2, 28), v.DueDate)
	assert.Equal(t, 6, v.IntervalMonths)
	assert.Equal(t, "eebd", v.NormalizedName)
	assert.Equal(t, SourceShipExact, v.Source)
}

func TestComputeShip(t *testing.T) {
	t.Parallel()
	ship := ShipRecord{
		ID: "s1", LastDocking: "2022-05-05",
		Anniversary: &AnniversaryDate{Day: 1, Month: 1, ManualOverride: true},
	}
	certs := []CertificateRecord{
		{ID: "c1", ShipID: "s1", CertName: "Certificate of Class", CertType: CertTypeFullTerm, IssueDate: "2023-07-20", ValidDate: "2028-07-19"},
		{ID: "c2", ShipID: "s1", CertName: "IOPP Certificate", CertType: CertTypeFullTerm, ValidDate: "bogus"},
	}
	out := ComputeShip(ship, certs, 36)

	assert.Equal(t, "s1", out.ShipID)
	assert.True(t, out.AnniversaryManual)
	assert.Equal(t, 1, out.Anniversary.Day)
	require.NotNil(t, out.SpecialSurveyCycle)
	assert.Equal(t, Date(2028, 7, 19), out.SpecialSurveyCycle.To)
	assert.Equal(t, Date(2025, 5, 5), *out.Docking.NextDocking)
	assert.False(t, out.DockingSkipped)
	require.Len(t, out.Certificates, 1)
	assert.Equal(t, Date(2026, 7, 19), *out.Certificates[0].Result.NextSurvey)
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, "c2", out.Skipped[0].CertificateID)
	assert.Equal(t, FieldValidDate, out.Skipped[0].Field)
}

func TestComputeShip_AutoAnniversaryAndBadDocking(t *testing.T) {
	t.Parallel()
	ship := ShipRecord{ID: "s1", LastDocking: "??"}
	certs := []CertificateRecord{{ID: "c1", ShipID: "s1", CertType: CertTypeFullTerm, ValidDate: "2027-03-15"}}
	out := ComputeShip(ship, certs, 36)

	require.NotNil(t, out.Anniversary)
	assert.False(t, out.AnniversaryManual)
	assert.Equal(t, 15, out.Anniversary.Day)
	assert.Nil(t, out.Docking.NextDocking)
	assert.True(t, out.DockingSkipped)
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, FieldLastDocking, out.Skipped[0].Field)
}

//Personal.AI order the ending
