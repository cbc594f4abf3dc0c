package survey

import (
	"fmt"
	"time"
)

// DefaultDockingIntervalMonths is the drydocking interval used when the
// caller supplies none.
const DefaultDockingIntervalMonths = 36

// DockingSchedule is the DockingScheduler output.
type DockingSchedule struct {
	LastDocking    *time.Time `json:"last_docking"`
	NextDocking    *time.Time `json:"next_docking"`
	IntervalMonths int        `json:"interval_months"`
	Reasoning      string     `json:"reasoning"`
}

// ScheduleDocking computes next docking = most recent of (last, last2) plus
// intervalMonths calendar months.  intervalMonths ≤ 0 selects the default.
// With neither date present NextDocking is nil.
func ScheduleDocking(last, last2 *time.Time, intervalMonths int) DockingSchedule {
	if intervalMonths <= 0 {
		intervalMonths = DefaultDockingIntervalMonths
	}
	base := latest(last, last2)
	if base == nil {
		return DockingSchedule{
			IntervalMonths: intervalMonths,
			Reasoning:      fmt.Sprintf("cannot schedule: missing %s", FieldLastDocking),
		}
	}
	next := AddMonths(*base, intervalMonths)
	return DockingSchedule{
		LastDocking:    datePtr(*base),
		NextDocking:    &next,
		IntervalMonths: intervalMonths,
		Reasoning: fmt.Sprintf("last docking %s + %d months",
			base.Format(DateLayout), intervalMonths),
	}
}

// ScheduleShipDocking parses the ship's stored docking dates and schedules
// the next docking.  A malformed stored date returns a *DateFieldError.
func ScheduleShipDocking(ship ShipRecord, intervalMonths int) (DockingSchedule, error) {
	last, err := parseField(FieldLastDocking, ship.LastDocking)
	if err != nil {
		return DockingSchedule{}, err
	}
	last2, err := parseField(FieldLastDocking2, ship.LastDocking2)
	if err != nil {
		return DockingSchedule{}, err
	}
	return ScheduleDocking(last, last2, intervalMonths), nil
}

//Personal.AI order the ending
