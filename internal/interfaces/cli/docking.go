package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	domain "github.com/turtacn/ShipCert-Intelligence/internal/domain/survey"
	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
)

// DockingReport is the JSON document printed by `shipcert docking`.
type DockingReport struct {
	LastDocking    string `json:"last_docking"`
	NextDocking    string `json:"next_docking"`
	IntervalMonths int    `json:"interval_months"`
	DaysUntil      *int   `json:"days_until,omitempty"`
	Reasoning      string `json:"reasoning"`
}

func newDockingCmd() *cobra.Command {
	var (
		last, last2 string
		interval    int
		date        string
	)

	cmd := &cobra.Command{
		Use:   "docking",
		Short: "Compute the next drydocking date",
		Long: `Next drydocking is the later of the two recorded dockings plus the docking
interval in calendar months.  The interval defaults to survey.docking_interval_months.`,
		Example: "  shipcert docking --last 2022-05-05\n  shipcert docking --last 2022-05-05 --last2 2019-11-30 --interval 30",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if interval < 0 {
				return errors.InvalidParam("--interval must be positive").WithDetail(strconv.Itoa(interval))
			}
			if interval == 0 {
				interval = cc.Config.Survey.DockingIntervalMonths
			}
			lastT, err := dateFlag("last", last)
			if err != nil {
				return err
			}
			last2T, err := dateFlag("last2", last2)
			if err != nil {
				return err
			}
			if lastT == nil && last2T == nil {
				return errors.New(errors.ErrCodeScheduleUnavailable, "no docking date to schedule from").
					WithDetail("pass --last or --last2")
			}
			today, err := todayFlag(cc, date)
			if err != nil {
				return err
			}

			sched := domain.ScheduleDocking(lastT, last2T, interval)
			report := DockingReport{
				LastDocking:    domain.FormatDate(sched.LastDocking),
				NextDocking:    domain.FormatDate(sched.NextDocking),
				IntervalMonths: sched.IntervalMonths,
				Reasoning:      sched.Reasoning,
			}
			status := ""
			if sched.NextDocking != nil {
				days := domain.DaysBetween(today, *sched.NextDocking)
				report.DaysUntil = &days
				status = colorizeStatus(statusOf(true, days < 0, days <= cc.Config.Survey.DueSoonDays))
			}

			if cc.OutputFormat == OutputJSON {
				return printJSON(cmd.OutOrStdout(), report)
			}
			fields := []field{
				{"Last docking", dateOrDash(sched.LastDocking)},
				{"Interval", strconv.Itoa(sched.IntervalMonths) + " months"},
				{"Next docking", dateOrDash(sched.NextDocking)},
			}
			if report.DaysUntil != nil {
				fields = append(fields, field{"Days until", strconv.Itoa(*report.DaysUntil) + " " + status})
			}
			fields = append(fields, field{"Reasoning", report.Reasoning})
			printFields(cmd.OutOrStdout(), fields)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&last, "last", "", "last docking date YYYY-MM-DD")
	f.StringVar(&last2, "last2", "", "previous docking date YYYY-MM-DD")
	f.IntVar(&interval, "interval", 0, "docking interval in months (default: from config)")
	f.StringVar(&date, "date", "", "reference date for days-until YYYY-MM-DD (default: today)")
	return cmd
}

//Personal.AI order the ending
