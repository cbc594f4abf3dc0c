package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	domain "github.com/turtacn/ShipCert-Intelligence/internal/domain/survey"
	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
)

// EquipmentReport is the JSON document printed by `shipcert equipment`.
type EquipmentReport struct {
	EquipmentName  string `json:"equipment_name"`
	NormalizedName string `json:"normalized_name"`
	ShipID         string `json:"ship_id,omitempty"`
	Issued         string `json:"issued"`
	IntervalMonths int    `json:"interval_months"`
	DueDate        string `json:"due_date"`
	DaysUntilDue   int    `json:"days_until_due"`
	Source         string `json:"source"`
	MatchedKey     string `json:"matched_key,omitempty"`
}

func newEquipmentCmd() *cobra.Command {
	var (
		name, issued string
		snapshotPath string
		shipID       string
		date         string
	)

	cmd := &cobra.Command{
		Use:   "equipment",
		Short: "Compute the validity of a periodically tested equipment item",
		Long: `Resolve the maintenance interval of an equipment item and add it to the
issue date.  Ship-specific intervals from a snapshot take precedence over the
configured survey.equipment_intervals table; unmatched names fall back to
survey.equipment_fallback_months.`,
		Example: `  shipcert equipment --name "EEBD" --issued 2025-01-15
  shipcert equipment --name "Liferaft" --issued 2025-01-15 --snapshot fleet.json --ship SHIP-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			issuedT, err := requiredDateFlag("issued", issued)
			if err != nil {
				return err
			}
			if (snapshotPath == "") != (shipID == "") {
				return errors.InvalidParam("--snapshot and --ship must be given together")
			}
			today, err := todayFlag(cc, date)
			if err != nil {
				return err
			}

			var shipTable domain.IntervalTable
			if snapshotPath != "" {
				snap, err := LoadSnapshot(snapshotPath, cmd.InOrStdin())
				if err != nil {
					return err
				}
				ship, err := snap.Ship(shipID)
				if err != nil {
					return err
				}
				shipTable = domain.NewIntervalTable(ship.TestReportIntervals)
			}
			defaults := domain.NewIntervalTable(cc.Config.Survey.EquipmentIntervals)

			v := domain.CalculateEquipmentValidity(name, issuedT, shipTable, defaults, cc.Config.Survey.EquipmentFallbackMonths)
			days := domain.DaysBetween(today, v.DueDate)
			report := EquipmentReport{
				EquipmentName:  v.EquipmentName,
				NormalizedName: v.NormalizedName,
				ShipID:         shipID,
				Issued:         v.Issued.Format(domain.DateLayout),
				IntervalMonths: v.IntervalMonths,
				DueDate:        v.DueDate.Format(domain.DateLayout),
				DaysUntilDue:   days,
				Source:         string(v.Source),
				MatchedKey:     v.MatchedKey,
			}

			if cc.OutputFormat == OutputJSON {
				return printJSON(cmd.OutOrStdout(), report)
			}
			status := statusOf(true, days < 0, days <= cc.Config.Survey.DueSoonDays)
			matched := report.MatchedKey
			if matched == "" {
				matched = "-"
			}
			printFields(cmd.OutOrStdout(), []field{
				{"Equipment", report.EquipmentName},
				{"Issued", report.Issued},
				{"Interval", strconv.Itoa(report.IntervalMonths) + " months"},
				{"Due", report.DueDate},
				{"Days until due", strconv.Itoa(days) + " " + colorizeStatus(status)},
				{"Source", report.Source},
				{"Matched key", matched},
			})
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "equipment name [REQUIRED]")
	f.StringVar(&issued, "issued", "", "test report issue date YYYY-MM-DD [REQUIRED]")
	f.StringVar(&snapshotPath, "snapshot", "", "fleet snapshot supplying ship-specific intervals")
	f.StringVar(&shipID, "ship", "", "ship id within the snapshot")
	f.StringVar(&date, "date", "", "reference date for days-until YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("issued")
	return cmd
}

//Personal.AI order the ending
