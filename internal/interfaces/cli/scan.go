package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	domain "github.com/turtacn/ShipCert-Intelligence/internal/domain/survey"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/monitoring/logging"
)

// ScanRow is one actionable certificate as printed by `shipcert scan`.
type ScanRow struct {
	CertificateID    string `json:"certificate_id"`
	ShipID           string `json:"ship_id"`
	ShipName         string `json:"ship_name"`
	CertName         string `json:"cert_name"`
	CertAbbreviation string `json:"cert_abbreviation"`
	Bucket           string `json:"bucket"`
	NextSurveyDate   string `json:"next_survey_date"`
	NextSurveyType   string `json:"next_survey_type"`
	DaysUntilSurvey  int    `json:"days_until_survey"`
	IsOverdue        bool   `json:"is_overdue"`
	IsDueSoon        bool   `json:"is_due_soon"`
	WindowOpen       string `json:"window_open,omitempty"`
	WindowClose      string `json:"window_close,omitempty"`
	Annotation       string `json:"annotation,omitempty"`
	Status           string `json:"status"`
}

// ScanReport is the JSON document printed by `shipcert scan -o json`.
type ScanReport struct {
	CheckDate       string                      `json:"check_date"`
	TotalCount      int                         `json:"total_count"`
	UpcomingSurveys []ScanRow                   `json:"upcoming_surveys"`
	Skipped         []domain.SkippedCertificate `json:"skipped,omitempty"`
}

// NewScanReport flattens a scan result into printable rows.
func NewScanReport(res *domain.ScanResult) ScanReport {
	out := ScanReport{
		CheckDate:       res.CheckDate.Format(domain.DateLayout),
		TotalCount:      res.TotalCount,
		UpcomingSurveys: make([]ScanRow, 0, len(res.UpcomingSurveys)),
		Skipped:         res.Skipped,
	}
	for _, e := range res.UpcomingSurveys {
		row := ScanRow{
			CertificateID:    e.CertificateID,
			ShipID:           e.ShipID,
			ShipName:         e.ShipName,
			CertName:         e.CertName,
			CertAbbreviation: e.CertAbbreviation,
			Bucket:           string(e.Bucket),
			NextSurveyDate:   domain.FormatDate(e.NextSurveyDate),
			NextSurveyType:   e.NextSurveyType,
			DaysUntilSurvey:  e.DaysUntilSurvey,
			IsOverdue:        e.IsOverdue,
			IsDueSoon:        e.IsDueSoon,
			Status:           statusOf(e.NextSurveyDate != nil, e.IsOverdue, e.IsDueSoon),
		}
		if e.Window != nil {
			row.WindowOpen = e.Window.Open.Format(domain.DateLayout)
			row.WindowClose = e.Window.Close.Format(domain.DateLayout)
			row.Annotation = string(e.Window.Annotation)
		}
		out.UpcomingSurveys = append(out.UpcomingSurveys, row)
	}
	return out
}

func newScanCmd() *cobra.Command {
	var (
		snapshotPath string
		date         string
		companyID    string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List certificates whose survey window is open",
		Long: `Scan a fleet snapshot and list every certificate whose survey window
contains the check date, sorted by next survey date.  Certificates with a
malformed stored date are reported as skipped and do not stop the scan.`,
		Example: "  shipcert scan --snapshot fleet.json --date 2026-03-01\n  cat fleet.json | shipcert scan --snapshot - -o json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			today, err := todayFlag(cc, date)
			if err != nil {
				return err
			}
			snap, err := LoadSnapshot(snapshotPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			snap = snap.FilterCompany(companyID)

			scanner := domain.NewScanner(
				domain.WithDueSoonDays(cc.Config.Survey.DueSoonDays),
				domain.WithWorkers(cc.Config.Survey.ScanWorkers),
				domain.WithLogger(cc.Logger.Named("scan")),
			)
			res, err := scanner.Scan(cmd.Context(), snap.Certificates, snap.Ships, today)
			if err != nil {
				return err
			}
			cc.Logger.Debug("scan finished",
				logging.Date("check_date", today),
				logging.Int("ships", len(snap.Ships)),
				logging.Int("included", res.TotalCount),
				logging.Int("skipped", len(res.Skipped)),
			)

			report := NewScanReport(res)
			if cc.OutputFormat == OutputJSON {
				return printJSON(cmd.OutOrStdout(), report)
			}
			printScanTable(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "fleet snapshot JSON file, - for stdin [REQUIRED]")
	cmd.Flags().StringVar(&date, "date", "", "check date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&companyID, "company", "", "only scan ships of this company")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}

func printScanTable(cmd *cobra.Command, report ScanReport) {
	w := cmd.OutOrStdout()
	if len(report.UpcomingSurveys) == 0 {
		fmt.Fprintf(w, "No surveys due on %s.\n", report.CheckDate)
	} else {
		table := newTable(w, "Ship", "Certificate", "Abbr", "Survey", "Next Survey", "Days", "Window", "Status")
		for _, r := range report.UpcomingSurveys {
			window := "-"
			if r.WindowOpen != "" {
				window = r.WindowOpen + ".." + r.WindowClose + " " + r.Annotation
			}
			next := r.NextSurveyDate
			if next == "" {
				next = "-"
			}
			table.Append([]string{
				r.ShipName,
				r.CertName,
				r.CertAbbreviation,
				r.NextSurveyType,
				next,
				formatDays(r.DaysUntilSurvey, r.NextSurveyDate != ""),
				window,
				colorizeStatus(r.Status),
			})
		}
		table.Render()
		fmt.Fprintf(w, "\nCheck date: %s  Total: %d\n", report.CheckDate, report.TotalCount)
	}

	if len(report.Skipped) > 0 {
		fmt.Fprintf(w, "\n%s\n", color.YellowString("Skipped %d record(s) with malformed dates:", len(report.Skipped)))
		for _, sk := range report.Skipped {
			id := sk.CertificateID
			if id == "" {
				id = "ship " + sk.ShipID
			}
			fmt.Fprintf(w, "  %s: %s=%q\n", id, sk.Field, sk.Value)
		}
	}
}

//Personal.AI order the ending
