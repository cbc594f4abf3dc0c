package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	domain "github.com/turtacn/ShipCert-Intelligence/internal/domain/survey"
	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
)

// NextSurveyReport is the JSON document printed by `shipcert next-survey`.
type NextSurveyReport struct {
	CertName       string `json:"cert_name"`
	CertType       string `json:"cert_type"`
	Bucket         string `json:"bucket"`
	NextSurvey     string `json:"next_survey_date"`
	NextSurveyType string `json:"next_survey_type"`
	Annotation     string `json:"annotation"`
	Reasoning      string `json:"reasoning"`
	CheckDate      string `json:"check_date"`
	WindowOpen     string `json:"window_open,omitempty"`
	WindowClose    string `json:"window_close,omitempty"`
	InWindow       bool   `json:"in_window"`
}

func newNextSurveyCmd() *cobra.Command {
	var (
		name, certType, abbr      string
		issue, valid, lastEndorse string
		date                      string
	)

	cmd := &cobra.Command{
		Use:   "next-survey",
		Short: "Compute the next survey of one certificate",
		Long: `Classify a certificate from its name, type and abbreviation, compute its
next survey date and resolve the survey window around the check date.`,
		Example: `  shipcert next-survey --name "International Load Line Certificate" --type "Full Term" \
    --issue 2021-06-10 --valid 2026-06-10 --last-endorse 2024-06-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			today, err := todayFlag(cc, date)
			if err != nil {
				return err
			}
			rec := domain.CertificateRecord{
				ID:               "cli",
				CertName:         name,
				CertType:         domain.ParseCertType(certType),
				CertAbbreviation: abbr,
				IssueDate:        issue,
				ValidDate:        valid,
				LastEndorse:      lastEndorse,
			}
			res, d, err := domain.CalculateForRecord(rec)
			if err != nil {
				var fe *domain.DateFieldError
				if errors.As(err, &fe) {
					return errors.InvalidParam("--" + flagForField(fe.Field) + " must be YYYY-MM-DD").WithDetail(fe.Value)
				}
				return err
			}
			w, in := domain.ResolveWindow(res.Bucket, res, d.Issue, d.Valid, today)

			report := NextSurveyReport{
				CertName:       name,
				CertType:       string(rec.CertType),
				Bucket:         string(res.Bucket),
				NextSurvey:     domain.FormatDate(res.NextSurvey),
				NextSurveyType: res.NextSurveyType,
				Annotation:     string(res.Annotation),
				Reasoning:      res.Reasoning,
				CheckDate:      today.Format(domain.DateLayout),
				InWindow:       in,
			}
			if w != nil {
				report.WindowOpen = w.Open.Format(domain.DateLayout)
				report.WindowClose = w.Close.Format(domain.DateLayout)
			}

			if cc.OutputFormat == OutputJSON {
				return printJSON(cmd.OutOrStdout(), report)
			}
			inWindow := "no"
			if in {
				inWindow = color.GreenString("yes")
			}
			printFields(cmd.OutOrStdout(), []field{
				{"Certificate", report.CertName},
				{"Type", report.CertType},
				{"Bucket", report.Bucket},
				{"Next survey", dateOrDash(res.NextSurvey)},
				{"Survey type", report.NextSurveyType},
				{"Annotation", report.Annotation},
				{"Window", formatWindow(w)},
				{"In window on " + report.CheckDate, inWindow},
				{"Reasoning", report.Reasoning},
			})
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "certificate name [REQUIRED]")
	f.StringVar(&certType, "type", "Full Term", "certificate type (Full Term, Interim, Short Term, Provisional)")
	f.StringVar(&abbr, "abbr", "", "certificate abbreviation")
	f.StringVar(&issue, "issue", "", "issue date YYYY-MM-DD")
	f.StringVar(&valid, "valid", "", "valid-until date YYYY-MM-DD")
	f.StringVar(&lastEndorse, "last-endorse", "", "last annual endorsement date YYYY-MM-DD")
	f.StringVar(&date, "date", "", "check date for the window YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func flagForField(field string) string {
	switch field {
	case domain.FieldIssueDate:
		return "issue"
	case domain.FieldValidDate:
		return "valid"
	case domain.FieldLastEndorse:
		return "last-endorse"
	default:
		return field
	}
}

//Personal.AI order the ending
