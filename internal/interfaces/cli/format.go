package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	domain "github.com/turtacn/ShipCert-Intelligence/internal/domain/survey"
)

// Row status labels.
const (
	StatusOverdue  = "overdue"
	StatusDueSoon  = "due soon"
	StatusUpcoming = "upcoming"
)

func statusOf(hasDate, overdue, dueSoon bool) string {
	switch {
	case !hasDate:
		return ""
	case overdue:
		return StatusOverdue
	case dueSoon:
		return StatusDueSoon
	default:
		return StatusUpcoming
	}
}

func colorizeStatus(status string) string {
	switch status {
	case StatusOverdue:
		return color.New(color.FgRed, color.Bold).Sprint(status)
	case StatusDueSoon:
		return color.YellowString(status)
	case StatusUpcoming:
		return color.GreenString(status)
	default:
		return status
	}
}

func formatDays(days int, hasDate bool) string {
	if !hasDate {
		return "-"
	}
	return strconv.Itoa(days)
}

func formatWindow(w *domain.SurveyWindow) string {
	if w == nil {
		return "-"
	}
	return fmt.Sprintf("%s..%s", w.Open.Format(domain.DateLayout), w.Close.Format(domain.DateLayout))
}

func dateOrDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(domain.DateLayout)
}

func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)
	return table
}

// field is one line of a key/value report.
type field struct {
	label string
	value string
}

// printFields renders a two-column key/value report.
func printFields(w io.Writer, fields []field) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("")
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, f := range fields {
		table.Append([]string{f.label, f.value})
	}
	table.Render()
}

//Personal.AI order the ending
