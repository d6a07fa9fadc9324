// Package export renders production program rows as CSV.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/pandeptwidyaop/cnc-monitor/internal/models"
)

// Filename is the attachment name offered to browsers.
const Filename = "production-data.csv"

// Headers are the column titles of the export, in column order.
var Headers = []string{
	"Nazwa Programu",
	"Data Rozpoczęcia",
	"Data Zakończenia",
	"Czas Pracy (minuty)",
	"Czas Postoju (minuty)",
	"Rodzaj Zakończenia",
	"Maszyna",
}

// isoLayout matches JavaScript's Date.toISOString, which the dashboard parses.
const isoLayout = "2006-01-02T15:04:05.000Z"

// FormatCSV renders rows under the fixed header. Every field is wrapped in double quotes.
// Embedded quotes are not escaped.
func FormatCSV(rows []models.ExportRow) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, joinQuoted(Headers))

	for _, r := range rows {
		lines = append(lines, joinQuoted([]string{
			r.ProgramName,
			formatTime(&r.StartDate),
			formatTime(r.EndDate),
			strconv.Itoa(r.WorkTime),
			strconv.Itoa(r.IdleTime),
			string(r.Status),
			r.MachineName,
		}))
	}

	return strings.Join(lines, "\n")
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(isoLayout)
}

func joinQuoted(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + f + `"`
	}
	return strings.Join(quoted, ",")
}
