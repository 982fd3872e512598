package report

import (
	"time"
)

// ReportDate formats the given instant as a YYYY-MM-DD date in the
// preferred zone. When the zone cannot be loaded the instant's own
// clock is used instead, so a date can always be produced.
func ReportDate(now time.Time, preferredZone string) string {
	if loc, err := time.LoadLocation(preferredZone); err == nil {
		now = now.In(loc)
	}
	return now.Format("2006-01-02")
}

// CurrentReportDate returns today's date string for report naming
func CurrentReportDate(preferredZone string) string {
	return ReportDate(time.Now(), preferredZone)
}
