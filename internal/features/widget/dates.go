package widget

import "time"

const isoDate = "2006-01-02"

// CalculateDateRange resolves a symbolic period into concrete ISO date
// bounds. Empty strings mean unbounded. last_6_months/last_3_months/
// last_month are fixed whole-day windows (180/90/30 days), not calendar
// months; downstream sorting and percentage totals depend on these exact
// boundaries, so they are kept as-is.
func CalculateDateRange(period, customStart, customEnd string) (string, string) {
	return calculateDateRangeAt(period, customStart, customEnd, time.Now())
}

func calculateDateRangeAt(period, customStart, customEnd string, now time.Time) (string, string) {
	switch period {
	case "custom":
		return customStart, customEnd
	case "last_year":
		// Exactly one calendar year back, same month and day.
		return now.AddDate(-1, 0, 0).Format(isoDate), now.Format(isoDate)
	case "last_6_months":
		return now.AddDate(0, 0, -180).Format(isoDate), now.Format(isoDate)
	case "last_3_months":
		return now.AddDate(0, 0, -90).Format(isoDate), now.Format(isoDate)
	case "last_month":
		return now.AddDate(0, 0, -30).Format(isoDate), now.Format(isoDate)
	default: // "all" and anything unrecognized
		return "", ""
	}
}
