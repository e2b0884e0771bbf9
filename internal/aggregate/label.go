package aggregate

import (
	"fmt"
	"time"

	"github.com/ignite/admetrics/internal/domain"
)

// FormatLabel renders the display label for the bucket starting at start:
//
//   - Hourly: "Jan 2, 15:04" (24-hour clock, UTC)
//   - Daily: "Jan 2, 2006"
//   - Weekly: "Jan 13–19, 2025", spanning Monday through Sunday; weeks that
//     cross a month or year boundary spell out both dates.
//   - Monthly: "January 2006"
//
// Labels are presentation only. They are generated once per row and must
// never be used as a grouping or sort key.
func FormatLabel(start time.Time, g domain.Granularity) (string, error) {
	start = start.UTC()
	switch g {
	case domain.Hourly:
		return start.Format("Jan 2, 15:04"), nil
	case domain.Daily:
		return start.Format("Jan 2, 2006"), nil
	case domain.Weekly:
		end := start.AddDate(0, 0, 6)
		if start.Month() == end.Month() {
			return fmt.Sprintf("%s–%d, %d", start.Format("Jan 2"), end.Day(), start.Year()), nil
		}
		if start.Year() == end.Year() {
			return fmt.Sprintf("%s – %s, %d", start.Format("Jan 2"), end.Format("Jan 2"), end.Year()), nil
		}
		return fmt.Sprintf("%s, %d – %s, %d", start.Format("Jan 2"), start.Year(), end.Format("Jan 2"), end.Year()), nil
	case domain.Monthly:
		return start.Format("January 2006"), nil
	default:
		return "", &UnsupportedGranularityError{Granularity: g}
	}
}
