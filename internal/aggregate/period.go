package aggregate

import (
	"time"

	"github.com/ignite/admetrics/internal/domain"
)

// ParseEventTime parses a metric event timestamp. Input must be RFC 3339;
// anything else is rejected rather than coerced to a default instant.
func ParseEventTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, raw)
}

// PeriodStart truncates t to the start of its bucket for the given
// granularity, in UTC:
//
//   - Hourly: top of the UTC hour.
//   - Daily: 00:00:00 UTC of that day.
//   - Weekly: most recent Monday 00:00:00 UTC (ISO-8601 week start), so a
//     Sunday timestamp belongs to the week that began six days earlier.
//   - Monthly: day 1, 00:00:00 UTC of that month.
//
// The returned instant is the canonical bucket key.
func PeriodStart(t time.Time, g domain.Granularity) (time.Time, error) {
	t = t.UTC()
	switch g {
	case domain.Hourly:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC), nil
	case domain.Daily:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	case domain.Weekly:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		// time.Weekday numbers Sunday as 0; shift so Monday is 0.
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset), nil
	case domain.Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, &UnsupportedGranularityError{Granularity: g}
	}
}

// PeriodEnd returns the exclusive end instant of the bucket beginning at
// start. Day/week/month arithmetic goes through AddDate so DST and month
// lengths never enter into it (the inputs are UTC bucket starts).
func PeriodEnd(start time.Time, g domain.Granularity) (time.Time, error) {
	switch g {
	case domain.Hourly:
		return start.Add(time.Hour), nil
	case domain.Daily:
		return start.AddDate(0, 0, 1), nil
	case domain.Weekly:
		return start.AddDate(0, 0, 7), nil
	case domain.Monthly:
		return start.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, &UnsupportedGranularityError{Granularity: g}
	}
}
