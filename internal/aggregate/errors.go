package aggregate

import (
	"fmt"

	"github.com/ignite/admetrics/internal/domain"
)

// InvalidTimestampError reports a metric event whose timestamp could not be
// parsed as an RFC 3339 instant. Index is the event's position in the input
// slice and Raw is the original timestamp text, so callers can trace the
// offending record.
type InvalidTimestampError struct {
	Index int
	Raw   string
	Err   error
}

func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("event %d: invalid timestamp %q: %v", e.Index, e.Raw, e.Err)
}

func (e *InvalidTimestampError) Unwrap() error { return e.Err }

// UnsupportedGranularityError reports a granularity outside the four
// recognized levels. There is no fallback level: a typo'd granularity fails
// the whole call rather than silently aggregating daily.
type UnsupportedGranularityError struct {
	Granularity domain.Granularity
}

func (e *UnsupportedGranularityError) Error() string {
	return fmt.Sprintf("unsupported granularity %q (want hourly, daily, weekly, or monthly)", string(e.Granularity))
}
