package domain

// Granularity is the aggregation level for time-bucketed rollups.
type Granularity string

const (
	Hourly  Granularity = "hourly"
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// Granularities lists the recognized aggregation levels in bucket-size order.
func Granularities() []Granularity {
	return []Granularity{Hourly, Daily, Weekly, Monthly}
}

// Valid reports whether g is one of the four recognized granularities.
// There is deliberately no fallback level for unrecognized values.
func (g Granularity) Valid() bool {
	switch g {
	case Hourly, Daily, Weekly, Monthly:
		return true
	}
	return false
}
