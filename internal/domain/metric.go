package domain

// MetricEvent is a single raw campaign observation. Events are created by
// ingestion and never mutated. Timestamp is kept as the raw ISO-8601 string
// it arrived with; parsing (and rejection of malformed values) is the
// aggregation engine's job, so a bad timestamp can be reported with its
// original text.
type MetricEvent struct {
	CampaignID  string  `json:"campaignId" db:"campaign_id"`
	Timestamp   string  `json:"timestamp" db:"event_time"`
	Impressions int     `json:"impressions" db:"impressions"`
	Clicks      int     `json:"clicks" db:"clicks"`
	Revenue     float64 `json:"revenue" db:"revenue"`
}

// JoinedMetric is a MetricEvent with its campaign dimension fields resolved.
// CampaignName and Platform are UnknownCampaign when the id is dangling.
type JoinedMetric struct {
	MetricEvent
	CampaignName string `json:"campaignName"`
	Platform     string `json:"platform"`
}

// Dataset mirrors the JSON input boundary: the campaign dimension table plus
// the flat set of metric events.
type Dataset struct {
	Campaigns []Campaign    `json:"campaigns"`
	Metrics   []MetricEvent `json:"metrics"`
}
