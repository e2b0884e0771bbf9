package domain

import "time"

// AggregatedRow is one emitted time bucket. PeriodStart is the canonical
// bucket identity and sort key; Label is a presentation derivative of
// PeriodStart and must never be used for ordering or grouping.
type AggregatedRow struct {
	PeriodStart      time.Time `json:"periodStart"`
	Label            string    `json:"label"`
	CampaignsActive  int       `json:"campaignsActive"`
	TotalImpressions int       `json:"totalImpressions"`
	TotalClicks      int       `json:"totalClicks"`
	TotalRevenue     float64   `json:"totalRevenue"`
}
