package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ignite/admetrics/internal/domain"
)

// bucket accumulates all events resolving to one period key.
type bucket struct {
	start       time.Time
	impressions int
	clicks      int
	revenue     decimal.Decimal
	campaigns   map[string]struct{}
}

// SkippedEvent identifies an input event dropped under the skip-and-continue
// policy for malformed timestamps.
type SkippedEvent struct {
	Index     int    `json:"index"`
	Timestamp string `json:"timestamp"`
	Reason    string `json:"reason"`
}

// Result is the output of one aggregation run: rows in strictly ascending
// PeriodStart order, plus any events the run skipped.
type Result struct {
	Rows    []domain.AggregatedRow `json:"rows"`
	Skipped []SkippedEvent         `json:"skipped,omitempty"`
}

// Aggregate folds joined metric events into one AggregatedRow per period.
//
// Error policy: a malformed timestamp rejects only the offending event
// (skip-and-continue); it is reported in Result.Skipped with its index and
// raw text, and every other event still aggregates into its bucket. An
// unsupported granularity fails the whole call before any folding happens.
//
// Revenue is accumulated as a decimal and rounded to 2 places only at
// emission, so thousands of additions don't pick up float drift. Empty
// input yields an empty Result, not an error. The fold is a pure function
// of (events, g): re-running it on identical input produces identical
// output, ordering included.
func Aggregate(events []domain.JoinedMetric, g domain.Granularity) (*Result, error) {
	if !g.Valid() {
		return nil, &UnsupportedGranularityError{Granularity: g}
	}

	buckets := make(map[time.Time]*bucket)
	var skipped []SkippedEvent

	for i, ev := range events {
		ts, err := ParseEventTime(ev.Timestamp)
		if err != nil {
			perr := &InvalidTimestampError{Index: i, Raw: ev.Timestamp, Err: err}
			skipped = append(skipped, SkippedEvent{
				Index:     i,
				Timestamp: ev.Timestamp,
				Reason:    perr.Error(),
			})
			continue
		}

		start, err := PeriodStart(ts, g)
		if err != nil {
			return nil, err
		}

		b, ok := buckets[start]
		if !ok {
			b = &bucket{start: start, campaigns: make(map[string]struct{})}
			buckets[start] = b
		}
		b.impressions += ev.Impressions
		b.clicks += ev.Clicks
		b.revenue = b.revenue.Add(decimal.NewFromFloat(ev.Revenue))
		b.campaigns[ev.CampaignID] = struct{}{}
	}

	rows := make([]domain.AggregatedRow, 0, len(buckets))
	for _, b := range buckets {
		label, err := FormatLabel(b.start, g)
		if err != nil {
			return nil, err
		}
		revenue, _ := b.revenue.Round(2).Float64()
		rows = append(rows, domain.AggregatedRow{
			PeriodStart:      b.start,
			Label:            label,
			CampaignsActive:  len(b.campaigns),
			TotalImpressions: b.impressions,
			TotalClicks:      b.clicks,
			TotalRevenue:     revenue,
		})
	}

	OrderRows(rows)
	return &Result{Rows: rows, Skipped: skipped}, nil
}

// OrderRows sorts rows in place, strictly ascending by PeriodStart. Ties are
// impossible by construction: the aggregator emits one row per distinct key.
func OrderRows(rows []domain.AggregatedRow) {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].PeriodStart.Before(rows[j].PeriodStart)
	})
}

// ByRevenue returns a copy of rows sorted descending by TotalRevenue, ties
// broken by PeriodStart ascending. Presentation re-sorts like this work on
// a copy so the canonical temporal order is never disturbed.
func ByRevenue(rows []domain.AggregatedRow) []domain.AggregatedRow {
	out := make([]domain.AggregatedRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalRevenue != out[j].TotalRevenue {
			return out[i].TotalRevenue > out[j].TotalRevenue
		}
		return out[i].PeriodStart.Before(out[j].PeriodStart)
	})
	return out
}
