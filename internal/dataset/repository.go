package dataset

import (
	"context"

	"github.com/ignite/admetrics/internal/aggregate"
	"github.com/ignite/admetrics/internal/domain"
	"github.com/ignite/admetrics/internal/service/insights"
)

// Repository serves a loaded in-memory Dataset through the
// insights.Repository contract. The dataset is immutable after construction,
// so all methods are safe for concurrent use.
type Repository struct {
	ds *domain.Dataset
}

// NewRepository wraps an already-loaded dataset.
func NewRepository(ds *domain.Dataset) *Repository {
	return &Repository{ds: ds}
}

// Campaigns returns the campaign dimension table.
func (r *Repository) Campaigns(_ context.Context) ([]domain.Campaign, error) {
	out := make([]domain.Campaign, len(r.ds.Campaigns))
	copy(out, r.ds.Campaigns)
	return out, nil
}

// Events returns metric events in ingestion order. Filter bounds compare
// against the parsed event timestamp; events whose timestamps don't parse
// are kept regardless of bounds so the aggregation engine can report them.
func (r *Repository) Events(_ context.Context, f insights.EventFilter) ([]domain.MetricEvent, error) {
	if f.From == nil && f.To == nil {
		out := make([]domain.MetricEvent, len(r.ds.Metrics))
		copy(out, r.ds.Metrics)
		return out, nil
	}

	var out []domain.MetricEvent
	for _, ev := range r.ds.Metrics {
		ts, err := aggregate.ParseEventTime(ev.Timestamp)
		if err != nil {
			out = append(out, ev)
			continue
		}
		if f.From != nil && ts.Before(*f.From) {
			continue
		}
		if f.To != nil && !ts.Before(*f.To) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}
