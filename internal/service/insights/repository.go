package insights

import (
	"context"
	"time"

	"github.com/ignite/admetrics/internal/domain"
)

// Repository defines data access for the campaign dimension table and the
// raw metric events. Implementations must be safe for concurrent use.
type Repository interface {
	// Campaigns returns the full campaign dimension table.
	Campaigns(ctx context.Context) ([]domain.Campaign, error)

	// Events returns raw metric events matching the filter, in ingestion
	// order. Events whose timestamps cannot be parsed are still returned;
	// rejecting them is the aggregation engine's job, so the skip report
	// keeps the original raw text.
	Events(ctx context.Context, f EventFilter) ([]domain.MetricEvent, error)
}

// EventFilter narrows the event scan window. Nil bounds mean unbounded.
// From is inclusive, To exclusive.
type EventFilter struct {
	From *time.Time
	To   *time.Time
}
