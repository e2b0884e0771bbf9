package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ignite/admetrics/internal/domain"
	"github.com/ignite/admetrics/internal/service/insights"
)

// InsightsRepo implements insights.Repository against PostgreSQL.
type InsightsRepo struct{ db *sql.DB }

// NewInsightsRepo creates a Postgres-backed insights repository.
func NewInsightsRepo(db *sql.DB) *InsightsRepo { return &InsightsRepo{db: db} }

// Campaigns returns the campaign dimension table ordered by id.
func (r *InsightsRepo) Campaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(platform,'')
		FROM campaigns
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query campaigns: %w", err)
	}
	defer rows.Close()

	var out []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.Platform); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Events returns metric events in event_time order. The stored timestamptz
// is rendered back to an RFC 3339 string in UTC, matching the ingestion
// shape the aggregation engine consumes.
func (r *InsightsRepo) Events(ctx context.Context, f insights.EventFilter) ([]domain.MetricEvent, error) {
	q := `
		SELECT campaign_id, event_time, impressions, clicks, revenue
		FROM metric_events`

	var args []interface{}
	idx := 1
	where := ""
	if f.From != nil {
		where += fmt.Sprintf(" WHERE event_time >= $%d", idx)
		args = append(args, *f.From)
		idx++
	}
	if f.To != nil {
		if where == "" {
			where += fmt.Sprintf(" WHERE event_time < $%d", idx)
		} else {
			where += fmt.Sprintf(" AND event_time < $%d", idx)
		}
		args = append(args, *f.To)
		idx++
	}
	q += where + " ORDER BY event_time ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []domain.MetricEvent
	for rows.Next() {
		var ev domain.MetricEvent
		var ts time.Time
		if err := rows.Scan(&ev.CampaignID, &ts, &ev.Impressions, &ev.Clicks, &ev.Revenue); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Timestamp = ts.UTC().Format(time.RFC3339)
		out = append(out, ev)
	}
	return out, rows.Err()
}
