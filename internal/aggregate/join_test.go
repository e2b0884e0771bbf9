package aggregate

import (
	"testing"

	"github.com/ignite/admetrics/internal/domain"
)

func TestJoin_ResolvesDimensionFields(t *testing.T) {
	campaigns := []domain.Campaign{
		{ID: "c1", Name: "Spring Sale", Platform: "Meta"},
		{ID: "c2", Name: "Brand Push", Platform: "Google"},
	}
	events := []domain.MetricEvent{
		{CampaignID: "c2", Timestamp: "2025-01-01T09:00:00Z", Impressions: 10},
		{CampaignID: "c1", Timestamp: "2025-01-01T10:00:00Z", Clicks: 3},
	}

	joined := Join(events, campaigns)
	if len(joined) != 2 {
		t.Fatalf("got %d joined events, want 2", len(joined))
	}

	// Order preserving: c2 first, then c1.
	if joined[0].CampaignName != "Brand Push" || joined[0].Platform != "Google" {
		t.Errorf("joined[0] = %q/%q, want Brand Push/Google", joined[0].CampaignName, joined[0].Platform)
	}
	if joined[1].CampaignName != "Spring Sale" || joined[1].Platform != "Meta" {
		t.Errorf("joined[1] = %q/%q, want Spring Sale/Meta", joined[1].CampaignName, joined[1].Platform)
	}
	if joined[0].Impressions != 10 || joined[1].Clicks != 3 {
		t.Error("join must carry metric values through unchanged")
	}
}

func TestJoin_DanglingReferenceGetsSentinel(t *testing.T) {
	campaigns := []domain.Campaign{{ID: "c1", Name: "Live", Platform: "Meta"}}
	events := []domain.MetricEvent{
		{CampaignID: "ghost", Timestamp: "2025-01-01T09:00:00Z", Impressions: 5},
	}

	joined := Join(events, campaigns)
	if joined[0].CampaignName != domain.UnknownCampaign {
		t.Errorf("dangling id resolved to %q, want %q", joined[0].CampaignName, domain.UnknownCampaign)
	}
	if joined[0].Platform != domain.UnknownCampaign {
		t.Errorf("dangling id platform %q, want %q", joined[0].Platform, domain.UnknownCampaign)
	}
}

func TestJoin_EmptyInputs(t *testing.T) {
	if got := Join(nil, nil); len(got) != 0 {
		t.Errorf("Join(nil, nil) returned %d records", len(got))
	}
	joined := Join([]domain.MetricEvent{{CampaignID: "c1"}}, nil)
	if len(joined) != 1 || joined[0].CampaignName != domain.UnknownCampaign {
		t.Error("join with empty dimension table must still emit sentinel records")
	}
}
