package aggregate

import "github.com/ignite/admetrics/internal/domain"

// Join resolves each event's campaign name and platform from the dimension
// table. The lookup is built once (O(n)) and each event resolves in O(1).
// Events whose campaign id has no dimension row get the UnknownCampaign
// sentinel for both fields; a dangling id is never an error. Input order is
// preserved and the inputs are not mutated.
func Join(events []domain.MetricEvent, campaigns []domain.Campaign) []domain.JoinedMetric {
	byID := make(map[string]domain.Campaign, len(campaigns))
	for _, c := range campaigns {
		byID[c.ID] = c
	}

	joined := make([]domain.JoinedMetric, 0, len(events))
	for _, ev := range events {
		jm := domain.JoinedMetric{
			MetricEvent:  ev,
			CampaignName: domain.UnknownCampaign,
			Platform:     domain.UnknownCampaign,
		}
		if c, ok := byID[ev.CampaignID]; ok {
			jm.CampaignName = c.Name
			jm.Platform = c.Platform
		}
		joined = append(joined, jm)
	}
	return joined
}
