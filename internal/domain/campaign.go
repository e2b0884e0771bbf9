package domain

// UnknownCampaign is the sentinel substituted for the campaign name and
// platform when a metric event references a campaign id that has no row in
// the dimension table. Upstream data may reference retired or deleted
// campaigns, so a dangling id is never an error.
const UnknownCampaign = "Unknown"

// Campaign is one row of the campaign dimension table. Immutable reference
// data, loaded once per session by the dataset loader or repository.
type Campaign struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Platform string `json:"platform" db:"platform"`
}
