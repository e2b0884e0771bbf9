package aggregate

import (
	"testing"

	"github.com/ignite/admetrics/internal/domain"
)

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		name  string
		start string
		g     domain.Granularity
		want  string
	}{
		{"hourly 24h clock", "2025-01-01T08:00:00Z", domain.Hourly, "Jan 1, 08:00"},
		{"hourly afternoon", "2025-01-01T15:00:00Z", domain.Hourly, "Jan 1, 15:00"},
		{"daily", "2025-01-01T00:00:00Z", domain.Daily, "Jan 1, 2025"},
		{"weekly within one month", "2025-01-13T00:00:00Z", domain.Weekly, "Jan 13–19, 2025"},
		{"weekly across months", "2025-01-27T00:00:00Z", domain.Weekly, "Jan 27 – Feb 2, 2025"},
		{"weekly across years", "2025-12-29T00:00:00Z", domain.Weekly, "Dec 29, 2025 – Jan 4, 2026"},
		{"monthly full name", "2025-01-01T00:00:00Z", domain.Monthly, "January 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatLabel(mustParse(t, tt.start), tt.g)
			if err != nil {
				t.Fatalf("FormatLabel() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatLabel(%s, %s) = %q, want %q", tt.start, tt.g, got, tt.want)
			}
		})
	}
}

func TestFormatLabel_UnsupportedGranularity(t *testing.T) {
	if _, err := FormatLabel(mustParse(t, "2025-01-01T00:00:00Z"), "yearly"); err == nil {
		t.Fatal("expected error for unsupported granularity")
	}
}
