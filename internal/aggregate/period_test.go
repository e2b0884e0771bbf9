package aggregate

import (
	"errors"
	"testing"
	"time"

	"github.com/ignite/admetrics/internal/domain"
)

func mustParse(t *testing.T, raw string) time.Time {
	t.Helper()
	ts, err := ParseEventTime(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return ts
}

func TestPeriodStart_Truncation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		g    domain.Granularity
		want string
	}{
		{"hourly drops minutes", "2025-01-01T09:30:45Z", domain.Hourly, "2025-01-01T09:00:00Z"},
		{"hourly already aligned", "2025-01-01T09:00:00Z", domain.Hourly, "2025-01-01T09:00:00Z"},
		{"daily drops time of day", "2025-03-15T23:59:59Z", domain.Daily, "2025-03-15T00:00:00Z"},
		{"weekly from a wednesday", "2025-01-15T12:00:00Z", domain.Weekly, "2025-01-13T00:00:00Z"},
		{"weekly from a monday stays put", "2025-01-13T00:00:00Z", domain.Weekly, "2025-01-13T00:00:00Z"},
		// A Sunday belongs to the week that started the preceding Monday,
		// per ISO-8601 — not to a week starting on the Sunday itself.
		{"weekly sunday joins preceding monday", "2025-01-05T00:00:00Z", domain.Weekly, "2024-12-30T00:00:00Z"},
		{"weekly crosses month boundary", "2025-02-01T10:00:00Z", domain.Weekly, "2025-01-27T00:00:00Z"},
		{"monthly mid-month", "2025-06-20T08:15:00Z", domain.Monthly, "2025-06-01T00:00:00Z"},
		{"monthly first instant", "2025-06-01T00:00:00Z", domain.Monthly, "2025-06-01T00:00:00Z"},
		// Offset timestamps truncate against UTC, not the source offset:
		// 01:30+05:00 is 20:30Z the previous day.
		{"daily with zone offset", "2025-01-01T01:30:00+05:00", domain.Daily, "2024-12-31T00:00:00Z"},
		{"hourly with zone offset", "2025-01-01T01:30:00+05:00", domain.Hourly, "2024-12-31T20:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PeriodStart(mustParse(t, tt.in), tt.g)
			if err != nil {
				t.Fatalf("PeriodStart() error: %v", err)
			}
			want := mustParse(t, tt.want)
			if !got.Equal(want) {
				t.Errorf("PeriodStart(%s, %s) = %s, want %s", tt.in, tt.g, got, want)
			}
			if got.Location() != time.UTC {
				t.Errorf("PeriodStart returned non-UTC location %v", got.Location())
			}
		})
	}
}

func TestPeriodStart_UnsupportedGranularity(t *testing.T) {
	_, err := PeriodStart(time.Now(), domain.Granularity("fortnightly"))
	if err == nil {
		t.Fatal("expected error for unsupported granularity")
	}
	var ugErr *UnsupportedGranularityError
	if !errors.As(err, &ugErr) {
		t.Fatalf("expected *UnsupportedGranularityError, got %T", err)
	}
	if ugErr.Granularity != "fortnightly" {
		t.Errorf("error carries granularity %q, want %q", ugErr.Granularity, "fortnightly")
	}
}

func TestPeriodEnd(t *testing.T) {
	tests := []struct {
		start string
		g     domain.Granularity
		want  string
	}{
		{"2025-01-01T09:00:00Z", domain.Hourly, "2025-01-01T10:00:00Z"},
		{"2025-01-31T00:00:00Z", domain.Daily, "2025-02-01T00:00:00Z"},
		{"2024-12-30T00:00:00Z", domain.Weekly, "2025-01-06T00:00:00Z"},
		{"2025-01-01T00:00:00Z", domain.Monthly, "2025-02-01T00:00:00Z"},
		// February is short; AddDate handles the month length.
		{"2025-02-01T00:00:00Z", domain.Monthly, "2025-03-01T00:00:00Z"},
	}

	for _, tt := range tests {
		got, err := PeriodEnd(mustParse(t, tt.start), tt.g)
		if err != nil {
			t.Fatalf("PeriodEnd(%s, %s) error: %v", tt.start, tt.g, err)
		}
		if want := mustParse(t, tt.want); !got.Equal(want) {
			t.Errorf("PeriodEnd(%s, %s) = %s, want %s", tt.start, tt.g, got, want)
		}
	}

	if _, err := PeriodEnd(time.Now(), domain.Granularity("decade")); err == nil {
		t.Error("expected error for unsupported granularity")
	}
}

func TestParseEventTime_RejectsMalformed(t *testing.T) {
	bad := []string{"", "not-a-date", "2025-13-45T99:00:00Z", "2025-01-01", "1736035200"}
	for _, raw := range bad {
		if _, err := ParseEventTime(raw); err == nil {
			t.Errorf("ParseEventTime(%q) should fail", raw)
		}
	}
}
