package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/admetrics/internal/domain"
	"github.com/ignite/admetrics/internal/service/insights"
)

type countingRepo struct {
	mu    sync.Mutex
	calls int
}

func (r *countingRepo) Campaigns(_ context.Context) ([]domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return []domain.Campaign{{ID: "c1", Name: "Spring Sale", Platform: "Meta"}}, nil
}

func (r *countingRepo) Events(_ context.Context, _ insights.EventFilter) ([]domain.MetricEvent, error) {
	return []domain.MetricEvent{
		{CampaignID: "c1", Timestamp: "2025-01-01T08:00:00Z", Impressions: 10, Clicks: 1, Revenue: 1.50},
	}, nil
}

func (r *countingRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestRefreshAll_WarmsEveryGranularity(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	repo := &countingRepo{}
	svc := insights.NewService(repo)
	svc.SetCache(client, time.Minute)

	w := NewRefreshWorker(svc, time.Hour)
	w.refreshAll(context.Background())

	// One compute per granularity.
	if got := repo.callCount(); got != len(domain.Granularities()) {
		t.Errorf("repo called %d times, want %d", got, len(domain.Granularities()))
	}

	// A follow-up Overview for any granularity is a pure cache hit.
	calls := repo.callCount()
	for _, g := range domain.Granularities() {
		if _, err := svc.Overview(context.Background(), g); err != nil {
			t.Fatalf("Overview(%s) error: %v", g, err)
		}
	}
	if repo.callCount() != calls {
		t.Error("warmed cache must serve all granularities without recomputation")
	}
}

func TestStartStop(t *testing.T) {
	svc := insights.NewService(&countingRepo{})
	w := NewRefreshWorker(svc, 50*time.Millisecond)

	w.Start()
	w.Start() // second Start is a no-op

	time.Sleep(20 * time.Millisecond)

	w.Stop()
	w.Stop() // second Stop is a no-op

	w.mu.Lock()
	running := w.running
	w.mu.Unlock()
	if running {
		t.Error("worker should not be running after Stop()")
	}
}
