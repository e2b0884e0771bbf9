package insights

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ignite/admetrics/internal/aggregate"
	"github.com/ignite/admetrics/internal/domain"
	"github.com/ignite/admetrics/internal/metrics"
)

// Overview is one aggregation response: ordered rows for a granularity plus
// any events the run skipped. Token increases monotonically across responses
// from one Service, so a consumer that fired overlapping requests can keep
// the highest token and discard stale results.
type Overview struct {
	Token       uint64                   `json:"token"`
	Granularity domain.Granularity       `json:"granularity"`
	Rows        []domain.AggregatedRow   `json:"rows"`
	Skipped     []aggregate.SkippedEvent `json:"skipped,omitempty"`
	GeneratedAt time.Time                `json:"generatedAt"`
}

// Service implements the insights read path. It coordinates the repository,
// the aggregation engine, and an optional Redis row cache. All public
// methods are safe for concurrent use if the underlying repository is
// concurrency-safe; the aggregation itself holds no shared state.
type Service struct {
	repo  Repository
	cache *redis.Client
	ttl   time.Duration
	m     *metrics.Metrics
	log   logrus.FieldLogger
	token atomic.Uint64
}

// NewService creates an insights service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		log:  logrus.WithField("component", "insights"),
	}
}

// SetCache enables the Redis row cache with the given TTL.
func (s *Service) SetCache(client *redis.Client, ttl time.Duration) {
	s.cache = client
	s.ttl = ttl
}

// SetMetrics wires Prometheus instruments into the service.
func (s *Service) SetMetrics(m *metrics.Metrics) {
	s.m = m
}

// Campaigns returns the campaign dimension table.
func (s *Service) Campaigns(ctx context.Context) ([]domain.Campaign, error) {
	if s.repo == nil {
		return nil, ErrNilRepository
	}
	return s.repo.Campaigns(ctx)
}

// Overview returns the ordered aggregate rows for the granularity, serving
// from cache when possible. Cache failures degrade to recomputation, never
// to an error.
func (s *Service) Overview(ctx context.Context, g domain.Granularity) (*Overview, error) {
	if s.repo == nil {
		return nil, ErrNilRepository
	}
	if !g.Valid() {
		return nil, &aggregate.UnsupportedGranularityError{Granularity: g}
	}

	if ov := s.cacheGet(ctx, g); ov != nil {
		s.m.ObserveCacheLookup("hit")
		ov.Token = s.token.Add(1)
		return ov, nil
	}
	s.m.ObserveCacheLookup("miss")

	ov, err := s.compute(ctx, g)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, g, ov)
	return ov, nil
}

// Refresh recomputes the rows for the granularity and overwrites the cache
// entry, bypassing any cached value. Used by the background warmer.
func (s *Service) Refresh(ctx context.Context, g domain.Granularity) (*Overview, error) {
	if s.repo == nil {
		return nil, ErrNilRepository
	}
	ov, err := s.compute(ctx, g)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, g, ov)
	return ov, nil
}

func (s *Service) compute(ctx context.Context, g domain.Granularity) (*Overview, error) {
	campaigns, err := s.repo.Campaigns(ctx)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.Events(ctx, EventFilter{})
	if err != nil {
		return nil, err
	}

	res, err := aggregate.Aggregate(aggregate.Join(events, campaigns), g)
	if err != nil {
		return nil, err
	}
	s.m.ObserveAggregation(string(g), len(events)-len(res.Skipped), len(res.Skipped))
	if len(res.Skipped) > 0 {
		s.log.WithFields(logrus.Fields{
			"granularity": g,
			"skipped":     len(res.Skipped),
		}).Warn("events rejected for malformed timestamps")
	}

	return &Overview{
		Token:       s.token.Add(1),
		Granularity: g,
		Rows:        res.Rows,
		Skipped:     res.Skipped,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func cacheKey(g domain.Granularity) string {
	return "insights:rows:" + string(g)
}

func (s *Service) cacheGet(ctx context.Context, g domain.Granularity) *Overview {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, cacheKey(g)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.WithError(err).Warn("cache read failed")
		}
		return nil
	}
	var ov Overview
	if err := json.Unmarshal(raw, &ov); err != nil {
		s.log.WithError(err).Warn("cache entry corrupt, dropping")
		s.cache.Del(ctx, cacheKey(g))
		return nil
	}
	return &ov
}

func (s *Service) cacheSet(ctx context.Context, g domain.Granularity, ov *Overview) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(ov)
	if err != nil {
		s.log.WithError(err).Warn("cache encode failed")
		return
	}
	if err := s.cache.Set(ctx, cacheKey(g), raw, s.ttl).Err(); err != nil {
		s.log.WithError(err).Warn("cache write failed")
	}
}
