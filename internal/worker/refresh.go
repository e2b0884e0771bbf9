// Package worker contains background jobs. The only job today is the
// insights cache warmer, which re-aggregates every granularity on a fixed
// interval so interactive requests rarely pay the fold cost.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignite/admetrics/internal/domain"
	"github.com/ignite/admetrics/internal/service/insights"
)

// RefreshWorker periodically recomputes and re-caches the aggregate rows
// for all granularities.
type RefreshWorker struct {
	svc      *insights.Service
	interval time.Duration
	log      logrus.FieldLogger

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
}

// NewRefreshWorker creates a cache warmer over the insights service.
func NewRefreshWorker(svc *insights.Service, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		svc:      svc,
		interval: interval,
		log:      logrus.WithField("component", "refresh-worker"),
	}
}

// Start launches the refresh loop. Calling Start on a running worker is a
// no-op. The first refresh runs immediately so the cache is warm at boot.
func (w *RefreshWorker) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stopChan = make(chan struct{})
	stop := w.stopChan
	w.mu.Unlock()

	w.log.WithField("interval", w.interval).Info("starting")
	go w.run(stop)
}

// Stop halts the refresh loop. Safe to call on a stopped worker.
func (w *RefreshWorker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.stopChan)
	w.log.Info("stopped")
}

func (w *RefreshWorker) run(stop chan struct{}) {
	w.refreshAll(context.Background())

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			w.refreshAll(context.Background())
		}
	}
}

func (w *RefreshWorker) refreshAll(ctx context.Context) {
	for _, g := range domain.Granularities() {
		ov, err := w.svc.Refresh(ctx, g)
		if err != nil {
			w.log.WithError(err).WithField("granularity", g).Error("refresh failed")
			continue
		}
		w.log.WithFields(logrus.Fields{
			"granularity": g,
			"rows":        len(ov.Rows),
			"skipped":     len(ov.Skipped),
		}).Debug("cache refreshed")
	}
}
