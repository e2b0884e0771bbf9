package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ignite/admetrics/internal/api"
	"github.com/ignite/admetrics/internal/config"
	"github.com/ignite/admetrics/internal/dataset"
	"github.com/ignite/admetrics/internal/metrics"
	"github.com/ignite/admetrics/internal/repository/postgres"
	"github.com/ignite/admetrics/internal/service/insights"
	"github.com/ignite/admetrics/internal/worker"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

func setupLogging(cfg config.LoggingConfig) {
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	setupLogging(cfg.Logging)
	log := logrus.WithField("component", "server")

	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if err := checkPortAvailable(host, port); err != nil {
		log.WithError(err).Fatal("pre-flight check failed")
	}

	// Pick the event source: Postgres when configured, otherwise the
	// static dataset (local file or S3).
	var repo insights.Repository
	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			log.WithError(err).Fatal("failed to open database")
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.WithError(err).Fatal("failed to reach database")
		}
		repo = postgres.NewInsightsRepo(db)
		log.Info("using PostgreSQL event source")
	} else {
		loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		ds, err := dataset.NewLoader(cfg.Dataset).Load(loadCtx)
		cancel()
		if err != nil {
			log.WithError(err).Fatal("failed to load dataset")
		}
		repo = dataset.NewRepository(ds)
		log.WithField("source", cfg.Dataset.Source).Info("using static dataset source")
	}

	m := metrics.Init("admetrics")

	svc := insights.NewService(repo)
	svc.SetMetrics(m)

	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.WithError(err).Fatal("invalid redis url")
		}
		client := redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.WithError(err).Warn("redis unreachable, running without insights cache")
		} else {
			svc.SetCache(client, cfg.Cache.TTL())
			defer client.Close()
			log.Info("insights cache enabled")
		}
	}

	handlers := api.NewHandlers(svc)
	handlers.SetMetrics(m)

	var refresher *worker.RefreshWorker
	if cfg.Refresh.Enabled {
		refresher = worker.NewRefreshWorker(svc, cfg.Refresh.Interval())
		refresher.Start()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      handlers.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	<-done
	log.Info("shutting down")

	if refresher != nil {
		refresher.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown error")
	}
	log.Info("server stopped")
}
