package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/ignite/admetrics/internal/aggregate"
	"github.com/ignite/admetrics/internal/domain"
	"github.com/ignite/admetrics/internal/metrics"
	"github.com/ignite/admetrics/internal/service/insights"
)

// Handlers contains all HTTP handlers for the service.
type Handlers struct {
	insights *insights.Service
	m        *metrics.Metrics
	log      logrus.FieldLogger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc *insights.Service) *Handlers {
	return &Handlers{
		insights: svc,
		log:      logrus.WithField("component", "api"),
	}
}

// SetMetrics wires Prometheus instruments into the request middleware.
func (h *Handlers) SetMetrics(m *metrics.Metrics) {
	h.m = m
}

// Routes builds the router: health and Prometheus endpoints at the root,
// the insights API under /api.
func (h *Handlers) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(h.requestID)
	r.Use(h.instrument)

	r.Get("/health", h.HandleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/insights", h.HandleGetInsights)
		r.Get("/campaigns", h.HandleGetCampaigns)
	})

	return r
}

// HandleHealth reports liveness.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleGetInsights serves the ordered aggregate rows for one granularity.
//
// Query parameters:
//   - granularity: hourly | daily | weekly | monthly (required, no default)
//   - sort: "revenue" re-sorts a copy of the rows by revenue descending;
//     anything else keeps the canonical temporal order
func (h *Handlers) HandleGetInsights(w http.ResponseWriter, r *http.Request) {
	g := domain.Granularity(r.URL.Query().Get("granularity"))

	ov, err := h.insights.Overview(r.Context(), g)
	if err != nil {
		var ugErr *aggregate.UnsupportedGranularityError
		if errors.As(err, &ugErr) {
			respondError(w, http.StatusBadRequest, ugErr.Error())
			return
		}
		h.log.WithError(err).Error("insights overview failed")
		respondError(w, http.StatusInternalServerError, "failed to aggregate insights")
		return
	}

	if r.URL.Query().Get("sort") == "revenue" {
		ov.Rows = aggregate.ByRevenue(ov.Rows)
	}
	respondJSON(w, http.StatusOK, ov)
}

// HandleGetCampaigns serves the campaign dimension table.
func (h *Handlers) HandleGetCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.insights.Campaigns(r.Context())
	if err != nil {
		h.log.WithError(err).Error("campaign lookup failed")
		respondError(w, http.StatusInternalServerError, "failed to load campaigns")
		return
	}
	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}
	respondJSON(w, http.StatusOK, campaigns)
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
