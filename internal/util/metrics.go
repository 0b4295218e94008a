package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ComponentsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mix_components_added_total",
		Help: "Total number of components added to mix drafts",
	})

	ComponentsRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mix_components_removed_total",
		Help: "Total number of components removed from mix drafts",
	})

	QuantityEditsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mix_quantity_edits_total",
		Help: "Total number of committed quantity edits",
	})

	ValidationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mix_validation_failures_total",
		Help: "Total number of rejected operations by validation rule",
	}, []string{"rule"})

	MixesSavedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mixes_saved_total",
		Help: "Total number of mixes saved",
	})

	MixesLoadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mixes_loaded_total",
		Help: "Total number of saved mixes loaded into a draft",
	})

	SavedMixesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "saved_mixes_total",
		Help: "Number of mixes currently in the saved-mix store",
	})

	OrderDraftsPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_drafts_published_total",
		Help: "Total number of mix drafts handed to order intake",
	})

	OrderDraftsFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_drafts_failed_total",
		Help: "Total number of draft hand-offs that failed",
	})

	SessionsOpenedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "designer_sessions_opened_total",
		Help: "Total number of designer sessions opened",
	})

	SavePersistLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mix_save_persist_latency_seconds",
		Help:    "Latency of persisting a saved mix",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
