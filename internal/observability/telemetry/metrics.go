package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DialogTurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bankbot_dialog_turns_total",
		Help: "Dialog turns handled, by intent and outcome",
	}, []string{"intent", "outcome"})

	DialogLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bankbot_dialog_latency_seconds",
		Help:    "Time spent handling a dialog turn",
		Buckets: prometheus.DefBuckets,
	})

	TransfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bankbot_transfers_total",
		Help: "Confirmed transfer attempts, by result",
	}, []string{"result"})

	StoreLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bankbot_store_latency_seconds",
		Help:    "Account store call latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "operation"})
)

var CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bankbot_cache_lookups_total",
	Help: "Display name cache lookups, by result",
}, []string{"result"})

var TransferEventsAudited = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bankbot_transfer_events_audited_total",
	Help: "Transfer events consumed by the audit subscriber, by result",
}, []string{"result"})
