// Package metrics exposes the store's activity counters as prometheus
// collectors. With a nil registerer the collectors still work, they are
// simply never scraped.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type StoreMetrics struct {
	TxnsBegun         prometheus.Counter
	TxnsCommitted     prometheus.Counter
	TxnsAborted       prometheus.Counter
	Reads             prometheus.Counter
	Writes            prometheus.Counter
	Deletes           prometheus.Counter
	VersionsCommitted prometheus.Counter
	ActiveTxns        prometheus.Gauge
}

func New(reg prometheus.Registerer) *StoreMetrics {
	factory := promauto.With(reg)

	return &StoreMetrics{
		TxnsBegun: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tinymvcc",
			Name:      "txns_begun_total",
			Help:      "Transactions started.",
		}),
		TxnsCommitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tinymvcc",
			Name:      "txns_committed_total",
			Help:      "Transactions committed.",
		}),
		TxnsAborted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tinymvcc",
			Name:      "txns_aborted_total",
			Help:      "Transactions rolled back.",
		}),
		Reads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tinymvcc",
			Name:      "reads_total",
			Help:      "Get calls that reached the store.",
		}),
		Writes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tinymvcc",
			Name:      "writes_total",
			Help:      "Put calls buffered into write sets.",
		}),
		Deletes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tinymvcc",
			Name:      "deletes_total",
			Help:      "Delete calls buffered into write sets.",
		}),
		VersionsCommitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tinymvcc",
			Name:      "versions_committed_total",
			Help:      "Versions spliced onto chains at commit.",
		}),
		ActiveTxns: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tinymvcc",
			Name:      "active_txns",
			Help:      "Transactions currently in the Active state.",
		}),
	}
}
