package store

import (
	"context"

	"github.com/kinsman/brandsite/backend/go-services/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Instrumented wraps a Store and records operation counts and latencies.
type Instrumented struct {
	Store
}

func WithMetrics(s Store) *Instrumented {
	return &Instrumented{Store: s}
}

func observe(op, collection string) func() {
	timer := prometheus.NewTimer(metrics.StoreDuration.WithLabelValues(op, collection))
	return func() { timer.ObserveDuration() }
}

func record(op, collection string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.StoreOperations.WithLabelValues(op, collection, result).Inc()
}

func (i *Instrumented) Insert(ctx context.Context, collection string, doc any) (string, error) {
	done := observe("insert", collection)
	id, err := i.Store.Insert(ctx, collection, doc)
	done()
	record("insert", collection, err)
	return id, err
}

func (i *Instrumented) Find(ctx context.Context, collection string, filter Filter, limit int64) ([]Document, error) {
	done := observe("find", collection)
	docs, err := i.Store.Find(ctx, collection, filter, limit)
	done()
	record("find", collection, err)
	return docs, err
}

func (i *Instrumented) ListCollections(ctx context.Context) ([]string, error) {
	done := observe("list_collections", "")
	names, err := i.Store.ListCollections(ctx)
	done()
	record("list_collections", "", err)
	return names, err
}
