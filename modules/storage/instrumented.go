package storage

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var operationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "daily_todos_storage_operations_total",
		Help: "Key-value storage operations by operation, key and result",
	},
	[]string{"op", "key", "result"},
)

// Instrumented counts every Get and Set passing through it.
type Instrumented struct {
	next KVStore
}

// Instrument wraps kv with operation counters.
func Instrument(kv KVStore) *Instrumented {
	return &Instrumented{next: kv}
}

func (s *Instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.next.Get(ctx, key)
	operationsTotal.WithLabelValues("get", key, resultLabel(err)).Inc()
	return data, err
}

func (s *Instrumented) Set(ctx context.Context, key string, value []byte) error {
	err := s.next.Set(ctx, key, value)
	operationsTotal.WithLabelValues("set", key, resultLabel(err)).Inc()
	return err
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrKeyNotFound):
		return "miss"
	default:
		return "error"
	}
}
