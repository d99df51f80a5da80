package todo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daily_todos_mutations_total",
			Help: "Todo list mutations by operation and result",
		},
		[]string{"op", "result"},
	)

	activeItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "daily_todos_active_items",
			Help: "Todos in the live list that are not completed",
		},
	)
)
