package main

import (
	"alpaca/internal/usecasees"
	"alpaca/internal/usecasees/structs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (a *App) initMetrics() {
	a.Metrics = make(usecasees.Metrics, len(structs.MetricList))

	for _, m := range structs.MetricList {
		a.Metrics[m] = promauto.NewCounter(prometheus.CounterOpts{
			Name: m.ToString(),
			Help: m.ToString(),
		})
	}
}
