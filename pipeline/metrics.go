package pipeline

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	rankLabel = "rank"
)

var (
	cellsEstimated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "heatgrid_cells_estimated_total",
		Help: "The total number of grid cells estimated.",
	}, []string{rankLabel})

	workerDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "heatgrid_worker_duration_seconds",
		Help:    "Time a worker spends evaluating its rows.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})

	workerFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "heatgrid_worker_failures_total",
		Help: "The total number of workers that stopped with an error.",
	})

	uncoveredRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "heatgrid_uncovered_rows",
		Help: "Rows of the last run that no worker was assigned.",
	})
)

func instrumentRow(rank, cells int) {
	cellsEstimated.
		With(prometheus.Labels{rankLabel: strconv.Itoa(rank)}).
		Add(float64(cells))
}

func instrumentWorkerDone(elapsed time.Duration) {
	workerDuration.Observe(elapsed.Seconds())
}

func instrumentWorkerFailure() {
	workerFailures.Inc()
}

func instrumentUncovered(rows int) {
	uncoveredRows.Set(float64(rows))
}
