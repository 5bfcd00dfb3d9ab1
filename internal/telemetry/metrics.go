package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики движка.
//
// Экспортируются на /metrics, когда процесс работает в режиме schedule.
// В разовых запусках (flowline run) метрики тоже инкрементируются,
// но наружу не отдаются.
var (
	// RunsTotal — количество завершённых runs по статусу
	// (SUCCEEDED / FAILED).
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowline_runs_total",
		Help: "Total completed flow runs by final status",
	}, []string{"status"})

	// StepsTotal — количество обработанных шагов по исходу
	// (succeeded / failed / blocked).
	StepsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowline_steps_total",
		Help: "Total processed steps by outcome",
	}, []string{"outcome"})

	// StepDuration — длительность выполнения шагов.
	// Заблокированные шаги сюда не попадают: executor не вызывался.
	StepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flowline_step_duration_seconds",
		Help:    "Step execution duration in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

// Исходы шагов для метрики StepsTotal.
const (
	StepOutcomeSucceeded = "succeeded"
	StepOutcomeFailed    = "failed"
	StepOutcomeBlocked   = "blocked"
)
