package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Flowline/internal/domain"
	"github.com/shaiso/Flowline/internal/engine"
	"github.com/shaiso/Flowline/internal/telemetry"
)

// BlockedReason — причина, записываемая заблокированному шагу.
const BlockedReason = "Blocked by failed dependencies"

// runFailedReason — агрегированная причина для run с упавшими шагами.
const runFailedReason = "At least one step failed"

// Runner выполняет flow по построенному DAG.
//
// Один логический поток ведёт весь run от начала до конца: шаги
// вызываются строго по одному, в топологическом порядке, вычисленном
// при построении DAG. Перед каждым шагом выполняется gating-проверка:
// шаг запускается только если все его depends_on завершились успешно.
// Упавшие и заблокированные шаги не останавливают run — независимые
// ветки продолжают выполняться, а блокировка каскадно распространяется
// на зависимые шаги через их собственные gating-проверки.
type Runner struct {
	registry *Registry
	logger   *slog.Logger
	newRunID func() string
}

// Config — конфигурация Runner.
type Config struct {
	// Registry — реестр executor'ов (опционально;
	// если nil — используется NewRegistry()).
	Registry *Registry

	// Logger — логгер (опционально; если nil — slog.Default()).
	Logger *slog.Logger

	// NewRunID — генератор идентификаторов run (опционально;
	// если nil — uuid.NewString). Инжектируется для детерминизма в тестах.
	NewRunID func() string
}

// New создаёт новый Runner.
func New(cfg Config) *Runner {
	registry := cfg.Registry
	if registry == nil {
		registry = NewRegistry()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	newRunID := cfg.NewRunID
	if newRunID == nil {
		newRunID = uuid.NewString
	}

	return &Runner{
		registry: registry,
		logger:   logger,
		newRunID: newRunID,
	}
}

// Run выполняет flow и возвращает историю запуска.
//
// Посещает каждый узел DAG ровно один раз. Результат каждого шага
// записывается в RunHistory.StepResults; после обхода агрегированный
// статус — SUCCEEDED тогда и только тогда, когда ни один шаг не FAILED.
//
// Цикл сюда попасть не может: BuildDAG отклоняет циклические графы
// до того, как run начнётся.
func (r *Runner) Run(ctx context.Context, flow *domain.Flow, dag *engine.DAG) *domain.RunHistory {
	runID := r.newRunID()

	logger := telemetry.WithRunID(telemetry.WithFlowID(r.logger, flow.ID), runID)
	logger.Info("starting run", "steps", dag.Size())

	history := &domain.RunHistory{
		RunID:       runID,
		FlowID:      flow.ID,
		Status:      domain.RunStatusRunning,
		StepResults: make(map[string]*domain.StepResult, dag.Size()),
		StartedAt:   time.Now(),
	}

	// Обходим шаги в топологическом порядке:
	// каждая зависимость обработана раньше своих зависимых.
	for _, idx := range dag.Order {
		step := dag.Nodes[idx].Step
		stepLogger := telemetry.WithStepID(logger, step.ID)

		// Gating: не запускаем шаг, если хоть одна зависимость
		// не выполнилась успешно
		if !r.depsSucceeded(step, history.StepResults, stepLogger) {
			history.StepResults[step.ID] = &domain.StepResult{
				Status: domain.StepStatusFailed,
				Error:  BlockedReason,
			}
			telemetry.StepsTotal.WithLabelValues(telemetry.StepOutcomeBlocked).Inc()
			continue
		}

		history.StepResults[step.ID] = r.executeStep(ctx, step, stepLogger)
	}

	if history.HasFailures() {
		history.MarkFailed(runFailedReason)
	} else {
		history.MarkSucceeded()
	}
	telemetry.RunsTotal.WithLabelValues(string(history.Status)).Inc()

	logger.Info("run finished",
		"status", history.Status,
		"duration", history.Duration(),
	)

	return history
}

// depsSucceeded выполняет gating-проверку шага.
//
// Шаг блокируется, если какая-либо из его зависимостей:
//   - отсутствует в результатах (никогда не выполнялась — например,
//     неразрешённая ссылка depends_on)
//   - завершилась с FAILED
//
// Шаг с пустым depends_on проходит проверку тривиально.
// Проверяются все зависимости, чтобы каждая проблемная попала в лог.
func (r *Runner) depsSucceeded(step *domain.StepDef, results map[string]*domain.StepResult, logger *slog.Logger) bool {
	ok := true

	for _, depID := range step.DependsOn {
		depResult, exists := results[depID]
		if !exists {
			// Зависимость не имеет результата: ссылка на несуществующий
			// шаг, отброшенная при построении DAG
			logger.Warn("missing result for dependency", "depends_on", depID)
			ok = false
			continue
		}

		if !depResult.Succeeded() {
			logger.Warn("step blocked by failed dependency", "depends_on", depID)
			ok = false
		}
	}

	return ok
}

// executeStep вызывает executor для шага и оформляет результат.
func (r *Runner) executeStep(ctx context.Context, step *domain.StepDef, logger *slog.Logger) *domain.StepResult {
	logger.Info("running step", "kind", step.Kind)

	executor := r.registry.Get(step.Kind)

	started := time.Now()
	result, err := executor.Execute(ctx, step)
	elapsed := time.Since(started)

	// Инфраструктурная ошибка executor'а и логическая ошибка шага
	// для движка равнозначны: шаг FAILED с этой причиной
	reason := ""
	if err != nil {
		reason = err.Error()
	} else if result.Error != "" {
		reason = result.Error
	}

	if reason != "" {
		logger.Warn("step failed", "error", reason, "duration", elapsed)
		telemetry.StepsTotal.WithLabelValues(telemetry.StepOutcomeFailed).Inc()
		telemetry.StepDuration.Observe(elapsed.Seconds())

		return &domain.StepResult{
			Status:   domain.StepStatusFailed,
			Error:    reason,
			Duration: elapsed,
		}
	}

	logger.Info("step succeeded", "duration", elapsed)
	telemetry.StepsTotal.WithLabelValues(telemetry.StepOutcomeSucceeded).Inc()
	telemetry.StepDuration.Observe(elapsed.Seconds())

	return &domain.StepResult{
		Status:   domain.StepStatusSucceeded,
		Output:   result.Output,
		Duration: elapsed,
	}
}
