package domain

// RunStatus — статус выполнения run.
//
// Жизненный цикл:
//
//	RUNNING → SUCCEEDED
//	        ↘ FAILED
type RunStatus string

const (
	// RunStatusRunning — run в процессе выполнения.
	RunStatusRunning RunStatus = "RUNNING"

	// RunStatusSucceeded — все шаги завершились успешно.
	RunStatusSucceeded RunStatus = "SUCCEEDED"

	// RunStatusFailed — хотя бы один шаг завершился с ошибкой
	// (включая заблокированные шаги).
	RunStatusFailed RunStatus = "FAILED"
)

// IsTerminal возвращает true, если статус финальный (run завершён).
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusSucceeded, RunStatusFailed:
		return true
	default:
		return false
	}
}

// StepStatus — статус выполнения отдельного шага.
type StepStatus string

const (
	// StepStatusSucceeded — шаг успешно выполнен executor'ом.
	StepStatusSucceeded StepStatus = "SUCCEEDED"

	// StepStatusFailed — шаг завершился с ошибкой либо был заблокирован
	// упавшей зависимостью. Причина хранится в StepResult.Error.
	StepStatusFailed StepStatus = "FAILED"
)
