package domain

import "time"

// RunHistory — итог одного выполнения flow.
//
// Создаётся runner'ом в начале run, заполняется по ходу обхода DAG
// и после возврата из Run() больше не мутируется. Не переживает процесс:
// история запусков никуда не сохраняется.
type RunHistory struct {
	// RunID — уникальный идентификатор run (UUID, генерируется заново
	// для каждого выполнения).
	RunID string `json:"run_id"`

	// FlowID — идентификатор выполненного flow.
	FlowID string `json:"flow_id"`

	// Status — агрегированный статус run.
	// SUCCEEDED тогда и только тогда, когда ни один шаг не FAILED.
	Status RunStatus `json:"status"`

	// Error — причина, если run завершился с FAILED.
	Error string `json:"error,omitempty"`

	// StepResults — результат каждого шага (stepID → StepResult).
	// Для flow из N шагов содержит ровно N записей.
	StepResults map[string]*StepResult `json:"step_results"`

	// StartedAt — время начала выполнения.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt — время завершения. Нулевое, пока run не завершён.
	FinishedAt time.Time `json:"finished_at,omitzero"`
}

// Duration возвращает продолжительность выполнения.
// Возвращает 0, если run ещё не завершён.
func (r *RunHistory) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// MarkSucceeded переводит run в статус SUCCEEDED.
func (r *RunHistory) MarkSucceeded() {
	r.Status = RunStatusSucceeded
	r.FinishedAt = time.Now()
}

// MarkFailed переводит run в статус FAILED с причиной.
func (r *RunHistory) MarkFailed(reason string) {
	r.Status = RunStatusFailed
	r.Error = reason
	r.FinishedAt = time.Now()
}

// HasFailures возвращает true, если хотя бы один шаг FAILED.
func (r *RunHistory) HasFailures() bool {
	for _, res := range r.StepResults {
		if res.Status == StepStatusFailed {
			return true
		}
	}
	return false
}

// StepResult — результат выполнения одного шага.
type StepResult struct {
	// Status — исход шага.
	Status StepStatus `json:"status"`

	// Output — выходные данные шага. Заполняется только при SUCCEEDED.
	Output string `json:"output,omitempty"`

	// Error — причина, если шаг FAILED (ошибка executor'а
	// или блокировка зависимостью).
	Error string `json:"error,omitempty"`

	// Duration — время выполнения шага.
	// Для заблокированных шагов равно 0: executor не вызывался.
	Duration time.Duration `json:"duration_ns,omitempty"`
}

// Succeeded возвращает true, если шаг выполнен успешно.
func (sr *StepResult) Succeeded() bool {
	return sr.Status == StepStatusSucceeded
}
