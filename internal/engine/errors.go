package engine

import (
	"errors"
	"fmt"
)

// Ошибки загрузки и валидации flow.
var (
	// ErrEmptyFlowID — flow не имеет ID.
	ErrEmptyFlowID = errors.New("flow has empty ID")

	// ErrEmptySteps — flow не содержит шагов.
	ErrEmptySteps = errors.New("flow has no steps")

	// ErrEmptyStepID — шаг не имеет ID.
	ErrEmptyStepID = errors.New("step has empty ID")

	// ErrDuplicateStepID — несколько шагов с одинаковым ID.
	ErrDuplicateStepID = errors.New("duplicate step ID")

	// ErrEmptyStepKind — шаг не имеет kind.
	ErrEmptyStepKind = errors.New("step has empty kind")

	// ErrSelfDependency — шаг зависит от самого себя.
	ErrSelfDependency = errors.New("step depends on itself")

	// ErrInvalidRetry — некорректная политика retry.
	ErrInvalidRetry = errors.New("invalid retry policy")

	// ErrCyclicDependency — обнаружен цикл в зависимостях.
	ErrCyclicDependency = errors.New("cyclic dependency detected")
)

// ValidationError — ошибка валидации с контекстом.
type ValidationError struct {
	StepID  string // ID шага, где произошла ошибка
	Field   string // поле, вызвавшее ошибку
	Message string // описание ошибки
	Err     error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	if e.StepID != "" {
		return "step " + e.StepID + ": " + e.Message
	}
	return e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError создаёт новую ошибку валидации.
func NewValidationError(stepID, field, message string, err error) *ValidationError {
	return &ValidationError{
		StepID:  stepID,
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// CycleError — ошибка построения DAG: граф зависимостей содержит цикл.
// Называет один из шагов, участвующих в цикле.
type CycleError struct {
	FlowID string // ID flow, в котором найден цикл
	StepID string // шаг, участвующий в цикле
}

// Error реализует интерфейс error.
func (e *CycleError) Error() string {
	return fmt.Sprintf("flow %q contains a cycle at step %q", e.FlowID, e.StepID)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrCyclicDependency).
func (e *CycleError) Unwrap() error {
	return ErrCyclicDependency
}
