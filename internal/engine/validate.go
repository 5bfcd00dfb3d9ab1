package engine

import (
	"fmt"

	"github.com/shaiso/Flowline/internal/domain"
)

// Validate выполняет полную валидацию flow.
//
// Проверяет:
// - Наличие ID flow
// - Наличие шагов
// - Уникальность ID шагов
// - Непустые kind
// - Отсутствие self-dependency
// - Корректность retry-политик
//
// Ссылки depends_on на несуществующие шаги здесь не проверяются:
// это нефатальная ситуация, её обрабатывает BuildDAG.
// Ацикличность проверяется при построении DAG.
func Validate(flow *domain.Flow) error {
	if flow == nil || flow.ID == "" {
		return ErrEmptyFlowID
	}

	if len(flow.Steps) == 0 {
		return ErrEmptySteps
	}

	// Собираем все ID шагов, попутно проверяя уникальность
	stepIDs := make(map[string]bool, len(flow.Steps))

	for i := range flow.Steps {
		step := &flow.Steps[i]

		if err := ValidateStep(step, stepIDs); err != nil {
			return err
		}
	}

	return nil
}

// ValidateStep валидирует один шаг.
// stepIDs — уже встреченные ID шагов (для проверки уникальности).
func ValidateStep(step *domain.StepDef, stepIDs map[string]bool) error {
	// Проверка ID
	if step.ID == "" {
		return NewValidationError("", "id", "step has empty ID", ErrEmptyStepID)
	}

	// Проверка уникальности ID
	if stepIDs[step.ID] {
		return NewValidationError(step.ID, "id",
			fmt.Sprintf("duplicate step ID: %s", step.ID), ErrDuplicateStepID)
	}
	stepIDs[step.ID] = true

	// Проверка kind
	if step.Kind == "" {
		return NewValidationError(step.ID, "kind",
			"step has empty kind", ErrEmptyStepKind)
	}

	// Проверка self-dependency
	for _, dep := range step.DependsOn {
		if dep == step.ID {
			return NewValidationError(step.ID, "depends_on",
				"step depends on itself", ErrSelfDependency)
		}
	}

	// Проверка retry-политики
	if step.Retry != nil && step.Retry.MaxAttempts < 1 {
		return NewValidationError(step.ID, "retry",
			fmt.Sprintf("retry.max_attempts must be >= 1, got %d", step.Retry.MaxAttempts),
			ErrInvalidRetry)
	}

	return nil
}
