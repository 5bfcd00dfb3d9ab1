package runner

import (
	"context"

	"github.com/shaiso/Flowline/internal/domain"
)

// Executor — интерфейс выполнения одного шага.
//
// Единственная точка, где движок соприкасается с внешним миром:
// реализация может ходить по сети, ждать таймер, вызывать API.
// Runner вызывает Execute строго по одному шагу за раз.
type Executor interface {
	// Execute выполняет шаг и возвращает результат.
	// Реализация должна учитывать отмену через ctx.
	Execute(ctx context.Context, step *domain.StepDef) (*ExecutionResult, error)
}

// ExecutionResult — результат выполнения шага.
type ExecutionResult struct {
	// Output — выходные данные выполнения.
	Output string

	// Error — сообщение об ошибке (логическая ошибка выполнения).
	// Инфраструктурные ошибки возвращаются через error в Execute().
	Error string
}

// Registry — реестр executor'ов по kind шага.
//
// Kind для движка непрозрачен: если для kind не зарегистрирован
// отдельный executor, используется fallback. По умолчанию fallback —
// SimExecutor, который выполняет любой kind (кроме сентинеля
// "fail_test" — тот детерминированно падает).
type Registry struct {
	executors map[string]Executor
	fallback  Executor
}

// NewRegistry создаёт реестр с SimExecutor в качестве fallback.
func NewRegistry() *Registry {
	return &Registry{
		executors: make(map[string]Executor),
		fallback:  NewSimExecutor(SimConfig{}),
	}
}

// NewRegistryWithFallback создаёт реестр с заданным fallback executor'ом.
func NewRegistryWithFallback(fallback Executor) *Registry {
	return &Registry{
		executors: make(map[string]Executor),
		fallback:  fallback,
	}
}

// Register добавляет executor для kind шага.
func (r *Registry) Register(kind string, executor Executor) {
	r.executors[kind] = executor
}

// Get возвращает executor для kind шага.
// Если отдельный executor не зарегистрирован, возвращает fallback.
func (r *Registry) Get(kind string) Executor {
	if executor, ok := r.executors[kind]; ok {
		return executor
	}
	return r.fallback
}
