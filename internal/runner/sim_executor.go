package runner

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shaiso/Flowline/internal/domain"
)

// KindFailTest — сентинельный kind для принудительного падения шага.
// Шаг с kind "fail_test" всегда завершается ошибкой "Simulated failure".
const KindFailTest = "fail_test"

// Границы случайной задержки SimExecutor по умолчанию.
const (
	defaultMinDelay = 100 * time.Millisecond
	defaultMaxDelay = 300 * time.Millisecond
)

// SimExecutor — имитация выполнения шага.
//
// Ждёт случайный короткий интервал и возвращает canned-результат:
//   - kind == "fail_test" → логическая ошибка "Simulated failure"
//   - любой другой kind   → "Simulated output of '<step_id>'"
//
// В настоящем executor'е здесь были бы вызовы внешних API,
// применение retry-политики и запись в историю запусков.
type SimExecutor struct {
	rng      *rand.Rand
	sleep    func(ctx context.Context, d time.Duration) error
	minDelay time.Duration
	maxDelay time.Duration
}

// SimConfig — конфигурация SimExecutor.
//
// Источник энтропии и функция ожидания инжектируются, чтобы тесты
// могли подставить детерминированные заглушки.
type SimConfig struct {
	// Rand — источник случайности для задержки.
	// Если nil, создаётся time-seeded источник.
	Rand *rand.Rand

	// Sleep — функция ожидания. Если nil, используется
	// context-aware ожидание через time.After.
	Sleep func(ctx context.Context, d time.Duration) error

	// MinDelay, MaxDelay — границы случайной задержки
	// (default: 100ms и 300ms).
	MinDelay time.Duration
	MaxDelay time.Duration
}

// NewSimExecutor создаёт SimExecutor.
func NewSimExecutor(cfg SimConfig) *SimExecutor {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	sleep := cfg.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	minDelay := cfg.MinDelay
	if minDelay <= 0 {
		minDelay = defaultMinDelay
	}

	maxDelay := cfg.MaxDelay
	if maxDelay <= minDelay {
		maxDelay = minDelay + defaultMaxDelay - defaultMinDelay
	}

	return &SimExecutor{
		rng:      rng,
		sleep:    sleep,
		minDelay: minDelay,
		maxDelay: maxDelay,
	}
}

// Execute имитирует выполнение шага.
func (e *SimExecutor) Execute(ctx context.Context, step *domain.StepDef) (*ExecutionResult, error) {
	// Имитация случайной задержки
	delay := e.minDelay + time.Duration(e.rng.Int63n(int64(e.maxDelay-e.minDelay)))
	if err := e.sleep(ctx, delay); err != nil {
		return nil, err
	}

	if step.Kind == KindFailTest {
		return &ExecutionResult{Error: "Simulated failure"}, nil
	}

	return &ExecutionResult{
		Output: fmt.Sprintf("Simulated output of '%s'", step.ID),
	}, nil
}

// sleepCtx — context-aware ожидание.
func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
