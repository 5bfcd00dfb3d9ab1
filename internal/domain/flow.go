package domain

// Flow — определение рабочего процесса, загруженное из YAML-файла.
//
// Flow — это декларативный "рецепт": плоский список шагов с указанием
// зависимостей между ними. Из него engine строит DAG, а runner выполняет
// шаги в топологическом порядке.
type Flow struct {
	// ID — уникальный идентификатор flow (в рамках одного запуска CLI).
	ID string `yaml:"id" json:"id"`

	// Description — человекочитаемое описание. Функционально не используется.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Steps — упорядоченный список шагов. В YAML поле называется "nodes".
	Steps []StepDef `yaml:"nodes" json:"nodes"`
}

// StepDef — определение шага в flow.
type StepDef struct {
	// ID — уникальный идентификатор шага в рамках flow.
	// Используется в depends_on и как ключ в результатах run.
	ID string `yaml:"id" json:"id"`

	// Kind — тип обработчика шага (например, "http_get", "db_upsert").
	// Для engine это непрозрачная строка: какой executor её обслуживает,
	// решает реестр в runner.
	Kind string `yaml:"kind" json:"kind"`

	// DependsOn — список ID шагов, от которых зависит этот шаг.
	// Шаг выполняется только если все зависимости завершились успешно.
	DependsOn []string `yaml:"depends_on,omitempty" json:"depends_on,omitempty"`

	// Config — конфигурация шага. Engine передаёт её executor'у
	// без интерпретации.
	Config map[string]any `yaml:"config,omitempty" json:"config,omitempty"`

	// Retry — политика повторных попыток.
	// Парсится и валидируется, но текущий runner её не применяет.
	Retry *RetryPolicy `yaml:"retry,omitempty" json:"retry,omitempty"`

	// IdempotencyKey — ключ идемпотентности для безопасных повторов.
	// Парсится, но не используется.
	IdempotencyKey string `yaml:"idempotency_key,omitempty" json:"idempotency_key,omitempty"`

	// Compensation — обработчик отката для этого шага.
	// Парсится, но runner его не вызывает.
	Compensation *Compensation `yaml:"compensation,omitempty" json:"compensation,omitempty"`
}

// RetryPolicy — политика повторных попыток шага.
type RetryPolicy struct {
	// MaxAttempts — максимальное количество попыток (включая первую).
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts"`

	// BackoffSeconds — задержка между попытками в секундах.
	// По умолчанию: 5 (подставляется при загрузке).
	BackoffSeconds int `yaml:"backoff_seconds,omitempty" json:"backoff_seconds,omitempty"`
}

// DefaultBackoffSeconds — задержка retry по умолчанию.
const DefaultBackoffSeconds = 5

// Compensation — определение компенсирующего шага (rollback).
type Compensation struct {
	// Kind — тип обработчика для компенсации.
	Kind string `yaml:"kind" json:"kind"`

	// Config — конфигурация компенсирующего обработчика.
	Config map[string]any `yaml:"config,omitempty" json:"config,omitempty"`
}
