package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shaiso/Flowline/internal/domain"
)

// LoadFlow загружает определение flow из YAML-файла и строит DAG.
//
// Последовательность:
//  1. Чтение файла (ошибка ввода-вывода — фатальная)
//  2. Парсинг YAML в domain.Flow (ошибка схемы — фатальная)
//  3. Валидация (уникальность ID, корректность retry и т.д.)
//  4. Построение DAG с проверкой ацикличности
//
// Неразрешимые depends_on не считаются фатальными: BuildDAG логирует
// предупреждение, а зависимый шаг гарантированно блокируется при выполнении.
func LoadFlow(path string) (*domain.Flow, *DAG, error) {
	flow, err := ParseFlowFile(path)
	if err != nil {
		return nil, nil, err
	}

	dag, err := BuildDAG(flow)
	if err != nil {
		return nil, nil, err
	}

	return flow, dag, nil
}

// ParseFlowFile читает и парсит YAML-файл в domain.Flow без построения DAG.
func ParseFlowFile(path string) (*domain.Flow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read flow definition %s: %w", path, err)
	}

	return ParseFlow(data)
}

// ParseFlow парсит YAML-содержимое в domain.Flow.
//
// После парсинга подставляет значения по умолчанию
// (retry.backoff_seconds = 5) и выполняет валидацию.
func ParseFlow(data []byte) (*domain.Flow, error) {
	var flow domain.Flow
	if err := yaml.Unmarshal(data, &flow); err != nil {
		return nil, fmt.Errorf("parse flow definition: %w", err)
	}

	applyDefaults(&flow)

	if err := Validate(&flow); err != nil {
		return nil, err
	}

	return &flow, nil
}

// applyDefaults подставляет значения по умолчанию в спецификацию.
func applyDefaults(flow *domain.Flow) {
	for i := range flow.Steps {
		step := &flow.Steps[i]

		if step.Retry != nil && step.Retry.BackoffSeconds == 0 {
			step.Retry.BackoffSeconds = domain.DefaultBackoffSeconds
		}
	}
}
