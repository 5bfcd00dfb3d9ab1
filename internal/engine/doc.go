// Package engine отвечает за загрузку и структурный анализ flow.
//
// Включает:
//   - loader.go   — чтение и парсинг YAML-определения flow
//   - validate.go — валидация спецификации (уникальность ID, retry и т.д.)
//   - dag.go      — построение и топологическая сортировка DAG
//
// Engine отвечает за понимание структуры flow и определение
// порядка выполнения шагов на основе их зависимостей.
// Само выполнение шагов — зона ответственности пакета runner.
package engine
