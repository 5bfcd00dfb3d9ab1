// Package runner выполняет шаги flow в топологическом порядке.
//
// Включает:
//   - runner.go       — обход DAG с gating-проверкой зависимостей
//   - executor.go     — интерфейс Executor и реестр по kind
//   - sim_executor.go — имитация выполнения шага (задержка + canned output)
//
// Runner получает уже валидированный DAG от пакета engine и не может
// встретить цикл. Падение шага не прерывает run: результат записывается,
// а зависимые шаги блокируются своими gating-проверками.
package runner
