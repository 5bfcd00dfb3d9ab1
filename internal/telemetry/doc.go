// Package telemetry обеспечивает наблюдаемость системы.
//
// Включает:
//   - logging.go — structured logging через slog (в stderr)
//   - metrics.go — Prometheus метрики runs и шагов
//
// Все компоненты используют единый формат логирования;
// метрики экспортируются на /metrics endpoint в режиме schedule.
package telemetry
