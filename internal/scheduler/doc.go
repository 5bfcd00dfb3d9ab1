// Package scheduler реализует повторный запуск flow по расписанию.
//
// Включает:
//   - cron.go      — парсинг cron-выражений и вычисление next due
//   - scheduler.go — цикл ожидания и запуска flow
//
// Расписание задаётся cron-выражением (5 полей) или фиксированным
// интервалом. Состояние живёт только в памяти процесса.
package scheduler
