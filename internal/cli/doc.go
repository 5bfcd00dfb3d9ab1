// Package cli реализует команды инструмента flowline.
//
// # Обзор
//
// CLI загружает определение flow из локального YAML-файла и работает
// с ним напрямую, без сетевого слоя: run выполняет flow один раз,
// validate и graph инспектируют его без выполнения, schedule
// запускает повторно по расписанию.
//
// # Ключевые компоненты
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.Encoder) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: flowline run flow.yml --json | jq .
//
// ## Commands
//
// Каждая команда создаётся через фабричную функцию (NewRunCmd и т.д.),
// принимающую outputFn — замыкание для ленивого создания Output
// после парсинга PersistentFlags.
//
// # Коды возврата
//
// Фатальные ошибки (файл не читается, YAML невалиден, цикл в графе)
// завершают процесс с ненулевым кодом. Упавшие или заблокированные шаги
// внутри run кодом возврата не считаются: процесс завершается с 0,
// а их статус виден в summary.
package cli
