package domain

import "time"

// Schedule — расписание повторного запуска flow.
//
// Schedule позволяет запускать flow:
// - По cron-выражению: "0 9 * * *" (каждый день в 9:00)
// - По интервалу: каждые N секунд
//
// Расписание живёт только в памяти процесса: scheduler вычисляет
// следующее время запуска и выполняет flow, когда оно наступает.
type Schedule struct {
	// CronExpr — cron-выражение.
	// Формат: "минуты часы дни месяцы дни_недели"
	// Примеры:
	//   "0 9 * * *"     — каждый день в 9:00
	//   "*/5 * * * *"   — каждые 5 минут
	// Если задан CronExpr, Interval игнорируется.
	CronExpr string

	// Interval — интервал между запусками.
	// Используется если CronExpr не задан.
	Interval time.Duration

	// Timezone — часовой пояс для вычисления времени по cron.
	// По умолчанию: "UTC". Примеры: "Europe/Moscow", "America/New_York".
	Timezone string
}

// IsCron возвращает true, если расписание использует cron-выражение.
func (s *Schedule) IsCron() bool {
	return s.CronExpr != ""
}

// IsInterval возвращает true, если расписание использует интервал.
func (s *Schedule) IsInterval() bool {
	return s.CronExpr == "" && s.Interval > 0
}
