package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shaiso/Flowline/internal/domain"
	"github.com/shaiso/Flowline/internal/engine"
	"github.com/shaiso/Flowline/internal/runner"
)

// Scheduler выполняет один flow по расписанию.
//
// В отличие от разового запуска, scheduler живёт до отмены контекста:
// вычисляет следующее due-время, ждёт его и выполняет flow целиком.
// Ошибки шагов внутри run расписание не останавливают — следующий
// запуск планируется в любом случае. История запусков нигде
// не сохраняется: каждый due-тик порождает свежий независимый run.
type Scheduler struct {
	flow     *domain.Flow
	dag      *engine.DAG
	schedule *domain.Schedule
	runner   *runner.Runner
	logger   *slog.Logger

	// OnRun — необязательный хук, вызываемый после каждого run
	// (используется CLI для печати summary).
	OnRun func(history *domain.RunHistory)
}

// Config — конфигурация Scheduler.
type Config struct {
	Flow     *domain.Flow
	DAG      *engine.DAG
	Schedule *domain.Schedule
	Runner   *runner.Runner // опционально; если nil — runner.New(runner.Config{})
	Logger   *slog.Logger   // опционально; если nil — slog.Default()
}

// New создаёт новый Scheduler.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Schedule.IsCron() {
		if err := ValidateCronExpr(cfg.Schedule.CronExpr); err != nil {
			return nil, err
		}
	} else if !cfg.Schedule.IsInterval() {
		return nil, fmt.Errorf("schedule has neither cron expression nor interval")
	}

	r := cfg.Runner
	if r == nil {
		r = runner.New(runner.Config{})
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		flow:     cfg.Flow,
		dag:      cfg.DAG,
		schedule: cfg.Schedule,
		runner:   r,
		logger:   logger,
	}, nil
}

// Start запускает цикл расписания и блокируется до отмены контекста.
//
// На каждой итерации:
//  1. Вычисляет следующее due-время
//  2. Ждёт его (или отмены контекста)
//  3. Выполняет flow и логирует итог
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started",
		"flow_id", s.flow.ID,
		"cron", s.schedule.CronExpr,
		"interval", s.schedule.Interval,
	)

	for {
		nextDue, err := CalculateNextDue(s.schedule, time.Now())
		if err != nil {
			return fmt.Errorf("calculate next due: %w", err)
		}

		wait := time.Until(nextDue)
		s.logger.Debug("waiting for next run", "next_due_at", nextDue, "wait", wait)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-timer.C:
		}

		history := s.runner.Run(ctx, s.flow, s.dag)

		s.logger.Info("scheduled run completed",
			"run_id", history.RunID,
			"status", history.Status,
			"duration", history.Duration(),
		)

		if s.OnRun != nil {
			s.OnRun(history)
		}
	}
}
