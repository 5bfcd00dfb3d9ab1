package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/shaiso/Flowline/internal/domain"
	"github.com/shaiso/Flowline/internal/engine"
	"github.com/shaiso/Flowline/internal/scheduler"
	"github.com/shaiso/Flowline/internal/telemetry"
)

// NewScheduleCmd создаёт команду повторного запуска flow по расписанию.
//
// Работает до SIGINT/SIGTERM. С флагом --listen поднимает HTTP endpoint
// с /healthz и Prometheus /metrics.
func NewScheduleCmd(outputFn func() *Output) *cobra.Command {
	var cronExpr string
	var every time.Duration
	var timezone string
	var listen string

	cmd := &cobra.Command{
		Use:   "schedule FLOW_FILE",
		Short: "Execute a flow repeatedly on a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			if cronExpr == "" && every <= 0 {
				return fmt.Errorf("either --cron or --every is required")
			}

			flow, dag, err := engine.LoadFlow(args[0])
			if err != nil {
				return err
			}

			sched, err := scheduler.New(scheduler.Config{
				Flow: flow,
				DAG:  dag,
				Schedule: &domain.Schedule{
					CronExpr: cronExpr,
					Interval: every,
					Timezone: timezone,
				},
				Logger: telemetry.FromContext(cmd.Context()),
			})
			if err != nil {
				return err
			}

			sched.OnRun = func(history *domain.RunHistory) {
				out.RunSummary(history, topologicalStepIDs(dag))
			}

			if listen != "" {
				go serveMetrics(cmd.Context(), listen)
			}

			out.Success("Scheduling flow '" + flow.ID + "', press Ctrl+C to stop")

			// Отмена контекста по сигналу — штатная остановка
			if err := sched.Start(cmd.Context()); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cronExpr, "cron", "", "Cron expression (5 fields, e.g. \"*/5 * * * *\")")
	cmd.Flags().DurationVar(&every, "every", 0, "Fixed interval between runs (e.g. 30s, 5m)")
	cmd.Flags().StringVar(&timezone, "timezone", "UTC", "Timezone for cron evaluation")
	cmd.Flags().StringVar(&listen, "listen", "", "Address for /healthz and /metrics (e.g. :9090)")

	return cmd
}

// serveMetrics поднимает HTTP endpoint с healthz и метриками.
func serveMetrics(ctx context.Context, addr string) {
	logger := telemetry.FromContext(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics endpoint listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics endpoint error", "error", err)
	}
}
