// Flowline — исполнитель декларативных DAG-flow.
//
// Загружает YAML-определение flow, строит граф зависимостей шагов
// и выполняет шаги в топологическом порядке.
//
// Использование:
//
//	flowline [--json] <command> [flags]
//
// Команды:
//
//	run       Выполнить flow один раз
//	validate  Проверить определение flow без выполнения
//	graph     Показать граф зависимостей
//	schedule  Выполнять flow по расписанию
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shaiso/Flowline/internal/cli"
	"github.com/shaiso/Flowline/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	// Инициализируем structured logging (в stderr)
	logger := telemetry.SetupLogger()

	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "flowline",
		Short:         "Flowline — dependency-gated DAG flow runner",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewRunCmd(outputFn),
		cli.NewValidateCmd(outputFn),
		cli.NewGraphCmd(outputFn),
		cli.NewScheduleCmd(outputFn),
	)

	// Отмена контекста по сигналу: разовые команды его игнорируют,
	// schedule использует для остановки
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = telemetry.WithLogger(ctx, logger)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
