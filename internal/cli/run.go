package cli

import (
	"github.com/spf13/cobra"

	"github.com/shaiso/Flowline/internal/engine"
	"github.com/shaiso/Flowline/internal/runner"
)

// NewRunCmd создаёт команду разового запуска flow.
//
// Граница по кодам возврата:
//   - ошибки загрузки/парсинга/валидации/цикла → ошибка команды, exit 1
//   - упавшие или заблокированные шаги → summary и exit 0
//
// Падение шагов — это штатный результат run, а не ошибка инструмента.
func NewRunCmd(outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "run FLOW_FILE",
		Short: "Load and execute a flow definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			flow, dag, err := engine.LoadFlow(args[0])
			if err != nil {
				return err
			}

			out.Success("Loaded flow '" + flow.ID + "'")

			r := runner.New(runner.Config{})
			history := r.Run(cmd.Context(), flow, dag)

			out.RunSummary(history, topologicalStepIDs(dag))
			return nil
		},
	}
}

// topologicalStepIDs возвращает ID шагов в порядке выполнения.
func topologicalStepIDs(dag *engine.DAG) []string {
	ids := make([]string, 0, len(dag.Order))
	for _, idx := range dag.Order {
		ids = append(ids, dag.Nodes[idx].ID())
	}
	return ids
}
