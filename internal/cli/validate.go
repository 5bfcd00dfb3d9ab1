package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaiso/Flowline/internal/engine"
)

// NewValidateCmd создаёт команду проверки flow без выполнения.
//
// Загружает определение, валидирует его и строит DAG.
// Выполнение шагов не запускается.
func NewValidateCmd(outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FLOW_FILE",
		Short: "Validate a flow definition without executing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			flow, dag, err := engine.LoadFlow(args[0])
			if err != nil {
				return err
			}

			out.Success("Flow '" + flow.ID + "' is valid")

			out.Print(
				[]string{"FLOW", "STEPS", "EXECUTION_ORDER"},
				[][]string{{
					flow.ID,
					strconv.Itoa(dag.Size()),
					strings.Join(topologicalStepIDs(dag), " -> "),
				}},
				map[string]any{
					"flow_id":         flow.ID,
					"steps":           dag.Size(),
					"execution_order": topologicalStepIDs(dag),
				},
			)
			return nil
		},
	}
}
