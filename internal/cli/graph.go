package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaiso/Flowline/internal/engine"
)

// NewGraphCmd создаёт команду вывода структуры DAG.
//
// Показывает каждый узел с его разрешёнными зависимостями и зависимыми.
// Ссылки depends_on на несуществующие шаги в граф не попадают —
// о них пишется предупреждение при построении.
func NewGraphCmd(outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "graph FLOW_FILE",
		Short: "Show the dependency graph of a flow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			flow, dag, err := engine.LoadFlow(args[0])
			if err != nil {
				return err
			}

			headers := []string{"STEP", "KIND", "DEPENDS_ON", "DEPENDENTS"}
			rows := make([][]string, 0, dag.Size())

			type nodeJSON struct {
				ID         string   `json:"id"`
				Kind       string   `json:"kind"`
				DependsOn  []string `json:"depends_on,omitempty"`
				Dependents []string `json:"dependents,omitempty"`
			}
			nodes := make([]nodeJSON, 0, dag.Size())

			for _, node := range dag.Nodes {
				deps := nodeIDs(dag, node.DependsOn)
				dependents := nodeIDs(dag, node.Dependents)

				rows = append(rows, []string{
					node.ID(),
					node.Step.Kind,
					strings.Join(deps, ","),
					strings.Join(dependents, ","),
				})
				nodes = append(nodes, nodeJSON{
					ID:         node.ID(),
					Kind:       node.Step.Kind,
					DependsOn:  deps,
					Dependents: dependents,
				})
			}

			out.Success("Flow '" + flow.ID + "': " + strconv.Itoa(dag.Size()) +
				" nodes, " + strconv.Itoa(len(dag.Edges())) + " edges")
			out.Print(headers, rows, nodes)
			return nil
		},
	}
}

// nodeIDs переводит индексы узлов в ID шагов.
func nodeIDs(dag *engine.DAG, indices []int) []string {
	ids := make([]string, 0, len(indices))
	for _, idx := range indices {
		ids = append(ids, dag.Nodes[idx].ID())
	}
	return ids
}
