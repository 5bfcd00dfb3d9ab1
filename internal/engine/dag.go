package engine

import (
	"log/slog"

	"github.com/shaiso/Flowline/internal/domain"
)

// Node — узел в DAG. Узлы адресуются индексами в DAG.Nodes,
// рёбра хранятся как пары индексов, поэтому структура не содержит
// взаимных указателей и дёшево копируется.
type Node struct {
	// Step — определение шага из flow.
	Step *domain.StepDef

	// Index — позиция узла в DAG.Nodes (совпадает с порядком объявления).
	Index int

	// InDegree — количество входящих рёбер (разрешённых зависимостей).
	InDegree int

	// DependsOn — индексы узлов, от которых зависит этот узел.
	DependsOn []int

	// Dependents — индексы узлов, которые зависят от этого узла.
	Dependents []int
}

// ID возвращает идентификатор шага узла.
func (n *Node) ID() string {
	return n.Step.ID
}

// DAG — направленный ациклический граф шагов flow.
// Строится один раз на flow и после этого не мутируется.
type DAG struct {
	// FlowID — идентификатор flow, из которого построен граф.
	FlowID string

	// Nodes — все узлы графа в порядке объявления шагов.
	Nodes []*Node

	// Order — индексы узлов в топологическом порядке:
	// каждая зависимость идёт раньше своих зависимых.
	Order []int

	index map[string]int // stepID → индекс узла
}

// BuildDAG строит DAG из flow.
//
// Два прохода: сначала создаются все узлы (по одному на объявленный шаг),
// затем добавляются рёбра dependency → dependent. Если depends_on ссылается
// на несуществующий шаг, ребро не добавляется и пишется предупреждение —
// зависимый шаг при выполнении заблокируется естественным образом, потому
// что результат отсутствующей зависимости никогда не появится.
//
// После построения рёбер выполняется топологическая сортировка.
// Если граф содержит цикл, возвращается CycleError с именем одного
// из участвующих в цикле шагов, и DAG не возвращается.
func BuildDAG(flow *domain.Flow) (*DAG, error) {
	dag := &DAG{
		FlowID: flow.ID,
		Nodes:  make([]*Node, 0, len(flow.Steps)),
		index:  make(map[string]int, len(flow.Steps)),
	}

	// Первый проход: создаём все узлы
	for i := range flow.Steps {
		step := &flow.Steps[i]

		node := &Node{
			Step:  step,
			Index: i,
		}
		dag.Nodes = append(dag.Nodes, node)
		dag.index[step.ID] = i
	}

	// Второй проход: связываем узлы по зависимостям
	for _, node := range dag.Nodes {
		for _, depID := range node.Step.DependsOn {
			depIdx, exists := dag.index[depID]
			if !exists {
				slog.Warn("step depends on unknown step, dependency ignored",
					"flow_id", flow.ID,
					"step_id", node.ID(),
					"depends_on", depID,
				)
				continue
			}

			dag.addEdge(depIdx, node.Index)
		}
	}

	// Проверяем на циклы и строим топологический порядок
	order, err := dag.topologicalSort()
	if err != nil {
		return nil, err
	}
	dag.Order = order

	return dag, nil
}

// addEdge добавляет ребро from → to (from должен выполниться раньше to).
// Дубликаты рёбер игнорируются, чтобы не искажать InDegree.
func (d *DAG) addEdge(from, to int) {
	for _, dep := range d.Nodes[to].DependsOn {
		if dep == from {
			return // уже связаны
		}
	}
	d.Nodes[from].Dependents = append(d.Nodes[from].Dependents, to)
	d.Nodes[to].DependsOn = append(d.Nodes[to].DependsOn, from)
	d.Nodes[to].InDegree++
}

// topologicalSort выполняет топологическую сортировку (алгоритм Кана).
//
// Очередь обрабатывается в порядке объявления шагов, поэтому результат
// детерминирован для одного и того же flow-файла.
// Возвращает CycleError, если обнаружен цикл.
func (d *DAG) topologicalSort() ([]int, error) {
	// Копируем inDegree, чтобы не модифицировать узлы
	inDegree := make([]int, len(d.Nodes))
	for i, node := range d.Nodes {
		inDegree[i] = node.InDegree
	}

	// Очередь узлов с inDegree = 0, в порядке объявления
	queue := make([]int, 0, len(d.Nodes))
	for i := range d.Nodes {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]int, 0, len(d.Nodes))

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		order = append(order, idx)

		for _, dependent := range d.Nodes[idx].Dependents {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	// Если не все узлы обработаны — есть цикл
	if len(order) != len(d.Nodes) {
		cycleIdx := d.findCycleNode(inDegree)
		return nil, &CycleError{FlowID: d.FlowID, StepID: d.Nodes[cycleIdx].ID()}
	}

	return order, nil
}

// findCycleNode находит узел, лежащий на цикле.
//
// Остаточные узлы (inDegree > 0 после сортировки) — это участники циклов
// и их транзитивные зависимые. Узел, который лишь зависит от цикла,
// называть в ошибке нельзя, поэтому от первого остаточного узла идём
// по зависимостям внутри остаточного множества: у каждого остаточного
// узла есть хотя бы одна остаточная зависимость, значит обход
// зацикливается, и первый повторившийся узел лежит на цикле.
func (d *DAG) findCycleNode(inDegree []int) int {
	cur := -1
	for i := range d.Nodes {
		if inDegree[i] > 0 {
			cur = i
			break
		}
	}

	visited := make(map[int]bool)
	for !visited[cur] {
		visited[cur] = true
		for _, dep := range d.Nodes[cur].DependsOn {
			if inDegree[dep] > 0 {
				cur = dep
				break
			}
		}
	}

	return cur
}

// GetNode возвращает узел по ID шага, nil если такого шага нет.
func (d *DAG) GetNode(id string) *Node {
	idx, ok := d.index[id]
	if !ok {
		return nil
	}
	return d.Nodes[idx]
}

// Size возвращает количество узлов в DAG.
func (d *DAG) Size() int {
	return len(d.Nodes)
}

// RootNodes возвращает узлы без разрешённых зависимостей (точки входа).
func (d *DAG) RootNodes() []*Node {
	roots := make([]*Node, 0)
	for _, node := range d.Nodes {
		if node.InDegree == 0 {
			roots = append(roots, node)
		}
	}
	return roots
}

// Edges возвращает все рёбра графа как пары индексов
// [зависимость, зависимый] в порядке объявления зависимых шагов.
func (d *DAG) Edges() [][2]int {
	edges := make([][2]int, 0)
	for _, node := range d.Nodes {
		for _, dep := range node.DependsOn {
			edges = append(edges, [2]int{dep, node.Index})
		}
	}
	return edges
}
