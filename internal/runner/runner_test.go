package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/shaiso/Flowline/internal/domain"
	"github.com/shaiso/Flowline/internal/engine"
)

// fakeExecutor записывает вызовы и падает на kind "fail_test".
// Выполнение мгновенное: задержек в тестах нет.
type fakeExecutor struct {
	calls []string
}

func (f *fakeExecutor) Execute(_ context.Context, step *domain.StepDef) (*ExecutionResult, error) {
	f.calls = append(f.calls, step.ID)

	if step.Kind == KindFailTest {
		return &ExecutionResult{Error: "Simulated failure"}, nil
	}
	return &ExecutionResult{Output: "output of " + step.ID}, nil
}

func newTestRunner(fake *fakeExecutor) *Runner {
	seq := 0
	return New(Config{
		Registry: NewRegistryWithFallback(fake),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		NewRunID: func() string {
			seq++
			return fmt.Sprintf("run-%d", seq)
		},
	})
}

func mustBuildDAG(t *testing.T, flow *domain.Flow) *engine.DAG {
	t.Helper()
	dag, err := engine.BuildDAG(flow)
	if err != nil {
		t.Fatalf("build DAG: %v", err)
	}
	return dag
}

func TestRun_LinearSuccess(t *testing.T) {
	// Сценарий: цепочка a → b → c, все noop
	flow := &domain.Flow{
		ID: "linear",
		Steps: []domain.StepDef{
			{ID: "a", Kind: "noop"},
			{ID: "b", Kind: "noop", DependsOn: []string{"a"}},
			{ID: "c", Kind: "noop", DependsOn: []string{"b"}},
		},
	}
	dag := mustBuildDAG(t, flow)

	fake := &fakeExecutor{}
	history := newTestRunner(fake).Run(context.Background(), flow, dag)

	if history.Status != domain.RunStatusSucceeded {
		t.Errorf("expected SUCCEEDED, got %s (%s)", history.Status, history.Error)
	}
	if len(history.StepResults) != 3 {
		t.Fatalf("expected 3 results, got %d", len(history.StepResults))
	}
	for id, result := range history.StepResults {
		if result.Status != domain.StepStatusSucceeded {
			t.Errorf("step %s: expected SUCCEEDED, got %s", id, result.Status)
		}
		if result.Output == "" {
			t.Errorf("step %s: output should be present on success", id)
		}
	}

	// Каждый шаг вызван ровно один раз, в порядке зависимостей
	if len(fake.calls) != 3 {
		t.Fatalf("expected 3 executor calls, got %d", len(fake.calls))
	}
	if fake.calls[0] != "a" || fake.calls[1] != "b" || fake.calls[2] != "c" {
		t.Errorf("expected call order [a b c], got %v", fake.calls)
	}
}

func TestRun_FailureCascade(t *testing.T) {
	// Сценарий: a падает, b зависит от a, c зависит от b.
	// b и c должны быть заблокированы, executor для них не вызывается.
	flow := &domain.Flow{
		ID: "cascade",
		Steps: []domain.StepDef{
			{ID: "a", Kind: KindFailTest},
			{ID: "b", Kind: "noop", DependsOn: []string{"a"}},
			{ID: "c", Kind: "noop", DependsOn: []string{"b"}},
		},
	}
	dag := mustBuildDAG(t, flow)

	fake := &fakeExecutor{}
	history := newTestRunner(fake).Run(context.Background(), flow, dag)

	if history.Status != domain.RunStatusFailed {
		t.Errorf("expected FAILED, got %s", history.Status)
	}
	if history.Error != "At least one step failed" {
		t.Errorf("unexpected run error: %q", history.Error)
	}

	a := history.StepResults["a"]
	if a.Status != domain.StepStatusFailed || a.Error != "Simulated failure" {
		t.Errorf("step a: expected execution failure, got %+v", a)
	}

	for _, id := range []string{"b", "c"} {
		result := history.StepResults[id]
		if result.Status != domain.StepStatusFailed {
			t.Errorf("step %s: expected FAILED, got %s", id, result.Status)
		}
		if result.Error != BlockedReason {
			t.Errorf("step %s: expected blocked reason, got %q", id, result.Error)
		}
		if result.Output != "" {
			t.Errorf("step %s: blocked step should have no output", id)
		}
	}

	// Executor вызывался только для a
	if len(fake.calls) != 1 || fake.calls[0] != "a" {
		t.Errorf("executor should be called only for a, got %v", fake.calls)
	}
}

func TestRun_DiamondMerge(t *testing.T) {
	// Сценарий: a → {b1, b2} → c — независимые ветки сходятся в c
	flow := &domain.Flow{
		ID: "diamond",
		Steps: []domain.StepDef{
			{ID: "a", Kind: "noop"},
			{ID: "b1", Kind: "noop", DependsOn: []string{"a"}},
			{ID: "b2", Kind: "noop", DependsOn: []string{"a"}},
			{ID: "c", Kind: "noop", DependsOn: []string{"b1", "b2"}},
		},
	}
	dag := mustBuildDAG(t, flow)

	fake := &fakeExecutor{}
	history := newTestRunner(fake).Run(context.Background(), flow, dag)

	if history.Status != domain.RunStatusSucceeded {
		t.Errorf("expected SUCCEEDED, got %s", history.Status)
	}
	if len(history.StepResults) != 4 {
		t.Fatalf("expected 4 results, got %d", len(history.StepResults))
	}
	for id, result := range history.StepResults {
		if result.Status != domain.StepStatusSucceeded {
			t.Errorf("step %s: expected SUCCEEDED, got %s", id, result.Status)
		}
	}
}

func TestRun_IndependentBranchSurvivesFailure(t *testing.T) {
	// Падение одной ветки не останавливает run:
	// независимый шаг должен выполниться
	flow := &domain.Flow{
		ID: "independent",
		Steps: []domain.StepDef{
			{ID: "doomed", Kind: KindFailTest},
			{ID: "dependent", Kind: "noop", DependsOn: []string{"doomed"}},
			{ID: "standalone", Kind: "noop"},
		},
	}
	dag := mustBuildDAG(t, flow)

	fake := &fakeExecutor{}
	history := newTestRunner(fake).Run(context.Background(), flow, dag)

	if history.Status != domain.RunStatusFailed {
		t.Errorf("expected FAILED, got %s", history.Status)
	}
	if history.StepResults["standalone"].Status != domain.StepStatusSucceeded {
		t.Error("standalone step should succeed despite unrelated failure")
	}
	if history.StepResults["dependent"].Error != BlockedReason {
		t.Error("dependent step should be blocked")
	}
}

func TestRun_UnknownDependencyBlocks(t *testing.T) {
	// depends_on на несуществующий шаг: flow загружается,
	// но ссылающийся шаг безусловно блокируется
	flow := &domain.Flow{
		ID: "unknown-dep",
		Steps: []domain.StepDef{
			{ID: "a", Kind: "noop", DependsOn: []string{"ghost"}},
			{ID: "b", Kind: "noop"},
		},
	}
	dag := mustBuildDAG(t, flow)

	fake := &fakeExecutor{}
	history := newTestRunner(fake).Run(context.Background(), flow, dag)

	a := history.StepResults["a"]
	if a.Status != domain.StepStatusFailed || a.Error != BlockedReason {
		t.Errorf("step a should be blocked, got %+v", a)
	}
	if history.StepResults["b"].Status != domain.StepStatusSucceeded {
		t.Error("step b should succeed")
	}

	// Executor не вызывался для заблокированного шага
	if len(fake.calls) != 1 || fake.calls[0] != "b" {
		t.Errorf("executor should be called only for b, got %v", fake.calls)
	}
}

func TestRun_EmptyDependsOnNeverBlocked(t *testing.T) {
	flow := &domain.Flow{
		ID: "no-deps",
		Steps: []domain.StepDef{
			{ID: "a", Kind: KindFailTest},
			{ID: "b", Kind: "noop"},
			{ID: "c", Kind: "noop"},
		},
	}
	dag := mustBuildDAG(t, flow)

	fake := &fakeExecutor{}
	history := newTestRunner(fake).Run(context.Background(), flow, dag)

	// Шаги без depends_on выполняются независимо от чужих падений
	if len(fake.calls) != 3 {
		t.Errorf("all steps without deps should execute, got calls %v", fake.calls)
	}
	if history.StepResults["b"].Status != domain.StepStatusSucceeded {
		t.Error("step b should succeed")
	}
	if history.StepResults["c"].Status != domain.StepStatusSucceeded {
		t.Error("step c should succeed")
	}
}

func TestRun_StatusAggregation(t *testing.T) {
	// RunStatus == SUCCEEDED ⇔ ни одного FAILED в результатах
	succeeding := &domain.Flow{
		ID:    "all-ok",
		Steps: []domain.StepDef{{ID: "a", Kind: "noop"}},
	}
	history := newTestRunner(&fakeExecutor{}).Run(
		context.Background(), succeeding, mustBuildDAG(t, succeeding))
	if history.Status != domain.RunStatusSucceeded || history.Error != "" {
		t.Errorf("expected clean SUCCEEDED, got %s (%q)", history.Status, history.Error)
	}

	failing := &domain.Flow{
		ID: "one-failed",
		Steps: []domain.StepDef{
			{ID: "a", Kind: "noop"},
			{ID: "boom", Kind: KindFailTest},
		},
	}
	history = newTestRunner(&fakeExecutor{}).Run(
		context.Background(), failing, mustBuildDAG(t, failing))
	if history.Status != domain.RunStatusFailed {
		t.Errorf("expected FAILED, got %s", history.Status)
	}
}

func TestRun_FreshRunID(t *testing.T) {
	flow := &domain.Flow{
		ID:    "ids",
		Steps: []domain.StepDef{{ID: "a", Kind: "noop"}},
	}
	dag := mustBuildDAG(t, flow)

	r := newTestRunner(&fakeExecutor{})

	first := r.Run(context.Background(), flow, dag)
	second := r.Run(context.Background(), flow, dag)

	if first.RunID == "" || second.RunID == "" {
		t.Fatal("run IDs should be generated")
	}
	if first.RunID == second.RunID {
		t.Errorf("each run should get a fresh ID, got %q twice", first.RunID)
	}
	if first.FlowID != "ids" || second.FlowID != "ids" {
		t.Error("run history should carry the flow ID")
	}
}

func TestRun_DefaultRunIDIsUUID(t *testing.T) {
	flow := &domain.Flow{
		ID:    "uuid",
		Steps: []domain.StepDef{{ID: "a", Kind: "noop"}},
	}
	dag := mustBuildDAG(t, flow)

	r := New(Config{
		Registry: NewRegistryWithFallback(&fakeExecutor{}),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	history := r.Run(context.Background(), flow, dag)
	if len(history.RunID) != 36 {
		t.Errorf("expected UUID run id, got %q", history.RunID)
	}
}
