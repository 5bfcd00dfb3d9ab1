package engine

import (
	"errors"
	"testing"

	"github.com/shaiso/Flowline/internal/domain"
)

func TestValidate_OK(t *testing.T) {
	flow := &domain.Flow{
		ID: "ok",
		Steps: []domain.StepDef{
			{ID: "a", Kind: "noop"},
			{ID: "b", Kind: "noop", DependsOn: []string{"a"}, Retry: &domain.RetryPolicy{MaxAttempts: 3, BackoffSeconds: 5}},
		},
	}

	if err := Validate(flow); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_EmptyFlowID(t *testing.T) {
	flow := &domain.Flow{
		Steps: []domain.StepDef{{ID: "a", Kind: "noop"}},
	}

	if err := Validate(flow); !errors.Is(err, ErrEmptyFlowID) {
		t.Errorf("expected ErrEmptyFlowID, got %v", err)
	}
}

func TestValidate_NoSteps(t *testing.T) {
	if err := Validate(&domain.Flow{ID: "empty"}); !errors.Is(err, ErrEmptySteps) {
		t.Errorf("expected ErrEmptySteps, got %v", err)
	}
}

func TestValidate_EmptyStepID(t *testing.T) {
	flow := &domain.Flow{
		ID:    "f",
		Steps: []domain.StepDef{{Kind: "noop"}},
	}

	if err := Validate(flow); !errors.Is(err, ErrEmptyStepID) {
		t.Errorf("expected ErrEmptyStepID, got %v", err)
	}
}

func TestValidate_DuplicateStepID(t *testing.T) {
	flow := &domain.Flow{
		ID: "f",
		Steps: []domain.StepDef{
			{ID: "a", Kind: "noop"},
			{ID: "a", Kind: "noop"},
		},
	}

	err := Validate(flow)
	if !errors.Is(err, ErrDuplicateStepID) {
		t.Fatalf("expected ErrDuplicateStepID, got %v", err)
	}

	// Ошибка должна называть проблемный шаг
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if vErr.StepID != "a" {
		t.Errorf("expected step a in error, got %q", vErr.StepID)
	}
}

func TestValidate_EmptyKind(t *testing.T) {
	flow := &domain.Flow{
		ID:    "f",
		Steps: []domain.StepDef{{ID: "a"}},
	}

	if err := Validate(flow); !errors.Is(err, ErrEmptyStepKind) {
		t.Errorf("expected ErrEmptyStepKind, got %v", err)
	}
}

func TestValidate_SelfDependency(t *testing.T) {
	flow := &domain.Flow{
		ID:    "f",
		Steps: []domain.StepDef{{ID: "a", Kind: "noop", DependsOn: []string{"a"}}},
	}

	if err := Validate(flow); !errors.Is(err, ErrSelfDependency) {
		t.Errorf("expected ErrSelfDependency, got %v", err)
	}
}

func TestValidate_InvalidRetry(t *testing.T) {
	flow := &domain.Flow{
		ID: "f",
		Steps: []domain.StepDef{
			{ID: "a", Kind: "noop", Retry: &domain.RetryPolicy{MaxAttempts: 0}},
		},
	}

	if err := Validate(flow); !errors.Is(err, ErrInvalidRetry) {
		t.Errorf("expected ErrInvalidRetry, got %v", err)
	}
}
