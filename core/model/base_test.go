package model

import (
	"testing"

	"github.com/YuminosukeSato/qfs/pkg/errors"
)

func TestBaseEstimatorState(t *testing.T) {
	var e BaseEstimator
	if e.IsFitted() {
		t.Fatal("zero value should not be fitted")
	}
	if err := e.CheckFitted("KBinsDiscretizer", "Transform"); err == nil {
		t.Error("expected NotFittedError before SetFitted")
	}

	e.SetFitted(4)
	if !e.IsFitted() {
		t.Fatal("expected fitted after SetFitted")
	}
	if e.NFeaturesIn() != 4 {
		t.Errorf("NFeaturesIn() = %d, want 4", e.NFeaturesIn())
	}
	if err := e.CheckFitted("KBinsDiscretizer", "Transform"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	e.Reset()
	if e.IsFitted() || e.NFeaturesIn() != 0 {
		t.Error("expected initial state after Reset")
	}
}

func TestCheckNFeatures(t *testing.T) {
	var e BaseEstimator
	e.SetFitted(3)

	if err := e.CheckNFeatures("Transform", 3); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := e.CheckNFeatures("Transform", 5)
	if err == nil {
		t.Fatal("expected dimension error")
	}
	if !errors.Is(err, errors.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) || dimErr.Axis != 1 {
		t.Errorf("expected axis-1 DimensionError, got %v", err)
	}
}
