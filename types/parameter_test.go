package types

import (
	"math"
	"testing"
)

func TestParameterFixed(t *testing.T) {
	p := Fixed(0.3)
	for i := 0; i < 5; i++ {
		p = p.Step()
	}
	if p.Value() != 0.3 {
		t.Errorf("expected 0.3, got %v", p.Value())
	}
}

func TestParameterStepIsPure(t *testing.T) {
	p := Exponential(1.0, 0.0, 0.5)
	next := p.Step()
	if p.Value() != 1.0 {
		t.Errorf("receiver changed to %v", p.Value())
	}
	if next.Value() != 0.5 {
		t.Errorf("expected 0.5, got %v", next.Value())
	}
	if again := p.Step(); again.Value() != next.Value() {
		t.Errorf("stepping twice from the same value differs: %v != %v", again.Value(), next.Value())
	}
}

func TestParameterExponentialFloor(t *testing.T) {
	p := Exponential(1.0, 0.2, 0.5)
	expected := []float64{0.5, 0.25, 0.2, 0.2}
	for i, e := range expected {
		p = p.Step()
		if math.Abs(p.Value()-e) > 1e-12 {
			t.Errorf("step %d: expected %v, got %v", i+1, e, p.Value())
		}
	}
}

func TestParameterPolynomial(t *testing.T) {
	p := Polynomial(1.0, 0.0, 1.0)
	for i := 1; i <= 4; i++ {
		p = p.Step()
		e := 1.0 / float64(i+1)
		if math.Abs(p.Value()-e) > 1e-12 {
			t.Errorf("step %d: expected %v, got %v", i, e, p.Value())
		}
	}

	floored := Polynomial(1.0, 0.4, 1.0)
	for i := 0; i < 10; i++ {
		floored = floored.Step()
	}
	if floored.Value() != 0.4 {
		t.Errorf("expected floor 0.4, got %v", floored.Value())
	}
}
