package types

import (
	"math"
	"testing"
)

func TestTraceReturn(t *testing.T) {
	tr := NewTrace()
	for _, r := range []float64{1, 2, 3} {
		tr.Append(&Transition{Reward: r})
	}
	if g := tr.Return(1.0); g != 6 {
		t.Errorf("expected 6, got %v", g)
	}
	if g := tr.Return(0.5); math.Abs(g-2.75) > 1e-12 {
		t.Errorf("expected 2.75, got %v", g)
	}
	if tr.Slice(1, 10).Len() != 2 {
		t.Errorf("expected 2 transitions in slice")
	}
	if last, ok := tr.Last(); !ok || last.Reward != 3 {
		t.Errorf("unexpected last transition")
	}
	if _, ok := tr.Get(3); ok {
		t.Errorf("expected out of range get to fail")
	}
}
