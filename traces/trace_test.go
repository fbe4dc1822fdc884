package traces

import (
	"math"
	"testing"

	"github.com/zeu5/linear-td/fa"
	"github.com/zeu5/linear-td/spaces"
)

func TestReplacingDecay(t *testing.T) {
	tr := NewReplacing(5, 1)
	rate := 0.9 * 0.8

	tr.Update(fa.Sparse(5, 2), 0)
	tr.Update(fa.Sparse(5, 2), 0)
	if tr.At(2, 0) != 1.0 {
		t.Fatalf("replacing trace should be reset to 1, got %v", tr.At(2, 0))
	}

	for n := 1; n <= 6; n++ {
		tr.Decay(rate)
		tr.Update(fa.Sparse(5, 4), 0)
		expected := math.Pow(rate, float64(n))
		if math.Abs(tr.At(2, 0)-expected) > 1e-12 {
			t.Errorf("after %d steps expected %v, got %v", n, expected, tr.At(2, 0))
		}
	}
	if tr.At(4, 0) != 1.0 {
		t.Errorf("freshly visited feature should be 1, got %v", tr.At(4, 0))
	}
}

func TestAccumulatingTrace(t *testing.T) {
	tr := NewAccumulating(3, 2)
	rate := 0.5

	// visit feature 1 of column 1 three times in a row
	expected := 0.0
	for i := 0; i < 3; i++ {
		tr.Decay(rate)
		tr.Update(fa.Sparse(3, 1), 1)
		expected = expected*rate + 1.0
	}
	if math.Abs(tr.At(1, 1)-expected) > 1e-12 {
		t.Errorf("expected %v, got %v", expected, tr.At(1, 1))
	}
	if tr.At(1, 0) != 0 {
		t.Errorf("other column should be untouched, got %v", tr.At(1, 0))
	}

	for i := 0; i < 4; i++ {
		tr.Decay(rate)
	}
	if math.Abs(tr.At(1, 1)-expected*math.Pow(rate, 4)) > 1e-12 {
		t.Errorf("expected %v, got %v", expected*math.Pow(rate, 4), tr.At(1, 1))
	}
}

func TestTraceApply(t *testing.T) {
	q := fa.NewLFA(fa.NewUniformGrid(spaces.PartitionedSpace{spaces.NewPartitioned(0, 4, 4)}), 2)
	tr := For(Replacing, q)

	tr.Update(fa.Sparse(4, 0), 1)
	tr.Decay(0.5)
	tr.Update(fa.Sparse(4, 3), 1)

	if err := tr.Apply(q, 2.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := q.Weights()
	if w.At(0, 1) != 1.0 || w.At(3, 1) != 2.0 {
		t.Errorf("unexpected weights %v %v", w.At(0, 1), w.At(3, 1))
	}

	tr.Reset()
	if tr.At(3, 1) != 0 {
		t.Errorf("reset should zero the trace")
	}
}

func TestTraceBounds(t *testing.T) {
	tr := NewReplacing(3, 1)
	if err := tr.Update(fa.Sparse(3, 0), 1); err == nil {
		t.Errorf("expected error for column out of range")
	}
	if err := tr.Update(fa.Sparse(4, 0), 0); err == nil {
		t.Errorf("expected error for projection size mismatch")
	}
}
