package fa

import (
	"errors"
	"math"
	"testing"

	"github.com/zeu5/linear-td/spaces"
)

func TestTileCodingActivation(t *testing.T) {
	tc := NewTileCoding(gridSpace(2), 4, 42)
	if tc.Size() != 400 {
		t.Fatalf("expected size 400, got %d", tc.Size())
	}
	if tc.Activation() != 4 {
		t.Fatalf("expected activation 4, got %d", tc.Activation())
	}
	for _, x := range [][]float64{{0, 0}, {5.5, 2.3}, {10, 10}} {
		p, err := tc.Project(x)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		active := p.Active()
		if len(active) != 4 {
			t.Errorf("expected 4 active features, got %d", len(active))
		}
		for j, i := range active {
			if i < j*100 || i >= (j+1)*100 {
				t.Errorf("tiling %d produced feature %d outside its block", j, i)
			}
		}
	}
}

func TestTileCodingDeterministic(t *testing.T) {
	a := NewTileCoding(gridSpace(2), 3, 7)
	b := NewTileCoding(gridSpace(2), 3, 7)
	pa, _ := a.Project([]float64{3.3, 6.6})
	pb, _ := b.Project([]float64{3.3, 6.6})
	for i := range pa.Active() {
		if pa.Active()[i] != pb.Active()[i] {
			t.Errorf("same seed should give same features, got %v and %v", pa.Active(), pb.Active())
		}
	}
}

func TestTileCodingFirstTilingIsGrid(t *testing.T) {
	tc := NewTileCoding(gridSpace(1), 2, 1)
	p, _ := tc.Project([]float64{3.5})
	if p.Active()[0] != 3 {
		t.Errorf("expected unshifted tiling to activate 3, got %d", p.Active()[0])
	}
}

func TestTileCodingLowerEdges(t *testing.T) {
	tc := NewTileCoding(spaces.PartitionedSpace{spaces.NewPartitioned(0, 1, 10)}, 1, 1)
	for k := 0; k < 10; k++ {
		v := float64(k) / 10
		p, err := tc.Project([]float64{v})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Active()[0] != k {
			t.Errorf("lower edge %v of tile %d mapped to %d", v, k, p.Active()[0])
		}
	}
}

func TestFourierBasis(t *testing.T) {
	s := spaces.NewSpace(spaces.NewContinuous(-1, 1), spaces.NewContinuous(0, 2))
	f := NewFourier(s, 3)
	if f.Size() != 16 {
		t.Fatalf("expected 16 features, got %d", f.Size())
	}
	p, err := f.Project([]float64{-1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.IsSparse() {
		t.Fatalf("fourier projections are dense")
	}
	v := p.Expanded()
	for i := 0; i < v.Len(); i++ {
		if math.Abs(v.AtVec(i)-1.0) > 1e-12 {
			t.Errorf("feature %d at the lower corner should be 1, got %v", i, v.AtVec(i))
		}
	}
}

func TestFourierBounds(t *testing.T) {
	f := NewFourier(spaces.NewSpace(spaces.NewContinuous(0, 1), spaces.NewContinuous(2, 2)), 2)
	for _, x := range [][]float64{{1.5, 2}, {-0.1, 2}, {0.5, 3}, {math.NaN(), 2}} {
		if _, err := f.Project(x); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("expected out of bounds for %v, got %v", x, err)
		}
	}

	p, err := f.Project([]float64{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := p.Expanded()
	for i := 0; i < v.Len(); i++ {
		if math.IsNaN(v.AtVec(i)) {
			t.Errorf("feature %d is NaN on a zero span dimension", i)
		}
	}
}

func TestProjectionSub(t *testing.T) {
	a := Sparse(4, 1)
	b := Dense([]float64{0, 1, 2, 0})
	d, err := a.Sub(b, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []float64{0, 0.5, -1, 0}
	v := d.Expanded()
	for i, e := range expected {
		if v.AtVec(i) != e {
			t.Errorf("index %d: expected %v, got %v", i, e, v.AtVec(i))
		}
	}
	if _, err := a.Sub(Sparse(3, 0), 1); err == nil {
		t.Errorf("expected error combining projections of different sizes")
	}
}
