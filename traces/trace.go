// Package traces implements eligibility traces for linear approximators.
//
// A trace has the shape of the weight matrix it serves. Each step the whole
// trace decays by lambda*gamma and the entries of the features active in the
// current (state, action) pair are either replaced by the activation
// (Replacing) or incremented by it (Accumulating).
package traces

import (
	"fmt"

	"github.com/zeu5/linear-td/fa"
	"gonum.org/v1/gonum/mat"
)

type Kind int

const (
	Replacing Kind = iota
	Accumulating
)

func (k Kind) String() string {
	switch k {
	case Accumulating:
		return "accumulating"
	default:
		return "replacing"
	}
}

type Trace struct {
	kind Kind
	e    *mat.Dense
}

func New(kind Kind, rows, cols int) *Trace {
	return &Trace{
		kind: kind,
		e:    mat.NewDense(rows, cols, nil),
	}
}

func NewReplacing(rows, cols int) *Trace {
	return New(Replacing, rows, cols)
}

func NewAccumulating(rows, cols int) *Trace {
	return New(Accumulating, rows, cols)
}

// For creates a zero trace shaped like the weights of q
func For(kind Kind, q *fa.LFA) *Trace {
	return New(kind, q.NFeatures(), q.NOutputs())
}

func (t *Trace) Kind() Kind {
	return t.kind
}

func (t *Trace) At(feature, column int) float64 {
	return t.e.At(feature, column)
}

func (t *Trace) Matrix() mat.Matrix {
	return t.e
}

// Decay scales the whole trace by rate
func (t *Trace) Decay(rate float64) {
	t.e.Scale(rate, t.e)
}

// Update marks the features of p as eligible in the given column
func (t *Trace) Update(p fa.Projection, column int) error {
	rows, cols := t.e.Dims()
	if column < 0 || column >= cols {
		return fmt.Errorf("%w: trace column %d of %d", fa.ErrIndexOutOfBounds, column, cols)
	}
	if p.Size() != rows {
		return fmt.Errorf("%w: projection of size %d for trace with %d rows", fa.ErrDimensionMismatch, p.Size(), rows)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	p.Each(func(i int, v float64) {
		switch t.kind {
		case Accumulating:
			t.e.Set(i, column, t.e.At(i, column)+v)
		default:
			t.e.Set(i, column, v)
		}
	})
	return nil
}

// Apply adds delta * trace to the weights of q in one pass.
// delta is the TD error already scaled by the learning rate.
func (t *Trace) Apply(q *fa.LFA, delta float64) error {
	return q.UpdateMatrix(t.e, delta)
}

// Reset zeroes the trace, called at episode boundaries
func (t *Trace) Reset() {
	t.e.Zero()
}
