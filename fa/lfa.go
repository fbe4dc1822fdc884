package fa

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LFA is a linear function approximator. The weight matrix has one row per
// feature of the projector and one column per output.
//
// An *LFA is meant to be shared: a controller and the greedy policy built on
// top of it hold the same pointer, so every update is immediately visible to
// both. Nothing is synchronised, the whole step loop is serial.
type LFA struct {
	projector Projector
	weights   *mat.Dense
}

// NewLFA creates a zero initialised approximator with nOutputs columns
func NewLFA(projector Projector, nOutputs int) *LFA {
	return &LFA{
		projector: projector,
		weights:   mat.NewDense(projector.Size(), nOutputs, nil),
	}
}

// NewLFAWithWeights uses the given weights, which must have one row per feature
func NewLFAWithWeights(projector Projector, weights *mat.Dense) (*LFA, error) {
	if r, _ := weights.Dims(); r != projector.Size() {
		return nil, fmt.Errorf("%w: %d weight rows for %d features", ErrDimensionMismatch, r, projector.Size())
	}
	return &LFA{
		projector: projector,
		weights:   weights,
	}, nil
}

func (f *LFA) Projector() Projector {
	return f.projector
}

func (f *LFA) NFeatures() int {
	r, _ := f.weights.Dims()
	return r
}

func (f *LFA) NOutputs() int {
	_, c := f.weights.Dims()
	return c
}

// Embed projects a raw state with the approximator's projector
func (f *LFA) Embed(s []float64) (Projection, error) {
	return f.projector.Project(s)
}

func (f *LFA) checkProjection(p Projection) error {
	if p.Size() != f.NFeatures() {
		return fmt.Errorf("%w: projection of size %d for %d features", ErrDimensionMismatch, p.Size(), f.NFeatures())
	}
	return p.Validate()
}

func (f *LFA) checkColumn(i int) error {
	if i < 0 || i >= f.NOutputs() {
		return fmt.Errorf("%w: output %d of %d", ErrIndexOutOfBounds, i, f.NOutputs())
	}
	return nil
}

// Evaluate returns one value per output
func (f *LFA) Evaluate(p Projection) ([]float64, error) {
	if err := f.checkProjection(p); err != nil {
		return nil, err
	}
	out := make([]float64, f.NOutputs())
	p.Each(func(i int, v float64) {
		row := f.weights.RawRowView(i)
		for j := range out {
			out[j] += v * row[j]
		}
	})
	return out, nil
}

// EvaluateIndex returns the value of a single output
func (f *LFA) EvaluateIndex(p Projection, i int) (float64, error) {
	if err := f.checkColumn(i); err != nil {
		return 0, err
	}
	if err := f.checkProjection(p); err != nil {
		return 0, err
	}
	return p.Dot(f.weights.ColView(i))
}

// EvaluateState projects s and evaluates all outputs
func (f *LFA) EvaluateState(s []float64) ([]float64, error) {
	p, err := f.Embed(s)
	if err != nil {
		return nil, err
	}
	return f.Evaluate(p)
}

// Update adds errs[j] * phi to every output column j
func (f *LFA) Update(p Projection, errs []float64) error {
	if len(errs) != f.NOutputs() {
		return fmt.Errorf("%w: %d errors for %d outputs", ErrDimensionMismatch, len(errs), f.NOutputs())
	}
	if err := f.checkProjection(p); err != nil {
		return err
	}
	p.Each(func(i int, v float64) {
		row := f.weights.RawRowView(i)
		for j, e := range errs {
			row[j] += v * e
		}
	})
	return nil
}

// UpdateIndex adds e * phi to output column i
func (f *LFA) UpdateIndex(p Projection, i int, e float64) error {
	if err := f.checkColumn(i); err != nil {
		return err
	}
	if err := f.checkProjection(p); err != nil {
		return err
	}
	p.Each(func(k int, v float64) {
		f.weights.Set(k, i, f.weights.At(k, i)+v*e)
	})
	return nil
}

// UpdateMatrix adds scale * m to the weights; m must have the weights' shape
func (f *LFA) UpdateMatrix(m mat.Matrix, scale float64) error {
	r, c := m.Dims()
	if wr, wc := f.weights.Dims(); r != wr || c != wc {
		return fmt.Errorf("%w: %dx%d update for %dx%d weights", ErrDimensionMismatch, r, c, wr, wc)
	}
	var scaled mat.Dense
	scaled.Scale(scale, m)
	f.weights.Add(f.weights, &scaled)
	return nil
}

// Weights returns a copy of the weight matrix
func (f *LFA) Weights() *mat.Dense {
	return mat.DenseCopyOf(f.weights)
}

// SetWeights overwrites the weights in place, keeping every holder of f in sync
func (f *LFA) SetWeights(w mat.Matrix) error {
	r, c := w.Dims()
	if wr, wc := f.weights.Dims(); r != wr || c != wc {
		return fmt.Errorf("%w: %dx%d weights for %dx%d approximator", ErrDimensionMismatch, r, c, wr, wc)
	}
	f.weights.Copy(w)
	return nil
}
