package fa

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Projection is a feature vector produced by a Projector.
// A sparse projection lists the active features, each with unit activation.
// A dense projection carries the full activation vector.
type Projection struct {
	size   int
	active []int
	dense  []float64
}

// Sparse creates a projection over size features with the given active indices
func Sparse(size int, active ...int) Projection {
	return Projection{size: size, active: active}
}

// Dense creates a projection from an activation vector
func Dense(values []float64) Projection {
	return Projection{size: len(values), dense: values}
}

func (p Projection) IsSparse() bool {
	return p.dense == nil
}

// Size is the number of possible features
func (p Projection) Size() int {
	return p.size
}

// Active returns the active indices of a sparse projection, nil for dense ones
func (p Projection) Active() []int {
	return p.active
}

// Each calls fn for every feature with a non-zero activation
func (p Projection) Each(fn func(i int, v float64)) {
	if p.IsSparse() {
		for _, i := range p.active {
			fn(i, 1.0)
		}
		return
	}
	for i, v := range p.dense {
		if v != 0 {
			fn(i, v)
		}
	}
}

// Validate checks that every active index lies in [0, Size())
func (p Projection) Validate() error {
	for _, i := range p.active {
		if i < 0 || i >= p.size {
			return fmt.Errorf("%w: feature %d of %d", ErrIndexOutOfBounds, i, p.size)
		}
	}
	return nil
}

// Expanded returns the dense form of the projection
func (p Projection) Expanded() *mat.VecDense {
	v := mat.NewVecDense(p.size, nil)
	p.Each(func(i int, a float64) {
		v.SetVec(i, v.AtVec(i)+a)
	})
	return v
}

// Dot computes the inner product with a vector of length Size()
func (p Projection) Dot(v mat.Vector) (float64, error) {
	if v.Len() != p.size {
		return 0, fmt.Errorf("%w: projection of size %d against vector of length %d", ErrDimensionMismatch, p.size, v.Len())
	}
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if !p.IsSparse() {
		return mat.Dot(mat.NewVecDense(p.size, p.dense), v), nil
	}
	sum := 0.0
	for _, i := range p.active {
		sum += v.AtVec(i)
	}
	return sum, nil
}

// Sub returns the dense projection p - scale*other
func (p Projection) Sub(other Projection, scale float64) (Projection, error) {
	if p.size != other.size {
		return Projection{}, fmt.Errorf("%w: cannot combine projections of size %d and %d", ErrDimensionMismatch, p.size, other.size)
	}
	out := p.Expanded()
	out.AddScaledVec(out, -scale, other.Expanded())
	return Dense(out.RawVector().Data), nil
}

// Zeros is the all-zero dense projection of the given size
func Zeros(size int) Projection {
	return Dense(make([]float64, size))
}
