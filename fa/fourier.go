package fa

import (
	"fmt"
	"math"

	"github.com/zeu5/linear-td/spaces"
)

// Fourier is the order-n cosine basis phi_c(x) = cos(pi * c.x) over inputs
// rescaled to the unit hypercube, with one feature per coefficient vector
// c in {0..n}^d. Inputs outside the space are rejected with ErrOutOfBounds.
type Fourier struct {
	space        spaces.Space
	order        int
	coefficients [][]float64
}

var _ Projector = &Fourier{}

func NewFourier(space spaces.Space, order int) *Fourier {
	d := space.Dim()
	n := int(math.Pow(float64(order+1), float64(d)))
	coefficients := make([][]float64, n)
	for i := 0; i < n; i++ {
		c := make([]float64, d)
		rest := i
		for j := 0; j < d; j++ {
			c[j] = float64(rest % (order + 1))
			rest /= order + 1
		}
		coefficients[i] = c
	}
	return &Fourier{
		space:        space,
		order:        order,
		coefficients: coefficients,
	}
}

func (f *Fourier) Project(input []float64) (Projection, error) {
	if len(input) != f.space.Dim() {
		return Projection{}, fmt.Errorf("%w: expected %d dimensions, got %d", ErrOutOfBounds, f.space.Dim(), len(input))
	}
	scaled := make([]float64, len(input))
	for i, v := range input {
		d := f.space[i]
		if math.IsNaN(v) || !d.Contains(v) {
			return Projection{}, fmt.Errorf("%w: dimension %d: %v not in [%v, %v]", ErrOutOfBounds, i, v, d.Lo, d.Hi)
		}
		// a degenerate dimension stays at the lower corner
		if d.Span() > 0 {
			scaled[i] = (v - d.Lo) / d.Span()
		}
	}

	values := make([]float64, len(f.coefficients))
	for i, c := range f.coefficients {
		dot := 0.0
		for j, cj := range c {
			dot += cj * scaled[j]
		}
		values[i] = math.Cos(math.Pi * dot)
	}
	return Dense(values), nil
}

func (f *Fourier) Dim() int {
	return f.space.Dim()
}

func (f *Fourier) Size() int {
	return len(f.coefficients)
}

func (f *Fourier) Activation() int {
	return len(f.coefficients)
}

func (f *Fourier) Equivalent(other Projector) bool {
	return equivalent(f, other)
}

func (f *Fourier) String() string {
	return fmt.Sprintf("Fourier(order=%d, dim=%d)", f.order, f.space.Dim())
}
