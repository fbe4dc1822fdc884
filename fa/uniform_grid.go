package fa

import (
	"fmt"

	"github.com/zeu5/linear-td/spaces"
)

// UniformGrid activates exactly one feature per input: the cell of a
// regular grid containing the state. Cells are numbered with the first
// dimension varying fastest.
type UniformGrid struct {
	space spaces.PartitionedSpace
	size  int
}

var _ Projector = &UniformGrid{}

func NewUniformGrid(space spaces.PartitionedSpace) *UniformGrid {
	return &UniformGrid{
		space: space,
		size:  space.Span(),
	}
}

func (u *UniformGrid) hash(input []float64) (int, error) {
	if len(input) != len(u.space) {
		return 0, fmt.Errorf("%w: expected %d dimensions, got %d", ErrOutOfBounds, len(u.space), len(input))
	}
	index := 0
	for d := len(u.space) - 1; d >= 0; d-- {
		bin, err := u.space[d].ToPartition(input[d])
		if err != nil {
			return 0, fmt.Errorf("%w: dimension %d: %s", ErrOutOfBounds, d, err)
		}
		index = bin + u.space[d].Density*index
	}
	return index, nil
}

func (u *UniformGrid) Project(input []float64) (Projection, error) {
	i, err := u.hash(input)
	if err != nil {
		return Projection{}, err
	}
	return Sparse(u.size, i), nil
}

func (u *UniformGrid) Dim() int {
	return u.space.Dim()
}

func (u *UniformGrid) Size() int {
	return u.size
}

func (u *UniformGrid) Activation() int {
	return 1
}

func (u *UniformGrid) Equivalent(other Projector) bool {
	return equivalent(u, other)
}

func (u *UniformGrid) String() string {
	return fmt.Sprintf("UniformGrid(%v)", u.space.Densities())
}
