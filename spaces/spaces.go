package spaces

import (
	"errors"
	"fmt"
	"math"
)

var ErrOutOfRange = errors.New("value outside of dimension bounds")

// Discrete is a finite set {0, ..., N-1}
type Discrete int

func (d Discrete) Card() int {
	return int(d)
}

func (d Discrete) Contains(v int) bool {
	return v >= 0 && v < int(d)
}

// Continuous is a closed interval [Lo, Hi]
type Continuous struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

func NewContinuous(lo, hi float64) Continuous {
	return Continuous{Lo: lo, Hi: hi}
}

func (c Continuous) Span() float64 {
	return c.Hi - c.Lo
}

func (c Continuous) Contains(v float64) bool {
	return v >= c.Lo && v <= c.Hi
}

// Clip bounds v to the interval
func (c Continuous) Clip(v float64) float64 {
	return math.Max(c.Lo, math.Min(c.Hi, v))
}

// Partitioned splits the interval in Density equal bins
func (c Continuous) Partitioned(density int) Partitioned {
	return Partitioned{Lo: c.Lo, Hi: c.Hi, Density: density}
}

// Partitioned is an interval [Lo, Hi] cut into Density bins of equal width.
// The upper bound belongs to the last bin.
type Partitioned struct {
	Lo      float64 `json:"lo"`
	Hi      float64 `json:"hi"`
	Density int     `json:"density"`
}

func NewPartitioned(lo, hi float64, density int) Partitioned {
	return Partitioned{Lo: lo, Hi: hi, Density: density}
}

func (p Partitioned) Width() float64 {
	return (p.Hi - p.Lo) / float64(p.Density)
}

// ToPartition returns the bin of v
func (p Partitioned) ToPartition(v float64) (int, error) {
	if math.IsNaN(v) || v < p.Lo || v > p.Hi {
		return 0, fmt.Errorf("%w: %v not in [%v, %v]", ErrOutOfRange, v, p.Lo, p.Hi)
	}
	i := int(math.Floor(float64(p.Density) * (v - p.Lo) / (p.Hi - p.Lo)))
	if i >= p.Density {
		i = p.Density - 1
	}
	return i, nil
}

// Centre of the i-th bin
func (p Partitioned) Centre(i int) float64 {
	return p.Lo + (float64(i)+0.5)*p.Width()
}

// Space is a product of continuous dimensions
type Space []Continuous

func NewSpace(dims ...Continuous) Space {
	return Space(dims)
}

func (s Space) Dim() int {
	return len(s)
}

func (s Space) Contains(x []float64) bool {
	if len(x) != len(s) {
		return false
	}
	for i, d := range s {
		if !d.Contains(x[i]) {
			return false
		}
	}
	return true
}

// Partitioned cuts every dimension into density bins
func (s Space) Partitioned(density int) PartitionedSpace {
	ps := make(PartitionedSpace, len(s))
	for i, d := range s {
		ps[i] = d.Partitioned(density)
	}
	return ps
}

// PartitionedSpace is a product of partitioned dimensions
type PartitionedSpace []Partitioned

func (s PartitionedSpace) Dim() int {
	return len(s)
}

// Span is the number of cells of the grid
func (s PartitionedSpace) Span() int {
	if len(s) == 0 {
		return 0
	}
	n := 1
	for _, d := range s {
		n *= d.Density
	}
	return n
}

func (s PartitionedSpace) Densities() []int {
	ds := make([]int, len(s))
	for i, d := range s {
		ds[i] = d.Density
	}
	return ds
}

// Continuous drops the partitioning
func (s PartitionedSpace) Continuous() Space {
	cs := make(Space, len(s))
	for i, d := range s {
		cs[i] = Continuous{Lo: d.Lo, Hi: d.Hi}
	}
	return cs
}
