package fa

import (
	"fmt"
	"math"

	"github.com/zeu5/linear-td/spaces"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/samplemv"
)

// offsetDiv bounds the tiling offsets to +/- (bin width / offsetDiv)
const offsetDiv float64 = 1.5

// TileCoding overlays several uniform grids, each shifted by a random offset.
// Every input activates one feature per tiling.
type TileCoding struct {
	space             spaces.PartitionedSpace
	numTilings        int
	offsets           *mat.Dense
	featuresPerTiling int
	seed              uint64
}

var _ Projector = &TileCoding{}

// NewTileCoding samples numTilings offsets uniformly with the given seed.
// The first tiling is never shifted.
func NewTileCoding(space spaces.PartitionedSpace, numTilings int, seed uint64) *TileCoding {
	bounds := make([]r1.Interval, len(space))
	for i, d := range space {
		bound := d.Width() / offsetDiv
		bounds[i] = r1.Interval{Min: -bound, Max: bound}
	}

	offsets := mat.NewDense(numTilings, len(space), nil)
	if numTilings > 1 {
		sampler := samplemv.IID{Dist: distmv.NewUniform(bounds, rand.NewSource(seed))}
		sampled := mat.NewDense(numTilings-1, len(space), nil)
		sampler.Sample(sampled)
		offsets.Slice(1, numTilings, 0, len(space)).(*mat.Dense).Copy(sampled)
	}

	return &TileCoding{
		space:             space,
		numTilings:        numTilings,
		offsets:           offsets,
		featuresPerTiling: space.Span(),
		seed:              seed,
	}
}

func (t *TileCoding) Project(input []float64) (Projection, error) {
	if len(input) != len(t.space) {
		return Projection{}, fmt.Errorf("%w: expected %d dimensions, got %d", ErrOutOfBounds, len(t.space), len(input))
	}
	for d, v := range input {
		if math.IsNaN(v) || v < t.space[d].Lo || v > t.space[d].Hi {
			return Projection{}, fmt.Errorf("%w: dimension %d: %v not in [%v, %v]", ErrOutOfBounds, d, v, t.space[d].Lo, t.space[d].Hi)
		}
	}

	active := make([]int, t.numTilings)
	for j := 0; j < t.numTilings; j++ {
		index := 0
		for d := len(t.space) - 1; d >= 0; d-- {
			dim := t.space[d]
			tile := math.Floor(float64(dim.Density) * (input[d] + t.offsets.At(j, d) - dim.Lo) / (dim.Hi - dim.Lo))
			tile = math.Max(0, math.Min(tile, float64(dim.Density-1)))
			index = int(tile) + dim.Density*index
		}
		active[j] = j*t.featuresPerTiling + index
	}
	return Sparse(t.Size(), active...), nil
}

func (t *TileCoding) Dim() int {
	return t.space.Dim()
}

func (t *TileCoding) Size() int {
	return t.numTilings * t.featuresPerTiling
}

func (t *TileCoding) Activation() int {
	return t.numTilings
}

func (t *TileCoding) Equivalent(other Projector) bool {
	return equivalent(t, other)
}

func (t *TileCoding) String() string {
	return fmt.Sprintf("TileCoding(tilings=%d, bins=%v, seed=%d)", t.numTilings, t.space.Densities(), t.seed)
}
