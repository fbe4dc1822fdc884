// Package fa implements linear function approximation: projectors that map
// raw states to feature vectors and the linear approximator (LFA) whose weight
// matrix is indexed by those features.
//
// Weights are never clamped. Learning rates that make the updates diverge
// produce NaN or Inf values, choosing stable schedules is up to the caller.
package fa

import "errors"

var (
	// ErrOutOfBounds is returned when a state lies outside the projector's input space
	ErrOutOfBounds = errors.New("state outside of projector bounds")
	// ErrIndexOutOfBounds is returned for a feature or output column outside the weights
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	// ErrDimensionMismatch is returned when two geometries that must agree do not
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// Projector maps a raw state to a Projection over a fixed feature space
type Projector interface {
	// Project the state into feature space
	Project([]float64) (Projection, error)
	// Dimensionality of the input
	Dim() int
	// Number of features
	Size() int
	// Expected number of simultaneously active features
	Activation() int
	// Same input dimensionality and feature count
	Equivalent(Projector) bool
	String() string
}

func equivalent(a, b Projector) bool {
	return a.Dim() == b.Dim() && a.Size() == b.Size()
}
