package policies

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
)

var (
	ErrInvalidAction = errors.New("action out of range")
	ErrNoAction      = errors.New("no action could be sampled")
)

// Policy maps a state to an action
type Policy interface {
	Sample(*rand.Rand, []float64) (int, error)
	// Probability of taking the action in the state
	Probability([]float64, int) (float64, error)
	// Called on every episode boundary, steps exploration schedules
	HandleTerminal()
}

// FinitePolicy is a policy over a fixed number of actions that can report its
// full distribution
type FinitePolicy interface {
	Policy
	NActions() int
	// One probability per action, summing to 1
	Probabilities([]float64) ([]float64, error)
}

func checkAction(n, a int) error {
	if a < 0 || a >= n {
		return fmt.Errorf("%w: %d of %d", ErrInvalidAction, a, n)
	}
	return nil
}

// probabilityFromVector implements Probability for finite policies
func probabilityFromVector(p FinitePolicy, s []float64, a int) (float64, error) {
	if err := checkAction(p.NActions(), a); err != nil {
		return 0, err
	}
	probs, err := p.Probabilities(s)
	if err != nil {
		return 0, err
	}
	return probs[a], nil
}
