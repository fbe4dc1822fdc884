package policies

import (
	"fmt"

	"github.com/zeu5/linear-td/types"
	"golang.org/x/exp/rand"
)

// EpsilonGreedy follows explore with probability epsilon and greedy otherwise
type EpsilonGreedy struct {
	greedy  FinitePolicy
	explore FinitePolicy
	epsilon types.Parameter
}

var _ FinitePolicy = &EpsilonGreedy{}

// NewEpsilonGreedy mixes two policies over the same actions
func NewEpsilonGreedy(greedy, explore FinitePolicy, epsilon types.Parameter) (*EpsilonGreedy, error) {
	if greedy.NActions() != explore.NActions() {
		return nil, fmt.Errorf("%w: greedy over %d actions, exploration over %d", ErrInvalidAction, greedy.NActions(), explore.NActions())
	}
	return &EpsilonGreedy{
		greedy:  greedy,
		explore: explore,
		epsilon: epsilon,
	}, nil
}

func (e *EpsilonGreedy) Epsilon() float64 {
	return e.epsilon.Value()
}

func (e *EpsilonGreedy) NActions() int {
	return e.greedy.NActions()
}

func (e *EpsilonGreedy) Sample(rnd *rand.Rand, s []float64) (int, error) {
	if rnd.Float64() < e.epsilon.Value() {
		return e.explore.Sample(rnd, s)
	}
	return e.greedy.Sample(rnd, s)
}

func (e *EpsilonGreedy) Probability(s []float64, a int) (float64, error) {
	return probabilityFromVector(e, s, a)
}

func (e *EpsilonGreedy) Probabilities(s []float64) ([]float64, error) {
	pg, err := e.greedy.Probabilities(s)
	if err != nil {
		return nil, err
	}
	pe, err := e.explore.Probabilities(s)
	if err != nil {
		return nil, err
	}
	eps := e.epsilon.Value()
	probs := make([]float64, len(pg))
	for i := range probs {
		probs[i] = (1-eps)*pg[i] + eps*pe[i]
	}
	return probs, nil
}

// HandleTerminal steps epsilon and both sub policies
func (e *EpsilonGreedy) HandleTerminal() {
	e.epsilon = e.epsilon.Step()
	e.greedy.HandleTerminal()
	e.explore.HandleTerminal()
}
