package policies

import (
	"github.com/zeu5/linear-td/fa"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// Greedy picks the action with the highest value under q. Ties go to the
// lowest action index. q is shared with the learner, not copied.
type Greedy struct {
	q *fa.LFA
}

var _ FinitePolicy = &Greedy{}

func NewGreedy(q *fa.LFA) *Greedy {
	return &Greedy{q: q}
}

func (g *Greedy) Q() *fa.LFA {
	return g.q
}

func (g *Greedy) NActions() int {
	return g.q.NOutputs()
}

// Argmax of the action values in s
func (g *Greedy) Argmax(s []float64) (int, error) {
	values, err := g.q.EvaluateState(s)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, ErrNoAction
	}
	return floats.MaxIdx(values), nil
}

func (g *Greedy) Sample(_ *rand.Rand, s []float64) (int, error) {
	return g.Argmax(s)
}

func (g *Greedy) Probability(s []float64, a int) (float64, error) {
	return probabilityFromVector(g, s, a)
}

func (g *Greedy) Probabilities(s []float64) ([]float64, error) {
	best, err := g.Argmax(s)
	if err != nil {
		return nil, err
	}
	probs := make([]float64, g.NActions())
	probs[best] = 1
	return probs, nil
}

func (g *Greedy) HandleTerminal() {}
