package control

import (
	"github.com/zeu5/linear-td/fa"
	"github.com/zeu5/linear-td/policies"
	"github.com/zeu5/linear-td/types"
	"golang.org/x/exp/rand"
)

// QLearning bootstraps from the best next action, whatever the behaviour
// policy picks
type QLearning struct {
	controller
	target *policies.Greedy
}

var _ types.Agent = &QLearning{}

func NewQLearning(q *fa.LFA, behaviour policies.FinitePolicy, alpha, gamma types.Parameter) (*QLearning, error) {
	c, err := newController(q, behaviour, alpha, gamma)
	if err != nil {
		return nil, err
	}
	return &QLearning{
		controller: c,
		target:     policies.NewGreedy(q),
	}, nil
}

func (l *QLearning) SampleTarget(rnd *rand.Rand, s []float64) (int, error) {
	return l.target.Sample(rnd, s)
}

func (l *QLearning) HandleTransition(t *types.Transition) error {
	phi, err := l.q.Embed(t.From)
	if err != nil {
		return err
	}
	delta, err := l.tdError(t, phi, func() (float64, error) {
		values, err := l.q.EvaluateState(t.To)
		if err != nil {
			return 0, err
		}
		best, err := l.target.Argmax(t.To)
		if err != nil {
			return 0, err
		}
		return values[best], nil
	})
	if err != nil {
		return err
	}
	return l.q.UpdateIndex(phi, t.Action, l.alpha.Value()*delta)
}

func (l *QLearning) HandleTerminal() {
	l.stepSchedules()
}

// PredictV is the value of the greedy target policy
func (l *QLearning) PredictV(s []float64) (float64, error) {
	return expectedValue(l.q, l.target, s)
}
