package control

import (
	"github.com/zeu5/linear-td/fa"
	"github.com/zeu5/linear-td/policies"
	"github.com/zeu5/linear-td/types"
	"golang.org/x/exp/rand"
)

// ExpectedSARSA bootstraps from the expected next action value under the policy
type ExpectedSARSA struct {
	controller
}

var _ types.Agent = &ExpectedSARSA{}

func NewExpectedSARSA(q *fa.LFA, policy policies.FinitePolicy, alpha, gamma types.Parameter) (*ExpectedSARSA, error) {
	c, err := newController(q, policy, alpha, gamma)
	if err != nil {
		return nil, err
	}
	return &ExpectedSARSA{controller: c}, nil
}

func (l *ExpectedSARSA) SampleTarget(rnd *rand.Rand, s []float64) (int, error) {
	return l.policy.Sample(rnd, s)
}

func (l *ExpectedSARSA) HandleTransition(t *types.Transition) error {
	phi, err := l.q.Embed(t.From)
	if err != nil {
		return err
	}
	delta, err := l.tdError(t, phi, func() (float64, error) {
		return expectedValue(l.q, l.policy, t.To)
	})
	if err != nil {
		return err
	}
	return l.q.UpdateIndex(phi, t.Action, l.alpha.Value()*delta)
}

func (l *ExpectedSARSA) HandleTerminal() {
	l.stepSchedules()
}

func (l *ExpectedSARSA) PredictV(s []float64) (float64, error) {
	return expectedValue(l.q, l.policy, s)
}
