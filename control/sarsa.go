package control

import (
	"github.com/zeu5/linear-td/fa"
	"github.com/zeu5/linear-td/policies"
	"github.com/zeu5/linear-td/types"
	"golang.org/x/exp/rand"
)

// SARSA bootstraps from an action resampled from the policy in the next state
type SARSA struct {
	controller
}

var _ types.Agent = &SARSA{}

func NewSARSA(q *fa.LFA, policy policies.FinitePolicy, alpha, gamma types.Parameter) (*SARSA, error) {
	c, err := newController(q, policy, alpha, gamma)
	if err != nil {
		return nil, err
	}
	return &SARSA{controller: c}, nil
}

// SampleTarget follows the policy, SARSA learns on-policy
func (l *SARSA) SampleTarget(rnd *rand.Rand, s []float64) (int, error) {
	return l.policy.Sample(rnd, s)
}

// nextValue is Q(s', a') for a' sampled from the policy
func (c *controller) nextValue(s []float64) (float64, error) {
	a, err := c.policy.Sample(c.rand, s)
	if err != nil {
		return 0, err
	}
	return c.PredictQSA(s, a)
}

func (l *SARSA) HandleTransition(t *types.Transition) error {
	phi, err := l.q.Embed(t.From)
	if err != nil {
		return err
	}
	delta, err := l.tdError(t, phi, func() (float64, error) {
		return l.nextValue(t.To)
	})
	if err != nil {
		return err
	}
	return l.q.UpdateIndex(phi, t.Action, l.alpha.Value()*delta)
}

func (l *SARSA) HandleTerminal() {
	l.stepSchedules()
}

// PredictV is the expectation of the action values under the policy
func (l *SARSA) PredictV(s []float64) (float64, error) {
	return expectedValue(l.q, l.policy, s)
}
