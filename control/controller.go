// Package control implements on-line TD control over linear action-value
// approximators. Every controller is a types.Agent: the experiment runner
// samples actions from it and feeds it one transition at a time.
package control

import (
	"errors"
	"fmt"
	"time"

	"github.com/zeu5/linear-td/fa"
	"github.com/zeu5/linear-td/policies"
	"github.com/zeu5/linear-td/types"
	"golang.org/x/exp/rand"
)

var ErrIncompatiblePolicy = errors.New("policy and approximator disagree on the number of actions")

// controller holds what every TD controller shares: the action-value
// approximator, the behaviour policy and the step size and discount schedules
type controller struct {
	q      *fa.LFA
	policy policies.FinitePolicy
	alpha  types.Parameter
	gamma  types.Parameter
	rand   *rand.Rand
}

func newController(q *fa.LFA, policy policies.FinitePolicy, alpha, gamma types.Parameter) (controller, error) {
	if policy.NActions() != q.NOutputs() {
		return controller{}, fmt.Errorf("%w: %d actions for %d outputs", ErrIncompatiblePolicy, policy.NActions(), q.NOutputs())
	}
	return controller{
		q:      q,
		policy: policy,
		alpha:  alpha,
		gamma:  gamma,
		rand:   rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}, nil
}

// Seed the source used to resample next actions
func (c *controller) Seed(seed uint64) {
	c.rand = rand.New(rand.NewSource(seed))
}

func (c *controller) Q() *fa.LFA {
	return c.q
}

func (c *controller) Policy() policies.FinitePolicy {
	return c.policy
}

func (c *controller) Alpha() float64 {
	return c.alpha.Value()
}

func (c *controller) Gamma() float64 {
	return c.gamma.Value()
}

func (c *controller) SampleBehaviour(rnd *rand.Rand, s []float64) (int, error) {
	return c.policy.Sample(rnd, s)
}

func (c *controller) PredictQ(s []float64) ([]float64, error) {
	return c.q.EvaluateState(s)
}

func (c *controller) PredictQSA(s []float64, a int) (float64, error) {
	p, err := c.q.Embed(s)
	if err != nil {
		return 0, err
	}
	return c.q.EvaluateIndex(p, a)
}

// stepSchedules advances alpha, gamma and the policy at an episode boundary
func (c *controller) stepSchedules() {
	c.alpha = c.alpha.Step()
	c.gamma = c.gamma.Step()
	c.policy.HandleTerminal()
}

// expectedValue of s under the distribution of policy
func expectedValue(q *fa.LFA, policy policies.FinitePolicy, s []float64) (float64, error) {
	values, err := q.EvaluateState(s)
	if err != nil {
		return 0, err
	}
	probs, err := policy.Probabilities(s)
	if err != nil {
		return 0, err
	}
	v := 0.0
	for i, p := range probs {
		v += p * values[i]
	}
	return v, nil
}

// tdError of the transition given the value of the next state. The
// bootstrapped term is dropped on terminal transitions.
func (c *controller) tdError(t *types.Transition, phi fa.Projection, next func() (float64, error)) (float64, error) {
	qsa, err := c.q.EvaluateIndex(phi, t.Action)
	if err != nil {
		return 0, err
	}
	target := t.Reward
	if !t.Terminated {
		v, err := next()
		if err != nil {
			return 0, err
		}
		target += c.gamma.Value() * v
	}
	return target - qsa, nil
}
