package control

import (
	"github.com/zeu5/linear-td/fa"
	"github.com/zeu5/linear-td/policies"
	"github.com/zeu5/linear-td/traces"
	"github.com/zeu5/linear-td/types"
	"golang.org/x/exp/rand"
)

// SARSALambda is SARSA with an eligibility trace: every update is spread over
// the features visited earlier in the episode, decayed by lambda*gamma per step
type SARSALambda struct {
	controller
	lambda types.Parameter
	trace  *traces.Trace
}

var _ types.Agent = &SARSALambda{}

func NewSARSALambda(q *fa.LFA, policy policies.FinitePolicy, trace traces.Kind, alpha, gamma, lambda types.Parameter) (*SARSALambda, error) {
	c, err := newController(q, policy, alpha, gamma)
	if err != nil {
		return nil, err
	}
	return &SARSALambda{
		controller: c,
		lambda:     lambda,
		trace:      traces.For(trace, q),
	}, nil
}

func (l *SARSALambda) Lambda() float64 {
	return l.lambda.Value()
}

func (l *SARSALambda) Trace() *traces.Trace {
	return l.trace
}

func (l *SARSALambda) SampleTarget(rnd *rand.Rand, s []float64) (int, error) {
	return l.policy.Sample(rnd, s)
}

func (l *SARSALambda) HandleTransition(t *types.Transition) error {
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

	l.trace.Decay(l.lambda.Value() * l.gamma.Value())
	if err := l.trace.Update(phi, t.Action); err != nil {
		return err
	}
	return l.trace.Apply(l.q, l.alpha.Value()*delta)
}

// HandleTerminal clears the trace and steps the schedules
func (l *SARSALambda) HandleTerminal() {
	l.trace.Reset()
	l.stepSchedules()
	l.lambda = l.lambda.Step()
}

func (l *SARSALambda) PredictV(s []float64) (float64, error) {
	return expectedValue(l.q, l.policy, s)
}
