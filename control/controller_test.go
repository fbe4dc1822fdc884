package control

import (
	"errors"
	"math"
	"testing"

	"github.com/zeu5/linear-td/fa"
	"github.com/zeu5/linear-td/policies"
	"github.com/zeu5/linear-td/spaces"
	"github.com/zeu5/linear-td/traces"
	"github.com/zeu5/linear-td/types"
)

func newQ(nActions int) *fa.LFA {
	grid := fa.NewUniformGrid(spaces.PartitionedSpace{spaces.NewPartitioned(0, 10, 10)})
	return fa.NewLFA(grid, nActions)
}

func set(t *testing.T, q *fa.LFA, s []float64, values []float64) {
	t.Helper()
	p, err := q.Embed(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := q.Update(p, values); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func qsa(t *testing.T, q *fa.LFA, s []float64, a int) float64 {
	t.Helper()
	p, err := q.Embed(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := q.EvaluateIndex(p, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return v
}

func epsilonGreedy(t *testing.T, q *fa.LFA, eps float64) policies.FinitePolicy {
	t.Helper()
	p, err := policies.NewEpsilonGreedy(policies.NewGreedy(q), policies.NewRandom(q.NOutputs()), types.Fixed(eps))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestTerminalUpdateDelta(t *testing.T) {
	alpha := 0.3
	r := 2.0
	q0 := 5.0
	for _, gamma := range []float64{0.0, 0.9, 1.0} {
		builders := map[string]func(*fa.LFA) (types.Agent, error){
			"qlearning": func(q *fa.LFA) (types.Agent, error) {
				return NewQLearning(q, epsilonGreedy(t, q, 0.1), types.Fixed(alpha), types.Fixed(gamma))
			},
			"sarsa": func(q *fa.LFA) (types.Agent, error) {
				return NewSARSA(q, epsilonGreedy(t, q, 0.1), types.Fixed(alpha), types.Fixed(gamma))
			},
		}
		for name, build := range builders {
			q := newQ(2)
			s := []float64{1.5}
			set(t, q, s, []float64{0, q0})
			set(t, q, []float64{2.5}, []float64{100, 100})

			agent, err := build(q)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
			err = agent.HandleTransition(&types.Transition{
				From: s, To: []float64{2.5}, Action: 1, Reward: r, Terminated: true,
			})
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
			if got, expected := qsa(t, q, s, 1)-q0, alpha*(r-q0); math.Abs(got-expected) > 1e-12 {
				t.Errorf("%s gamma=%v: expected delta %v, got %v", name, gamma, expected, got)
			}
		}
	}
}

func TestQLearningBootstrapsFromMax(t *testing.T) {
	q := newQ(3)
	next := []float64{4.5}
	set(t, q, next, []float64{1, 5, 2})

	// behaviour always explores, the target is still the max
	l, err := NewQLearning(q, policies.NewRandom(3), types.Fixed(0.5), types.Fixed(0.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := []float64{0.5}
	if err := l.HandleTransition(&types.Transition{From: s, To: next, Action: 0, Reward: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := qsa(t, q, s, 0); math.Abs(v-1.75) > 1e-12 {
		t.Errorf("expected 1.75, got %v", v)
	}
	if a, _ := l.SampleTarget(nil, next); a != 1 {
		t.Errorf("expected the target policy to pick 1, got %d", a)
	}
	if v, _ := l.PredictV(next); v != 5 {
		t.Errorf("expected 5, got %v", v)
	}
}

func TestPredictVIsPolicyExpectation(t *testing.T) {
	q := newQ(3)
	l, err := NewSARSA(q, epsilonGreedy(t, q, 0.3), types.Fixed(0.1), types.Fixed(0.9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		set(t, q, []float64{float64(i) + 0.5}, []float64{float64(i), float64(2 * i), float64(-i)})
	}
	for i := 0; i < 10; i++ {
		s := []float64{float64(i) + 0.5}
		values, _ := l.PredictQ(s)
		probs, _ := l.Policy().Probabilities(s)
		expected := 0.0
		for a := range values {
			expected += probs[a] * values[a]
		}
		v, err := l.PredictV(s)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(v-expected) > 1e-12 {
			t.Errorf("state %v: expected %v, got %v", s, expected, v)
		}
	}
}

func TestExpectedSARSA(t *testing.T) {
	q := newQ(2)
	next := []float64{3.5}
	set(t, q, next, []float64{2, 4})

	l, err := NewExpectedSARSA(q, policies.NewRandom(2), types.Fixed(1.0), types.Fixed(1.0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := []float64{0.5}
	if err := l.HandleTransition(&types.Transition{From: s, To: next, Action: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := qsa(t, q, s, 1); v != 3 {
		t.Errorf("expected 3, got %v", v)
	}
}

func TestSARSALambdaCreditsEarlierStates(t *testing.T) {
	q := newQ(2)
	l, err := NewSARSALambda(q, policies.NewRandom(2), traces.Replacing,
		types.Fixed(1.0), types.Fixed(1.0), types.Fixed(0.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Seed(1)

	s0, s1, s2 := []float64{0.5}, []float64{1.5}, []float64{2.5}
	if err := l.HandleTransition(&types.Transition{From: s0, To: s1, Action: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.HandleTransition(&types.Transition{From: s1, To: s2, Action: 1, Reward: 1, Terminated: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v := qsa(t, q, s1, 1); v != 1 {
		t.Errorf("expected 1 on the last state, got %v", v)
	}
	if v := qsa(t, q, s0, 0); v != 0.5 {
		t.Errorf("expected 0.5 credited to the earlier state, got %v", v)
	}
	if v := qsa(t, q, s0, 1); v != 0 {
		t.Errorf("expected no credit to the untaken action, got %v", v)
	}

	l.HandleTerminal()
	if l.Trace().At(1, 1) != 0 || l.Trace().At(0, 0) != 0 {
		t.Errorf("expected the trace to be reset")
	}
}

func TestSchedulesStepOnTerminal(t *testing.T) {
	q := newQ(2)
	l, err := NewSARSALambda(q, policies.NewRandom(2), traces.Accumulating,
		types.Exponential(1.0, 0, 0.5), types.Fixed(0.9), types.Exponential(0.8, 0, 0.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.HandleTerminal()
	if l.Alpha() != 0.5 || l.Gamma() != 0.9 || l.Lambda() != 0.4 {
		t.Errorf("unexpected schedules alpha=%v gamma=%v lambda=%v", l.Alpha(), l.Gamma(), l.Lambda())
	}
}

func TestIncompatiblePolicy(t *testing.T) {
	q := newQ(2)
	if _, err := NewSARSA(q, policies.NewRandom(3), types.Fixed(0.1), types.Fixed(0.9)); !errors.Is(err, ErrIncompatiblePolicy) {
		t.Errorf("expected incompatible policy, got %v", err)
	}
}

func TestUpdateErrorLeavesWeights(t *testing.T) {
	q := newQ(2)
	l, _ := NewQLearning(q, policies.NewRandom(2), types.Fixed(0.5), types.Fixed(0.9))
	err := l.HandleTransition(&types.Transition{From: []float64{0.5}, To: []float64{20}, Action: 0, Reward: 1})
	if !errors.Is(err, fa.ErrOutOfBounds) {
		t.Errorf("expected out of bounds, got %v", err)
	}
	if v := qsa(t, q, []float64{0.5}, 0); v != 0 {
		t.Errorf("expected untouched weights, got %v", v)
	}
}
