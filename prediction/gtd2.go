// Package prediction estimates state values of a target policy from
// experience generated by a behaviour policy.
package prediction

import (
	"errors"
	"fmt"
	"time"

	"github.com/zeu5/linear-td/fa"
	"github.com/zeu5/linear-td/policies"
	"github.com/zeu5/linear-td/types"
	"golang.org/x/exp/rand"
)

var ErrIncompatibleApproximators = errors.New("approximators do not share the same projection geometry")

// GTD2 is gradient TD prediction with two linear approximators over the
// same features: theta estimates the value and w estimates the expected
// TD error given the features.
//
//	delta  = r + gamma*theta.phi' - theta.phi
//	w     += beta * (delta - w.phi) * phi
//	theta += alpha * (w.phi) * (phi - gamma*phi')
//
// phi' is zero on terminal transitions.
type GTD2 struct {
	theta     *fa.LFA
	w         *fa.LFA
	behaviour policies.Policy

	alpha types.Parameter
	beta  types.Parameter
	gamma types.Parameter

	// TieBetaToAlpha replaces beta at every episode boundary with alpha's
	// schedule stepped once past alpha's new value, instead of stepping
	// beta's own schedule
	TieBetaToAlpha bool

	rand *rand.Rand
}

var _ types.Agent = &GTD2{}

// NewGTD2 fails if theta and w do not project states the same way or are not
// single output
func NewGTD2(theta, w *fa.LFA, behaviour policies.Policy, alpha, beta, gamma types.Parameter) (*GTD2, error) {
	if !theta.Projector().Equivalent(w.Projector()) {
		return nil, fmt.Errorf("%w: %s and %s", ErrIncompatibleApproximators, theta.Projector(), w.Projector())
	}
	if theta.NOutputs() != 1 || w.NOutputs() != 1 {
		return nil, fmt.Errorf("%w: expected single output approximators, got %d and %d", ErrIncompatibleApproximators, theta.NOutputs(), w.NOutputs())
	}
	return &GTD2{
		theta:     theta,
		w:         w,
		behaviour: behaviour,
		alpha:     alpha,
		beta:      beta,
		gamma:     gamma,
		rand:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}, nil
}

func (g *GTD2) Seed(seed uint64) {
	g.rand = rand.New(rand.NewSource(seed))
}

func (g *GTD2) Theta() *fa.LFA {
	return g.theta
}

func (g *GTD2) W() *fa.LFA {
	return g.w
}

func (g *GTD2) Alpha() float64 {
	return g.alpha.Value()
}

func (g *GTD2) Beta() float64 {
	return g.beta.Value()
}

// SampleTarget and SampleBehaviour both follow the behaviour policy,
// GTD2 only predicts
func (g *GTD2) SampleTarget(rnd *rand.Rand, s []float64) (int, error) {
	return g.behaviour.Sample(rnd, s)
}

func (g *GTD2) SampleBehaviour(rnd *rand.Rand, s []float64) (int, error) {
	return g.behaviour.Sample(rnd, s)
}

func (g *GTD2) HandleTransition(t *types.Transition) error {
	phi, err := g.theta.Embed(t.From)
	if err != nil {
		return err
	}
	phiNext := fa.Zeros(phi.Size())
	if !t.Terminated {
		phiNext, err = g.theta.Embed(t.To)
		if err != nil {
			return err
		}
	}

	v, err := g.theta.EvaluateIndex(phi, 0)
	if err != nil {
		return err
	}
	vNext, err := g.theta.EvaluateIndex(phiNext, 0)
	if err != nil {
		return err
	}
	estimate, err := g.w.EvaluateIndex(phi, 0)
	if err != nil {
		return err
	}
	gamma := g.gamma.Value()
	delta := t.Reward + gamma*vNext - v

	direction, err := phi.Sub(phiNext, gamma)
	if err != nil {
		return err
	}
	if err := g.w.UpdateIndex(phi, 0, g.beta.Value()*(delta-estimate)); err != nil {
		return err
	}
	return g.theta.UpdateIndex(direction, 0, g.alpha.Value()*estimate)
}

func (g *GTD2) HandleTerminal() {
	g.alpha = g.alpha.Step()
	if g.TieBetaToAlpha {
		g.beta = g.alpha.Step()
	} else {
		g.beta = g.beta.Step()
	}
	g.gamma = g.gamma.Step()
	g.behaviour.HandleTerminal()
}

func (g *GTD2) PredictV(s []float64) (float64, error) {
	p, err := g.theta.Embed(s)
	if err != nil {
		return 0, err
	}
	return g.theta.EvaluateIndex(p, 0)
}
