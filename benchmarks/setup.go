package benchmarks

import (
	"fmt"

	"github.com/zeu5/linear-td/control"
	"github.com/zeu5/linear-td/domains"
	"github.com/zeu5/linear-td/fa"
	"github.com/zeu5/linear-td/policies"
	"github.com/zeu5/linear-td/prediction"
	"github.com/zeu5/linear-td/spaces"
	"github.com/zeu5/linear-td/traces"
	"github.com/zeu5/linear-td/types"
)

var (
	gridHeight int
	gridWidth  int

	lambda       float64
	accumulating bool

	beta    float64
	tieBeta bool
)

// Domain is an environment builder with the geometry needed to build projectors
type Domain struct {
	Name     string
	Builder  types.EnvironmentBuilder
	Space    spaces.Space
	Cells    spaces.PartitionedSpace
	NActions int
}

func getDomain(name string) (*Domain, error) {
	switch name {
	case "grid":
		g := domains.NewGridWorld(gridHeight, gridWidth)
		return &Domain{
			Name:     name,
			Builder:  domains.GridWorldBuilder(gridHeight, gridWidth),
			Space:    g.StateSpace(),
			Cells:    g.Partitioned(),
			NActions: g.ActionSpace().Card(),
		}, nil
	case "mountain-car":
		m := domains.NewMountainCar()
		return &Domain{
			Name:     name,
			Builder:  domains.MountainCarBuilder,
			Space:    m.StateSpace(),
			NActions: m.ActionSpace().Card(),
		}, nil
	}
	return nil, fmt.Errorf("unknown domain %q", name)
}

// partitioned space of the grid and tile bases, the grid world has one bin per cell
func (d *Domain) partitioned() spaces.PartitionedSpace {
	if d.Cells != nil {
		return d.Cells
	}
	return d.Space.Partitioned(density)
}

func getProjector(name string, d *Domain) (fa.Projector, error) {
	switch name {
	case "grid":
		return fa.NewUniformGrid(d.partitioned()), nil
	case "tiles":
		return fa.NewTileCoding(d.partitioned(), tilings, seed), nil
	case "fourier":
		return fa.NewFourier(d.Space, order), nil
	}
	return nil, fmt.Errorf("unknown basis %q", name)
}

type seeder interface {
	Seed(uint64)
}

// agentBuilder creates the agent of the named algorithm with fresh weights
func agentBuilder(algorithm string, d *Domain) types.AgentBuilder {
	return func() (types.Agent, error) {
		projector, err := getProjector(basis, d)
		if err != nil {
			return nil, err
		}
		agent, err := newAgent(algorithm, projector, d.NActions)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", algorithm, err)
		}
		if s, ok := agent.(seeder); ok && seed != 0 {
			s.Seed(seed)
		}
		return agent, nil
	}
}

func newAgent(algorithm string, projector fa.Projector, nActions int) (types.Agent, error) {
	a := types.Fixed(alpha)
	g := types.Fixed(gamma)

	if algorithm == "gtd2" {
		theta := fa.NewLFA(projector, 1)
		w := fa.NewLFA(projector, 1)
		gtd, err := prediction.NewGTD2(theta, w, policies.NewRandom(nActions), a, types.Fixed(beta), g)
		if err != nil {
			return nil, err
		}
		gtd.TieBetaToAlpha = tieBeta
		return gtd, nil
	}

	q := fa.NewLFA(projector, nActions)
	policy, err := policies.NewEpsilonGreedy(policies.NewGreedy(q), policies.NewRandom(nActions), types.Fixed(epsilon))
	if err != nil {
		return nil, err
	}
	switch algorithm {
	case "qlearning":
		return control.NewQLearning(q, policy, a, g)
	case "sarsa":
		return control.NewSARSA(q, policy, a, g)
	case "expected-sarsa":
		return control.NewExpectedSARSA(q, policy, a, g)
	case "sarsa-lambda":
		kind := traces.Replacing
		if accumulating {
			kind = traces.Accumulating
		}
		return control.NewSARSALambda(q, policy, kind, a, g, types.Fixed(lambda))
	}
	return nil, fmt.Errorf("unknown algorithm %q", algorithm)
}

// weightsOf returns the approximators of the agent to persist, by name
func weightsOf(agent types.Agent) map[string]*fa.LFA {
	switch a := agent.(type) {
	case *prediction.GTD2:
		return map[string]*fa.LFA{"theta": a.Theta(), "w": a.W()}
	case interface{ Q() *fa.LFA }:
		return map[string]*fa.LFA{"q": a.Q()}
	}
	return map[string]*fa.LFA{}
}
