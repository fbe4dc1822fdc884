package domains

import (
	"fmt"
	"math"

	"github.com/zeu5/linear-td/spaces"
	"github.com/zeu5/linear-td/types"
)

var (
	positionBounds = spaces.NewContinuous(-1.2, 0.6)
	velocityBounds = spaces.NewContinuous(-0.07, 0.07)
)

const (
	goalPosition = 0.5
	thrust       = 0.001
	gravity      = 0.0025
)

// MountainCar is the classic under-powered car in a valley. Actions are
// 0 (push left), 1 (coast) and 2 (push right). Every step costs -1 and the
// episode ends once the car reaches the flag at x = 0.5.
type MountainCar struct {
	x float64
	v float64
}

var _ types.Environment = &MountainCar{}

func NewMountainCar() *MountainCar {
	return &MountainCar{x: -0.5, v: 0}
}

func MountainCarBuilder() types.Environment {
	return NewMountainCar()
}

func (m *MountainCar) StateSpace() spaces.Space {
	return spaces.Space{positionBounds, velocityBounds}
}

func (m *MountainCar) ActionSpace() spaces.Discrete {
	return spaces.Discrete(3)
}

func (m *MountainCar) CurrentState() []float64 {
	return []float64{m.x, m.v}
}

func (m *MountainCar) Step(a int) (*types.Transition, error) {
	if !m.ActionSpace().Contains(a) {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidAction, a)
	}
	from := m.CurrentState()

	m.v = velocityBounds.Clip(m.v + thrust*float64(a-1) - gravity*math.Cos(3*m.x))
	m.x = positionBounds.Clip(m.x + m.v)
	if m.x == positionBounds.Lo && m.v < 0 {
		m.v = 0
	}

	return &types.Transition{
		From:       from,
		To:         m.CurrentState(),
		Action:     a,
		Reward:     -1,
		Terminated: m.x >= goalPosition,
	}, nil
}
