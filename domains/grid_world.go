// Package domains holds the environments used by the benchmarks
package domains

import (
	"fmt"

	"github.com/zeu5/linear-td/spaces"
	"github.com/zeu5/linear-td/types"
)

type Movement int

const (
	MovementUp Movement = iota
	MovementDown
	MovementLeft
	MovementRight
)

func (m Movement) String() string {
	switch m {
	case MovementUp:
		return "Up"
	case MovementDown:
		return "Down"
	case MovementLeft:
		return "Left"
	case MovementRight:
		return "Right"
	}
	return fmt.Sprintf("Movement(%d)", int(m))
}

type Position struct {
	I int
	J int
}

func (p Position) Eq(other Position) bool {
	return p.I == other.I && p.J == other.J
}

func (p Position) state() []float64 {
	return []float64{float64(p.I), float64(p.J)}
}

// Door moves the agent from one cell to another as soon as it steps on From
type Door struct {
	From Position
	To   Position
}

// GridWorld starts in (0, 0) and ends in (Height-1, Width-1). Every step
// costs -1, moving into a wall leaves the agent in place.
type GridWorld struct {
	Height int
	Width  int
	CurPos Position
	Doors  []Door
}

var _ types.Environment = &GridWorld{}

func NewGridWorld(height, width int, doors ...Door) *GridWorld {
	return &GridWorld{
		Height: height,
		Width:  width,
		CurPos: Position{0, 0},
		Doors:  doors,
	}
}

// GridWorldBuilder builds a fresh grid for every episode
func GridWorldBuilder(height, width int, doors ...Door) types.EnvironmentBuilder {
	return func() types.Environment {
		return NewGridWorld(height, width, doors...)
	}
}

func (g *GridWorld) Goal() Position {
	return Position{g.Height - 1, g.Width - 1}
}

func (g *GridWorld) StateSpace() spaces.Space {
	return spaces.Space{
		spaces.NewContinuous(0, float64(g.Height-1)),
		spaces.NewContinuous(0, float64(g.Width-1)),
	}
}

// Partitioned has one bin per cell
func (g *GridWorld) Partitioned() spaces.PartitionedSpace {
	return spaces.PartitionedSpace{
		spaces.NewPartitioned(0, float64(g.Height-1), g.Height),
		spaces.NewPartitioned(0, float64(g.Width-1), g.Width),
	}
}

func (g *GridWorld) ActionSpace() spaces.Discrete {
	return spaces.Discrete(4)
}

func (g *GridWorld) CurrentState() []float64 {
	return g.CurPos.state()
}

func (g *GridWorld) Step(a int) (*types.Transition, error) {
	if !g.ActionSpace().Contains(a) {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidAction, a)
	}
	from := g.CurPos
	newPos := from

	switch Movement(a) {
	case MovementUp:
		newPos.I = min(g.Height-1, from.I+1)
	case MovementDown:
		newPos.I = max(0, from.I-1)
	case MovementLeft:
		newPos.J = max(0, from.J-1)
	case MovementRight:
		newPos.J = min(g.Width-1, from.J+1)
	}
	for _, d := range g.Doors {
		if d.From.Eq(newPos) {
			newPos = d.To
			break
		}
	}
	g.CurPos = newPos

	return &types.Transition{
		From:       from.state(),
		To:         newPos.state(),
		Action:     a,
		Reward:     -1,
		Terminated: newPos.Eq(g.Goal()),
	}, nil
}
