package types

import (
	"errors"

	"github.com/zeu5/linear-td/spaces"
)

var ErrInvalidAction = errors.New("invalid action")

// Environment the agent interacts with.
// Should be deterministic given its random source so that a builder
// can reproduce it.
type Environment interface {
	// Bounds of the observed states
	StateSpace() spaces.Space
	// Number of actions available in every state
	ActionSpace() spaces.Discrete
	// State the next action is taken from
	CurrentState() []float64
	// Apply the action and report the resulting transition
	Step(int) (*Transition, error)
}

// EnvironmentBuilder creates a fresh environment for every episode.
// It must be free of side effects and repeatable.
type EnvironmentBuilder func() Environment

// Transition observed after one environment step
type Transition struct {
	From       []float64 `json:"from"`
	To         []float64 `json:"to"`
	Action     int       `json:"action"`
	Reward     float64   `json:"reward"`
	Terminated bool      `json:"terminated"`
}
