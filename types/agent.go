package types

import "golang.org/x/exp/rand"

// Controller selects actions
type Controller interface {
	// Action of the policy being learned, used when evaluating
	SampleTarget(*rand.Rand, []float64) (int, error)
	// Action of the policy generating experience, used when training
	SampleBehaviour(*rand.Rand, []float64) (int, error)
}

// OnlineLearner consumes transitions one at a time
type OnlineLearner interface {
	// Apply the update rule for one transition
	HandleTransition(*Transition) error
	// Called once at every episode boundary, steps the parameter schedules
	HandleTerminal()
}

// Agent is what the experiment runner drives
type Agent interface {
	Controller
	OnlineLearner
}

// AgentBuilder creates a fresh agent, used to start every run of a comparison from scratch
type AgentBuilder func() (Agent, error)

type ValuePredictor interface {
	PredictV([]float64) (float64, error)
}

type ActionValuePredictor interface {
	PredictQ([]float64) ([]float64, error)
	PredictQSA([]float64, int) (float64, error)
}
