package policies

import (
	"math"

	"github.com/zeu5/linear-td/fa"
	"github.com/zeu5/linear-td/types"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Softmax samples actions from the Boltzmann distribution over q
type Softmax struct {
	q           *fa.LFA
	temperature types.Parameter
}

var _ FinitePolicy = &Softmax{}

func NewSoftmax(q *fa.LFA, temperature types.Parameter) *Softmax {
	return &Softmax{
		q:           q,
		temperature: temperature,
	}
}

func (s *Softmax) NActions() int {
	return s.q.NOutputs()
}

func (s *Softmax) Probabilities(state []float64) ([]float64, error) {
	vals, err := s.q.EvaluateState(state)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, ErrNoAction
	}
	// shifted by the max for stability
	max := floats.Max(vals)
	for i, v := range vals {
		vals[i] = math.Exp((v - max) / s.temperature.Value())
	}
	floats.Scale(1/floats.Sum(vals), vals)
	return vals, nil
}

func (s *Softmax) Probability(state []float64, a int) (float64, error) {
	return probabilityFromVector(s, state, a)
}

func (s *Softmax) Sample(rnd *rand.Rand, state []float64) (int, error) {
	weights, err := s.Probabilities(state)
	if err != nil {
		return 0, err
	}
	i, ok := sampleuv.NewWeighted(weights, rnd).Take()
	if !ok {
		return 0, ErrNoAction
	}
	return i, nil
}

func (s *Softmax) HandleTerminal() {
	s.temperature = s.temperature.Step()
}
