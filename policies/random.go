package policies

import "golang.org/x/exp/rand"

// Random picks every action with the same probability, whatever the state
type Random struct {
	n int
}

var _ FinitePolicy = &Random{}

func NewRandom(nActions int) *Random {
	return &Random{n: nActions}
}

func (r *Random) NActions() int {
	return r.n
}

func (r *Random) Sample(rnd *rand.Rand, _ []float64) (int, error) {
	if r.n <= 0 {
		return 0, ErrNoAction
	}
	return rnd.Intn(r.n), nil
}

func (r *Random) Probability(_ []float64, a int) (float64, error) {
	if err := checkAction(r.n, a); err != nil {
		return 0, err
	}
	return 1 / float64(r.n), nil
}

func (r *Random) Probabilities(_ []float64) ([]float64, error) {
	probs := make([]float64, r.n)
	for i := range probs {
		probs[i] = 1 / float64(r.n)
	}
	return probs, nil
}

func (r *Random) HandleTerminal() {}
