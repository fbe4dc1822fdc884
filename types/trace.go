package types

// Trace of an episode as the sequence of observed transitions
type Trace struct {
	Transitions []*Transition `json:"transitions"`
}

func NewTrace() *Trace {
	return &Trace{
		Transitions: make([]*Transition, 0),
	}
}

func (t *Trace) Append(tr *Transition) {
	t.Transitions = append(t.Transitions, tr)
}

func (t *Trace) Len() int {
	return len(t.Transitions)
}

func (t *Trace) Get(i int) (*Transition, bool) {
	if i < 0 || i >= len(t.Transitions) {
		return nil, false
	}
	return t.Transitions[i], true
}

func (t *Trace) Last() (*Transition, bool) {
	return t.Get(len(t.Transitions) - 1)
}

func (t *Trace) Slice(from, to int) *Trace {
	sliced := NewTrace()
	for i := from; i < to && i < len(t.Transitions); i++ {
		sliced.Append(t.Transitions[i])
	}
	return sliced
}

// Return of the episode, discounted by gamma
func (t *Trace) Return(gamma float64) float64 {
	g := 0.0
	for i := len(t.Transitions) - 1; i >= 0; i-- {
		g = t.Transitions[i].Reward + gamma*g
	}
	return g
}
