package types

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/zeu5/linear-td/util"
	"golang.org/x/exp/rand"
)

type TerminalReason string

const (
	// the environment reported a terminal transition
	Terminated TerminalReason = "terminated"
	// the step limit was reached first
	StepLimit TerminalReason = "step_limit"
)

// Episode is the outcome of one run of the driving loop
type Episode struct {
	Index        int            `json:"episode"`
	Reward       float64        `json:"reward"`
	Steps        int            `json:"steps"`
	Reason       TerminalReason `json:"reason"`
	UpdateErrors int            `json:"update_errors,omitempty"`
	// only populated when traces are recorded
	Trace *Trace `json:"-"`
}

func (e *Episode) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("index", e.Index),
		slog.Float64("reward", e.Reward),
		slog.Int("steps", e.Steps),
		slog.String("reason", string(e.Reason)),
		slog.Int("update_errors", e.UpdateErrors),
	)
}

// EpisodeSource produces one episode per call to Next. Sources are not
// restartable, and each call may mutate the agent.
type EpisodeSource interface {
	Next() (*Episode, error)
}

// runner is the driving loop shared by training and evaluation
type runner struct {
	agent     Agent
	builder   EnvironmentBuilder
	stepLimit int
	learn     bool
	episode   int
	rand      *rand.Rand

	// StrictUpdates aborts the episode on the first failed update
	StrictUpdates bool
	// RecordTraces keeps the transitions of every episode
	RecordTraces bool
	// Logger receives failed updates at debug level
	Logger *slog.Logger
}

func newRunner(agent Agent, builder EnvironmentBuilder, stepLimit int, learn bool) *runner {
	return &runner{
		agent:     agent,
		builder:   builder,
		stepLimit: stepLimit,
		learn:     learn,
		rand:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

// Seed makes action sampling reproducible
func (r *runner) Seed(seed uint64) {
	r.rand = rand.New(rand.NewSource(seed))
}

func (r *runner) sample(s []float64) (int, error) {
	if r.learn {
		return r.agent.SampleBehaviour(r.rand, s)
	}
	return r.agent.SampleTarget(r.rand, s)
}

func (r *runner) Next() (*Episode, error) {
	env := r.builder()
	ep := &Episode{Index: r.episode}
	r.episode += 1
	if r.RecordTraces {
		ep.Trace = NewTrace()
	}

	state := env.CurrentState()
	for r.stepLimit <= 0 || ep.Steps < r.stepLimit {
		action, err := r.sample(state)
		if err != nil {
			return ep, fmt.Errorf("episode %d, step %d: sampling action: %w", ep.Index, ep.Steps, err)
		}
		t, err := env.Step(action)
		if err != nil {
			return ep, fmt.Errorf("episode %d, step %d: %w", ep.Index, ep.Steps, err)
		}
		ep.Steps += 1
		ep.Reward += t.Reward
		if ep.Trace != nil {
			ep.Trace.Append(t)
		}

		if r.learn {
			if err := r.agent.HandleTransition(t); err != nil {
				if r.StrictUpdates {
					return ep, fmt.Errorf("episode %d, step %d: update: %w", ep.Index, ep.Steps, err)
				}
				ep.UpdateErrors += 1
				if r.Logger != nil {
					r.Logger.Debug("update failed", "episode", ep.Index, "step", ep.Steps, "error", err)
				}
			}
		}

		if t.Terminated {
			ep.Reason = Terminated
			break
		}
		state = t.To
	}
	if ep.Reason == "" {
		ep.Reason = StepLimit
	}
	if r.learn {
		r.agent.HandleTerminal()
	}
	return ep, nil
}

// SerialExperiment trains the agent, one episode per call to Next
type SerialExperiment struct {
	*runner
}

var _ EpisodeSource = &SerialExperiment{}

// NewSerialExperiment runs episodes of at most stepLimit steps (unbounded if <= 0),
// each against a freshly built environment, feeding every transition to the agent
func NewSerialExperiment(agent Agent, builder EnvironmentBuilder, stepLimit int) *SerialExperiment {
	return &SerialExperiment{newRunner(agent, builder, stepLimit, true)}
}

// Evaluation follows the agent's target policy without learning
type Evaluation struct {
	*runner
}

var _ EpisodeSource = &Evaluation{}

func NewEvaluation(agent Agent, builder EnvironmentBuilder, stepLimit int) *Evaluation {
	return &Evaluation{newRunner(agent, builder, stepLimit, false)}
}

// Run pulls episodes from the source and writes one record per episode to the logger
func Run(src EpisodeSource, episodes int, logger *slog.Logger) ([]*Episode, error) {
	results := make([]*Episode, 0, episodes)
	for i := 0; i < episodes; i++ {
		ep, err := src.Next()
		if err != nil {
			return results, err
		}
		if logger != nil {
			logger.Info("episode", "index", ep.Index, "reward", ep.Reward, "steps", ep.Steps, "reason", string(ep.Reason))
		}
		results = append(results, ep)
	}
	return results, nil
}

// RecordTrace appends the episode's trace as one JSON line of filePath
func RecordTrace(filePath string, ep *Episode) error {
	if ep.Trace == nil {
		return nil
	}
	bs, err := json.Marshal(struct {
		Episode int `json:"episode"`
		*Trace
	}{ep.Index, ep.Trace})
	if err != nil {
		return err
	}
	return util.AppendToFile(filePath, string(bs))
}
