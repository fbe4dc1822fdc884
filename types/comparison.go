package types

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

// Experiment is a named pairing of an agent and the environment it learns in
type Experiment struct {
	Name    string
	agent   AgentBuilder
	builder EnvironmentBuilder
}

// NewExperiment creates a new experiment instance. The agent builder is
// invoked once per run so that every run starts from fresh weights.
func NewExperiment(name string, agent AgentBuilder, builder EnvironmentBuilder) *Experiment {
	return &Experiment{
		Name:    name,
		agent:   agent,
		builder: builder,
	}
}

// Generic Dataset that contains information after processing the episodes
type DataSet interface{}

// Analyzer compresses the episodes of one experiment run to a DataSet
type Analyzer interface {
	// run, experiment, episode
	Analyze(int, string, *Episode)
	// Resulting dataset
	DataSet() DataSet
	// Reset the analyzer
	Reset()
}

// Comparator differentiates between different datasets with associated names
// run, experiment names, datasets
type Comparator func(int, []string, []DataSet)

func NoopComparator() Comparator {
	return func(_ int, _ []string, _ []DataSet) {}
}

// ComparisonConfig contains the configuration for the comparison
type ComparisonConfig struct {
	Runs     int `json:"runs"`     // number of runs
	Episodes int `json:"episodes"` // number of episodes
	Horizon  int `json:"horizon"`  // step limit of each episode

	RecordPath   string `json:"record_path"`   // path to store the results
	RecordTraces bool   `json:"record_traces"` // store every episode as a jsonl line

	// abort on the first failed update instead of counting it
	StrictUpdates bool `json:"strict_updates"`

	// seed of the action sampling, time based when 0
	Seed uint64 `json:"seed"`

	// live progress on the terminal
	Progress bool         `json:"-"`
	Logger   *slog.Logger `json:"-"`

	// receives one record per training episode, Logger at debug level when nil
	EpisodeLogger *slog.Logger `json:"-"`
}

// Comparison contains the different experiments to compare.
// The episodes obtained from the experiments are analyzed
// and the analyzed datasets are then compared.
type Comparison struct {
	ID          string
	Experiments []*Experiment
	// agents trained in the last run, by experiment name
	Agents map[string]Agent

	analyzers   map[string]Analyzer
	comparators map[string]Comparator
	cConfig     *ComparisonConfig
	logger      *slog.Logger
}

// NewComparison creates a comparison instance and its record folder
func NewComparison(config *ComparisonConfig) (*Comparison, error) {
	if config.RecordPath != "" {
		if err := os.MkdirAll(config.RecordPath, 0777); err != nil {
			return nil, err
		}
		if config.RecordTraces {
			if err := os.MkdirAll(path.Join(config.RecordPath, "traces"), 0777); err != nil {
				return nil, err
			}
		}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New().String()

	return &Comparison{
		ID:          id,
		Experiments: make([]*Experiment, 0),
		Agents:      make(map[string]Agent),
		analyzers:   make(map[string]Analyzer),
		comparators: make(map[string]Comparator),
		cConfig:     config,
		logger:      logger.With("comparison", id),
	}, nil
}

// AddAnalysis adds an analyzer and comparator to the comparison
func (c *Comparison) AddAnalysis(name string, analyzer Analyzer, comparator Comparator) {
	c.analyzers[name] = analyzer
	c.comparators[name] = comparator
}

// Add experiments to compare
func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

func (c *Comparison) analysisNames() []string {
	names := make([]string, 0, len(c.analyzers))
	for name := range c.analyzers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// record the configuration of the comparison
func (c *Comparison) recordConfig() error {
	if c.cConfig.RecordPath == "" {
		return nil
	}
	experiments := make([]string, 0)
	for _, e := range c.Experiments {
		experiments = append(experiments, e.Name)
	}

	bs, err := json.Marshal(struct {
		ID          string   `json:"id"`
		Experiments []string `json:"experiments"`
		Analyzers   []string `json:"analyzers"`
		*ComparisonConfig
	}{c.ID, experiments, c.analysisNames(), c.cConfig})
	if err != nil {
		return err
	}
	return os.WriteFile(path.Join(c.cConfig.RecordPath, "comparison_config.json"), bs, 0644)
}

// Run the comparison. Cancelling ctx stops it between two episodes.
func (c *Comparison) Run(ctx context.Context) error {
	if err := c.recordConfig(); err != nil {
		return fmt.Errorf("recording config: %w", err)
	}

	var progress *Progress
	if c.cConfig.Progress {
		progress = NewProgress(c.Experiments)
		defer progress.Stop()
	}

	for run := 0; run < c.cConfig.Runs; run++ {
		c.logger.Info("run started", "run", run+1, "of", c.cConfig.Runs)
		datasets := make(map[string][]DataSet)
		for name := range c.analyzers {
			datasets[name] = make([]DataSet, len(c.Experiments))
		}

		names := make([]string, len(c.Experiments))
		for i, e := range c.Experiments {
			agent, err := c.runExperiment(ctx, run, e, progress)
			if err != nil {
				return err
			}
			c.Agents[e.Name] = agent
			for name, a := range c.analyzers {
				datasets[name][i] = a.DataSet()
				a.Reset()
			}
			names[i] = e.Name
		}
		for _, name := range c.analysisNames() {
			c.comparators[name](run, names, datasets[name])
		}
	}
	return nil
}

func (c *Comparison) runExperiment(ctx context.Context, run int, e *Experiment, progress *Progress) (Agent, error) {
	agent, err := e.agent()
	if err != nil {
		return nil, fmt.Errorf("experiment %s: building agent: %w", e.Name, err)
	}
	exp := NewSerialExperiment(agent, e.builder, c.cConfig.Horizon)
	if c.cConfig.Seed != 0 {
		exp.Seed(c.cConfig.Seed + uint64(run))
	}
	exp.StrictUpdates = c.cConfig.StrictUpdates
	exp.RecordTraces = c.cConfig.RecordTraces
	exp.Logger = c.logger

	tracesFile := path.Join(c.cConfig.RecordPath, "traces", e.Name+"_"+strconv.Itoa(run)+".jsonl")
	logger := c.logger.With("experiment", e.Name, "run", run)
	episodeLog := func(ep *Episode) {
		logger.Debug("episode", "index", ep.Index, "reward", ep.Reward, "steps", ep.Steps, "reason", string(ep.Reason))
	}
	if c.cConfig.EpisodeLogger != nil {
		episodes := c.cConfig.EpisodeLogger.With("comparison", c.ID, "experiment", e.Name, "run", run, "mode", "training")
		episodeLog = func(ep *Episode) {
			episodes.Info("episode", "index", ep.Index, "reward", ep.Reward, "steps", ep.Steps, "reason", string(ep.Reason))
		}
	}
	for i := 0; i < c.cConfig.Episodes; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		ep, err := exp.Next()
		if err != nil {
			return nil, fmt.Errorf("experiment %s: %w", e.Name, err)
		}
		if c.cConfig.RecordTraces {
			if err := RecordTrace(tracesFile, ep); err != nil {
				logger.Warn("recording trace", "error", err)
			}
		}
		for _, a := range c.analyzers {
			a.Analyze(run, e.Name, ep)
		}
		episodeLog(ep)
		if progress != nil {
			progress.Update(e.Name, ep, c.cConfig.Episodes)
		}
	}
	return agent, nil
}
