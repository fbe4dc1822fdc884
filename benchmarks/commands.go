package benchmarks

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"

	"github.com/spf13/cobra"
	"github.com/zeu5/linear-td/store"
	"github.com/zeu5/linear-td/types"
)

var controlAlgorithms = []string{"qlearning", "sarsa", "expected-sarsa", "sarsa-lambda"}

// loggers returns a text logger on stderr and a JSON logger writing one
// record per episode to <save>/episodes.jsonl
func loggers() (*slog.Logger, *slog.Logger, func(), error) {
	console := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if progress {
		console = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	f, err := os.OpenFile(path.Join(saveFile, "episodes.jsonl"), os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, nil, nil, err
	}
	return console, slog.New(slog.NewJSONHandler(f, nil)), func() { f.Close() }, nil
}

func getStore() (store.WeightStore, func(), error) {
	if redisAddr != "" {
		s := store.NewRedisStore(redisAddr, "linear-td:")
		return s, func() { s.Close() }, nil
	}
	s, err := store.NewFileStore(path.Join(saveFile, "weights"))
	return s, func() {}, err
}

// RunAlgorithms trains every algorithm on the configured domain, compares
// their learning curves, evaluates the trained agents and stores their weights
func RunAlgorithms(ctx context.Context, algorithms ...string) error {
	if err := os.MkdirAll(saveFile, 0777); err != nil {
		return err
	}
	console, episodeLog, closeLog, err := loggers()
	if err != nil {
		return err
	}
	defer closeLog()

	d, err := getDomain(domain)
	if err != nil {
		return err
	}

	c, err := types.NewComparison(&types.ComparisonConfig{
		Runs:       runs,
		Episodes:   episodes,
		Horizon:    horizon,
		RecordPath: saveFile,

		RecordTraces:  recordTraces,
		StrictUpdates: strict,
		Seed:          seed,
		Progress:      progress,
		Logger:        console,
		EpisodeLogger: episodeLog,
	})
	if err != nil {
		return err
	}
	stopProfiling, err := startProfiling()
	if err != nil {
		return err
	}
	defer stopProfiling()

	window := episodes / 50
	c.AddAnalysis("Reward", types.RewardAnalyzer(), types.Comparators(
		types.CurvePlotter(console, path.Join(saveFile, "plots"), "Reward", "reward", window),
		types.SummaryComparator(console, "reward", window),
		types.JSONComparator(console, saveFile, "reward"),
	))
	c.AddAnalysis("Length", types.LengthAnalyzer(), types.Comparators(
		types.CurvePlotter(console, path.Join(saveFile, "plots"), "Steps", "length", window),
		types.SummaryComparator(console, "length", window),
	))
	for _, a := range algorithms {
		c.AddExperiment(types.NewExperiment(a, agentBuilder(a, d), d.Builder))
	}

	console.Info("starting comparison", "id", c.ID, "domain", d.Name, "basis", basis, "algorithms", algorithms)
	if err := c.Run(ctx); err != nil {
		return err
	}

	s, closeStore, err := getStore()
	if err != nil {
		return err
	}
	defer closeStore()

	for _, e := range c.Experiments {
		agent := c.Agents[e.Name]
		eval := types.NewEvaluation(agent, d.Builder, horizon)
		if seed != 0 {
			eval.Seed(seed)
		}
		result, err := types.Run(eval, 1, episodeLog.With("experiment", e.Name, "mode", "evaluation"))
		if err != nil {
			return fmt.Errorf("evaluating %s: %w", e.Name, err)
		}
		console.Info("solution", "experiment", e.Name, "episode", result[0])

		for name, q := range weightsOf(agent) {
			key := c.ID + ":" + e.Name + ":" + name
			if err := store.SaveLFA(ctx, s, key, q); err != nil {
				return fmt.Errorf("saving %s: %w", key, err)
			}
			console.Info("saved weights", "key", key)
		}
	}
	return nil
}

func runCommand(algorithms ...string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		return RunAlgorithms(ctx, algorithms...)
	}
}

func withDomainFlags(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().IntVar(&gridHeight, "height", envInt("LTD_GRID_HEIGHT", 10), "Height of the grid world")
	cmd.Flags().IntVar(&gridWidth, "width", envInt("LTD_GRID_WIDTH", 10), "Width of the grid world")
	return cmd
}

func QLearningCommand() *cobra.Command {
	return withDomainFlags(&cobra.Command{
		Use:   "qlearning",
		Short: "Train Q-learning with an epsilon greedy behaviour",
		RunE:  runCommand("qlearning"),
	})
}

func SARSACommand() *cobra.Command {
	return withDomainFlags(&cobra.Command{
		Use:   "sarsa",
		Short: "Train SARSA with an epsilon greedy policy",
		RunE:  runCommand("sarsa"),
	})
}

func ExpectedSARSACommand() *cobra.Command {
	return withDomainFlags(&cobra.Command{
		Use:   "expected-sarsa",
		Short: "Train expected SARSA with an epsilon greedy policy",
		RunE:  runCommand("expected-sarsa"),
	})
}

func withLambdaFlags(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().Float64Var(&lambda, "lambda", envFloat("LTD_LAMBDA", 0.7), "Trace decay")
	cmd.Flags().BoolVar(&accumulating, "accumulating", false, "Use accumulating instead of replacing traces")
	return cmd
}

func SARSALambdaCommand() *cobra.Command {
	return withLambdaFlags(withDomainFlags(&cobra.Command{
		Use:   "sarsa-lambda",
		Short: "Train SARSA(lambda) with an eligibility trace",
		RunE:  runCommand("sarsa-lambda"),
	}))
}

func GTD2Command() *cobra.Command {
	cmd := withDomainFlags(&cobra.Command{
		Use:   "gtd2",
		Short: "Predict the value of the random policy with GTD2",
		RunE:  runCommand("gtd2"),
	})
	cmd.Flags().Float64Var(&beta, "beta", envFloat("LTD_BETA", 0.01), "Learning rate of the auxiliary weights")
	cmd.Flags().BoolVar(&tieBeta, "tie-beta", false, "Step beta with the schedule of alpha")
	return cmd
}

func CompareCommand() *cobra.Command {
	return withLambdaFlags(withDomainFlags(&cobra.Command{
		Use:   "compare",
		Short: "Compare all the control algorithms on the same domain",
		RunE:  runCommand(controlAlgorithms...),
	}))
}
