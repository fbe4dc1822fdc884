package benchmarks

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	episodes int
	horizon  int
	saveFile string
	runs     int
	seed     uint64

	alpha   float64
	gamma   float64
	epsilon float64

	domain    string
	basis     string
	density   int
	tilings   int
	order     int
	redisAddr string

	progress     bool
	recordTraces bool
	strict       bool
	cpuprofile   string
	memprofile   string
)

// defaults of the flags can be set with LTD_* variables, also read from .env
func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envUint(key string, def uint64) uint64 {
	if v, err := strconv.ParseUint(os.Getenv(key), 10, 64); err == nil {
		return v
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return def
}

func GetRootCommand() *cobra.Command {
	_ = godotenv.Load(".env")

	rootCommand := &cobra.Command{
		Use:          "linear-td",
		Short:        "Linear temporal-difference learning benchmarks",
		SilenceUsage: true,
	}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", envInt("LTD_EPISODES", 1000), "Number of episodes to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", envInt("LTD_HORIZON", 1000), "Horizon of each episode")
	rootCommand.PersistentFlags().StringVarP(&saveFile, "save", "s", envString("LTD_SAVE", "results"), "Save the result data in the specified folder")
	rootCommand.PersistentFlags().IntVar(&runs, "runs", envInt("LTD_RUNS", 1), "Number of experiment runs")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", envUint("LTD_SEED", 0), "Seed of the random sources, time based when 0")

	rootCommand.PersistentFlags().Float64Var(&alpha, "alpha", envFloat("LTD_ALPHA", 0.1), "Learning rate")
	rootCommand.PersistentFlags().Float64Var(&gamma, "gamma", envFloat("LTD_GAMMA", 0.99), "Discount factor")
	rootCommand.PersistentFlags().Float64Var(&epsilon, "epsilon", envFloat("LTD_EPSILON", 0.1), "Exploration rate of the epsilon greedy policy")

	rootCommand.PersistentFlags().StringVar(&domain, "domain", envString("LTD_DOMAIN", "grid"), "Environment: grid or mountain-car")
	rootCommand.PersistentFlags().StringVar(&basis, "basis", envString("LTD_BASIS", "grid"), "Projector: grid, tiles or fourier")
	rootCommand.PersistentFlags().IntVar(&density, "density", envInt("LTD_DENSITY", 10), "Bins per dimension of the grid and tile bases")
	rootCommand.PersistentFlags().IntVar(&tilings, "tilings", envInt("LTD_TILINGS", 8), "Number of tilings of the tile basis")
	rootCommand.PersistentFlags().IntVar(&order, "order", envInt("LTD_ORDER", 3), "Order of the fourier basis")
	rootCommand.PersistentFlags().StringVar(&redisAddr, "redis", envString("LTD_REDIS_ADDR", ""), "Store the learned weights in redis at this address instead of the save folder")

	rootCommand.PersistentFlags().BoolVar(&progress, "progress", false, "Print live progress")
	rootCommand.PersistentFlags().BoolVar(&recordTraces, "traces", false, "Record the transitions of every episode")
	rootCommand.PersistentFlags().BoolVar(&strict, "strict", false, "Abort on the first failed update")
	rootCommand.PersistentFlags().StringVar(&cpuprofile, "cpuprofile", "", "Write a cpu profile to this file in the save folder")
	rootCommand.PersistentFlags().StringVar(&memprofile, "memprofile", "", "Write a memory profile to this file in the save folder")

	// adding the subcommands here
	rootCommand.AddCommand(QLearningCommand())
	rootCommand.AddCommand(SARSACommand())
	rootCommand.AddCommand(SARSALambdaCommand())
	rootCommand.AddCommand(ExpectedSARSACommand())
	rootCommand.AddCommand(GTD2Command())
	rootCommand.AddCommand(CompareCommand())
	return rootCommand
}
