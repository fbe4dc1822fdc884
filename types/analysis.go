package types

import (
	"encoding/json"
	"log/slog"
	"os"
	"path"
	"strconv"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// EpisodeAnalyzer collects one value per episode
type EpisodeAnalyzer struct {
	extract func(*Episode) float64
	values  []float64
}

var _ Analyzer = &EpisodeAnalyzer{}

func NewEpisodeAnalyzer(extract func(*Episode) float64) *EpisodeAnalyzer {
	return &EpisodeAnalyzer{
		extract: extract,
		values:  make([]float64, 0),
	}
}

// RewardAnalyzer collects the total reward of every episode
func RewardAnalyzer() *EpisodeAnalyzer {
	return NewEpisodeAnalyzer(func(e *Episode) float64 { return e.Reward })
}

// LengthAnalyzer collects the number of steps of every episode
func LengthAnalyzer() *EpisodeAnalyzer {
	return NewEpisodeAnalyzer(func(e *Episode) float64 { return float64(e.Steps) })
}

func (a *EpisodeAnalyzer) Analyze(_ int, _ string, e *Episode) {
	a.values = append(a.values, a.extract(e))
}

// DataSet is the []float64 of collected values
func (a *EpisodeAnalyzer) DataSet() DataSet {
	return a.values
}

func (a *EpisodeAnalyzer) Reset() {
	a.values = make([]float64, 0)
}

// movingAverage over the trailing window
func movingAverage(values []float64, window int) []float64 {
	if window <= 1 {
		return values
	}
	out := make([]float64, len(values))
	for i := range values {
		from := i - window + 1
		if from < 0 {
			from = 0
		}
		out[i] = stat.Mean(values[from:i+1], nil)
	}
	return out
}

// CurvePlotter plots one line per experiment, smoothed over window episodes.
// Failures to write the plot are logged, a nil logger uses slog.Default.
func CurvePlotter(logger *slog.Logger, plotPath, yLabel, suffix string, window int) Comparator {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(plotPath, os.ModePerm); err != nil {
		logger.Warn("creating plot folder", "path", plotPath, "error", err)
	}
	return func(run int, names []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = yLabel
		for i := 0; i < len(names); i++ {
			values := movingAverage(ds[i].([]float64), window)
			points := make(plotter.XYs, len(values))
			for j, v := range values {
				points[j] = plotter.XY{
					X: float64(j),
					Y: v,
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				logger.Warn("plotting experiment", "experiment", names[i], "error", err)
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
		}
		plotFile := path.Join(plotPath, strconv.Itoa(run)+"_"+suffix+".png")
		if err := p.Save(8*vg.Inch, 8*vg.Inch, plotFile); err != nil {
			logger.Warn("saving plot", "path", plotFile, "error", err)
		}
	}
}

// SummaryComparator logs mean and standard deviation over the last episodes of every experiment
func SummaryComparator(logger *slog.Logger, label string, last int) Comparator {
	return func(run int, names []string, ds []DataSet) {
		for i, name := range names {
			values := ds[i].([]float64)
			if len(values) == 0 {
				continue
			}
			from := len(values) - last
			if last <= 0 || from < 0 {
				from = 0
			}
			mean, std := stat.MeanStdDev(values[from:], nil)
			logger.Info("summary", "run", run, "experiment", name, "metric", label, "episodes", len(values)-from, "mean", mean, "std", std)
		}
	}
}

// JSONComparator dumps the datasets of every run to savePath/<run>_<suffix>.json.
// Failures are logged, a nil logger uses slog.Default.
func JSONComparator(logger *slog.Logger, savePath, suffix string) Comparator {
	if logger == nil {
		logger = slog.Default()
	}
	return func(run int, names []string, ds []DataSet) {
		out := make(map[string]DataSet)
		for i, name := range names {
			out[name] = ds[i]
		}
		dataFile := path.Join(savePath, strconv.Itoa(run)+"_"+suffix+".json")
		bs, err := json.Marshal(out)
		if err != nil {
			logger.Warn("encoding datasets", "path", dataFile, "error", err)
			return
		}
		if err := os.WriteFile(dataFile, bs, 0644); err != nil {
			logger.Warn("writing datasets", "path", dataFile, "error", err)
		}
	}
}

// Comparators chains several comparators on the same datasets
func Comparators(cs ...Comparator) Comparator {
	return func(run int, names []string, ds []DataSet) {
		for _, c := range cs {
			c(run, names, ds)
		}
	}
}
