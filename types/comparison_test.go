package types

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path"
	"strings"
	"testing"
)

func TestComparisonRun(t *testing.T) {
	dir := t.TempDir()
	c, err := NewComparison(&ComparisonConfig{
		Runs:         2,
		Episodes:     3,
		Horizon:      10,
		RecordPath:   dir,
		RecordTraces: true,
		Seed:         1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	builds := 0
	c.AddExperiment(NewExperiment("right", func() (Agent, error) {
		builds += 1
		return &countingAgent{action: 1}, nil
	}, chainBuilder(4)))

	compared := make([][]float64, 0)
	c.AddAnalysis("reward", RewardAnalyzer(), func(_ int, names []string, ds []DataSet) {
		if len(names) != 1 || names[0] != "right" {
			t.Errorf("unexpected names %v", names)
		}
		compared = append(compared, ds[0].([]float64))
	})
	c.AddAnalysis("length", LengthAnalyzer(), JSONComparator(nil, dir, "length"))

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if builds != 2 {
		t.Errorf("expected one agent per run, got %d", builds)
	}
	if len(compared) != 2 {
		t.Fatalf("expected 2 comparisons, got %d", len(compared))
	}
	for _, rewards := range compared {
		if len(rewards) != 3 {
			t.Errorf("expected 3 rewards, got %d", len(rewards))
		}
		for _, r := range rewards {
			if r != -4 {
				t.Errorf("expected reward -4, got %v", r)
			}
		}
	}
	if c.Agents["right"] == nil {
		t.Errorf("expected the trained agent to be kept")
	}

	for _, f := range []string{"comparison_config.json", "0_length.json", "1_length.json", "traces/right_0.jsonl"} {
		if _, err := os.Stat(path.Join(dir, f)); err != nil {
			t.Errorf("expected %s: %v", f, err)
		}
	}
}

func TestComparisonCancelled(t *testing.T) {
	c, err := NewComparison(&ComparisonConfig{Runs: 1, Episodes: 5, Horizon: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.AddExperiment(NewExperiment("right", func() (Agent, error) {
		return &countingAgent{action: 1}, nil
	}, chainBuilder(2)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
}

func TestComparatorWriteFailuresAreLogged(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(buf, nil))

	missing := path.Join(t.TempDir(), "missing")
	JSONComparator(logger, missing, "reward")(0, []string{"a"}, []DataSet{[]float64{1, 2}})
	if !strings.Contains(buf.String(), "writing datasets") {
		t.Errorf("expected the write failure to be logged, got %q", buf.String())
	}

	buf.Reset()
	blocked := path.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocked, []byte("x"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	curves := CurvePlotter(logger, path.Join(blocked, "plots"), "Reward", "reward", 1)
	if !strings.Contains(buf.String(), "creating plot folder") {
		t.Errorf("expected the folder failure to be logged, got %q", buf.String())
	}
	curves(0, []string{"a"}, []DataSet{[]float64{1, 2, 3}})
	if !strings.Contains(buf.String(), "saving plot") {
		t.Errorf("expected the save failure to be logged, got %q", buf.String())
	}
}

func TestMovingAverage(t *testing.T) {
	avg := movingAverage([]float64{2, 4, 6, 8}, 2)
	expected := []float64{2, 3, 5, 7}
	for i := range expected {
		if avg[i] != expected[i] {
			t.Errorf("index %d: expected %v, got %v", i, expected[i], avg[i])
		}
	}
}
