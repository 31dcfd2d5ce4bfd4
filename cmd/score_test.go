package cmd

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeProbFixture(t *testing.T, dir, base string, n int, entries map[string]float64) {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("%s.%d", base, n))
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture %s: %v", path, err)
	}
	defer f.Close()
	for ngram, p := range entries {
		fmt.Fprintf(f, "%s\t%.10e\n", ngram, p)
	}
}

func TestLoadScoreAndEval(t *testing.T) {
	dir := t.TempDir()
	writeProbFixture(t, dir, "model", 2, map[string]float64{"th": 0.5})
	writeProbFixture(t, dir, "model", 3, map[string]float64{"the": 0.25})

	score, err := LoadScore(filepath.Join(dir, "model"), 3)
	if err != nil {
		t.Fatalf("LoadScore: %v", err)
	}
	if score.N() != 3 {
		t.Errorf("N() = %d, want 3", score.N())
	}

	got := score.Eval("them")

	priorLog := math.Log(0.5)
	condLog := math.Log(0.25) - priorLog
	scoreZero := math.Log((1 - 0.25) / (math.Pow(26, 3) - 1))
	want := priorLog + condLog + scoreZero

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Eval(\"them\") = %v, want %v", got, want)
	}
}

func TestLoadScoreMissingPriorForCond(t *testing.T) {
	dir := t.TempDir()
	writeProbFixture(t, dir, "model", 2, map[string]float64{"zz": 0.5})
	writeProbFixture(t, dir, "model", 3, map[string]float64{"the": 0.25})

	if _, err := LoadScore(filepath.Join(dir, "model"), 3); err == nil {
		t.Error("expected an error when a conditional n-gram has no matching prior")
	}
}

func TestScoreEvalPanicsOnShortInput(t *testing.T) {
	dir := t.TempDir()
	writeProbFixture(t, dir, "model", 2, map[string]float64{"th": 1.0})
	writeProbFixture(t, dir, "model", 3, map[string]float64{"the": 1.0})

	score, err := LoadScore(filepath.Join(dir, "model"), 3)
	if err != nil {
		t.Fatalf("LoadScore: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected Eval to panic on input no longer than n")
		}
	}()
	score.Eval("the")
}
