/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"
)

var (
	solveGenerations int
	solveMuteRate    int
	solveNgramLen    int
	solveMaxThreads  int
	solvePopSize     int
	solveNumTrials   int
	solveScoreBase   string
	solveSeed        int64
)

// solveCmd drives the parallel genetic-algorithm solver, replacing the
// teacher's single-population hillclimbCmd with the multi-trial GA from
// gen.c/crypto.c. Grounded on main.c's option table and cryptoSolve/
// cryptoPrint's output.
var solveCmd = &cobra.Command{
	Use:   "solve <cryptogram file> [<solution file>]",
	Short: "Solve a monoalphabetic substitution cryptogram with a parallel genetic algorithm",
	Long: `solve loads a ciphertext, seeds likely vowel positions with
Sukhotin's algorithm, and runs a fixed number of independent GA trials
across a worker pool, each evolving a population of candidate keys
under an n-gram log-likelihood fitness model built by "alkindus ngrams".`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runSolve,
}

func init() {
	defaultThreads := cpuid.CPU.LogicalCores
	if defaultThreads < 1 {
		defaultThreads = 2
	}

	solveCmd.Flags().IntVarP(&solveGenerations, "max-generations", "g", 150, "maximum number of generations per trial")
	solveCmd.Flags().IntVarP(&solveMuteRate, "mutation-rate", "m", 3, "percent chance of mutation")
	solveCmd.Flags().IntVarP(&solveNgramLen, "ngram-length", "n", 3, "n-gram length of the probability model")
	solveCmd.Flags().IntVarP(&solveMaxThreads, "max-threads", "p", defaultThreads, "maximum number of concurrent trial workers (default: detected logical core count)")
	solveCmd.Flags().IntVarP(&solvePopSize, "population-size", "s", 100, "size of each trial's population")
	solveCmd.Flags().IntVarP(&solveNumTrials, "num-trials", "t", 5, "number of independent GA trials")
	solveCmd.Flags().StringVarP(&solveScoreBase, "model", "o", "ngramscores", "base path of the probability tables produced by \"alkindus ngrams\"")
	solveCmd.Flags().Int64Var(&solveSeed, "seed", 0, "base RNG seed for reproducible trials (default: derived from a high-entropy source); required for the parallel-equivalence property to hold across runs with different --max-threads")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) {
	if solveNgramLen < 1 || solveNgramLen > MaxNgramLen {
		fmt.Fprintln(os.Stderr, "n-gram length parameter out of range")
		os.Exit(1)
	}
	if solveMaxThreads < 1 {
		fmt.Fprintln(os.Stderr, "maximum threads parameter out of range")
		os.Exit(1)
	}
	if solveNumTrials < 1 {
		fmt.Fprintln(os.Stderr, "number of trials parameter out of range")
		os.Exit(1)
	}
	if solveMuteRate < 0 || solveMuteRate > 100 {
		fmt.Fprintln(os.Stderr, "mutation rate parameter out of range")
		os.Exit(1)
	}

	runID := uuid.New().String()
	runLogger := logger.With("run", runID)

	score, err := LoadScore(solveScoreBase, solveNgramLen)
	if err != nil {
		runLogger.Errorw("loading probability model", "error", err)
		fmt.Fprintf(os.Stderr, "error loading probability model: %v\n", err)
		os.Exit(1)
	}

	crypto, err := LoadCryptogram(args[0])
	if err != nil {
		runLogger.Errorw("loading cryptogram", "error", err)
		fmt.Fprintf(os.Stderr, "error loading cryptogram: %v\n", err)
		os.Exit(1)
	}

	var solText string
	var haveSolution bool
	if len(args) > 1 {
		sol, mismatch, err := LoadSolution(args[1], len(crypto.Text))
		if err != nil {
			runLogger.Errorw("loading solution", "error", err)
			fmt.Fprintf(os.Stderr, "error loading solution: %v\n", err)
			os.Exit(1)
		}
		if mismatch {
			runLogger.Warnw("solution length does not match cryptogram length", "solutionLen", len(sol), "cryptogramLen", len(crypto.Text))
		}
		solText = sol
		haveSolution = true
	}

	seed := IdentifyVowels(crypto.Text)
	runLogger.Infow("vowel seed identified", "vowels", seed.Vowels)

	start := time.Now()
	cfg := SolverConfig{
		Generations: solveGenerations,
		MuteRate:    solveMuteRate,
		NgramLen:    solveNgramLen,
		MaxThreads:  solveMaxThreads,
		PopSize:     solvePopSize,
		NumTrials:   solveNumTrials,
		Seed:        solveSeed,
		Progress: func(remaining, total int, best Snapshot) {
			fitnessStr := fmt.Sprintf("%.4f", best.Fitness)
			runLogger.Infow("trial completed",
				"remaining", remaining, "total", total,
				"bestFitness", fitnessStr, "bestTrial", best.Trial, "bestGeneration", best.Generation,
				"elapsed", time.Since(start).Round(time.Millisecond).String())
		},
	}

	best := Solve(crypto, score, seed, cfg)

	Print(os.Stdout, crypto, best.Key)

	encKey := best.Key.Invert()
	fmt.Printf("\nENCRYPTION KEY: %s", color.New(color.Bold).Sprint(keyToString(encKey)))
	fmt.Printf("\nDECRYPTION KEY: %s", color.New(color.Bold).Sprint(keyToString(best.Key)))

	scoreLine := fmt.Sprintf("\nSCORE: %f  TRIAL: %d  GENERATION: %d\n", best.Fitness, best.Trial, best.Generation)
	fmt.Print(color.GreenString(scoreLine))

	if haveSolution {
		fmt.Printf("\nSCORE OF TRUE SOLUTION: %f\n", score.Eval(solText))
	}
}

// keyToString renders a Key as a 26-byte lowercase string, cipher letter
// 'a' first, matching cryptoPrint's bestKey buffer.
func keyToString(k Key) string {
	b := make([]byte, NumSymbols)
	for i, v := range k {
		b[i] = 'a' + v
	}
	return string(b)
}
