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
	"io"
	"os"
	"sort"

	"github.com/pbnjay/memory"
	"github.com/spf13/cobra"
)

var ngramsOutputBase string
var ngramsLength int
var ngramsSummaryOnly bool

// ngramsCmd builds an n-gram probability model from a corpus, replacing
// the teacher's word-trie ngrams command with the arena n-gram trie +
// Simple Good-Turing pipeline. Grounded on ngram.c's main/ngramExtract.
var ngramsCmd = &cobra.Command{
	Use:   "ngrams <text file(s)> ...",
	Short: "Build an n-gram probability model from a text corpus",
	Long: `ngrams tokenizes one or more corpus files, slides an n-wide window
within each token, and fits the resulting n-gram frequencies with Simple
Good-Turing smoothing (Gale & Sampson, 1995). It writes two probability
tables, <output>.n and <output>.n-1, that "alkindus solve" consumes as
its fitness model.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runNgramsBuild,
}

func init() {
	ngramsCmd.Flags().IntVarP(&ngramsLength, "ngram-length", "n", 3, "n-gram length (1-8)")
	ngramsCmd.Flags().StringVarP(&ngramsOutputBase, "output", "o", "ngramscores", "output base path; writes <base>.n and <base>.n-1")
	ngramsCmd.Flags().BoolVarP(&ngramsSummaryOnly, "summary-only", "s", false, "print n-gram summary statistics instead of writing probability files")
	rootCmd.AddCommand(ngramsCmd)
}

func runNgramsBuild(cmd *cobra.Command, args []string) {
	if ngramsLength < 1 || ngramsLength > MaxNgramLen {
		fmt.Fprintln(os.Stderr, "ngram length parameter out of range")
		os.Exit(1)
	}

	warnCorpusSize(args)

	trie := NewNgramTrie()
	for _, path := range args {
		if err := extractNgramsFromFile(trie, path, ngramsLength); err != nil {
			logger.Errorw("reading corpus file", "file", path, "error", err)
			fmt.Fprintf(os.Stderr, "error reading %s: %v\n", path, err)
			os.Exit(1)
		}
	}

	if ngramsSummaryOnly {
		printNgramSummary(trie, ngramsLength)
		return
	}

	if err := writeProbabilityFile(trie, ngramsLength, fmt.Sprintf("%s.%d", ngramsOutputBase, ngramsLength)); err != nil {
		fmt.Fprintf(os.Stderr, "error writing probability file: %v\n", err)
		os.Exit(1)
	}

	if ngramsLength > 1 {
		priorTrie := NewNgramTrie()
		for _, path := range args {
			if err := extractNgramsFromFile(priorTrie, path, ngramsLength-1); err != nil {
				logger.Errorw("reading corpus file", "file", path, "error", err)
				fmt.Fprintf(os.Stderr, "error reading %s: %v\n", path, err)
				os.Exit(1)
			}
		}
		if err := writeProbabilityFile(priorTrie, ngramsLength-1, fmt.Sprintf("%s.%d", ngramsOutputBase, ngramsLength-1)); err != nil {
			fmt.Fprintf(os.Stderr, "error writing probability file: %v\n", err)
			os.Exit(1)
		}
	}
}

// warnCorpusSize logs (not aborts) when the corpus file set is large
// relative to available memory, since the trie holds every distinct
// n-gram for the whole build (SPEC_FULL.md §3.4).
func warnCorpusSize(paths []string) {
	var total int64
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil {
			total += fi.Size()
		}
	}
	if avail := memory.TotalMemory(); avail > 0 && uint64(total) > avail/2 {
		logger.Warnw("corpus size exceeds half of available memory; the n-gram trie is memory-resident for the whole build",
			"corpusBytes", total, "totalMemoryBytes", avail)
	}
}

// extractNgramsFromFile tokenizes path and inserts every n-wide window of
// every token into trie. Grounded on ngramExtract/ngramInsert.
func extractNgramsFromFile(trie *NgramTrie, path string, n int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for tok := range Tokens(f) {
		NgramsInToken(tok, n, func(ngram string) {
			trie.InsertNgram(ngram, 1)
		})
	}
	return nil
}

// writeProbabilityFile runs Simple Good-Turing smoothing over trie level n
// and writes one "<letters>\t<probability>\n" line per distinct n-gram,
// grounded on prob.c's probGoodTuring/probEmitProb.
func writeProbabilityFile(trie *NgramTrie, n int, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return WriteProbabilityTable(trie, n, out)
}

// WriteProbabilityTable writes the same "<letters>\t<probability>\n" table
// as writeProbabilityFile to an arbitrary io.Writer, letting MCP/HTTP
// handlers (SPEC_FULL.md §3.1/§3.2) return the table inline without
// touching disk.
func WriteProbabilityTable(trie *NgramTrie, n int, w io.Writer) error {
	result := SimpleGoodTuring(trie, n)

	var writeErr error
	trie.TraverseLeaves(trie.Root(), func(id int32) {
		if writeErr != nil {
			return
		}
		p, ok := result.Prob(trie.Total(id))
		if !ok {
			return
		}
		_, writeErr = fmt.Fprintf(w, "%s\t%.10e\n", trie.Ngram(id), p)
	})
	return writeErr
}

// BuildNgramTrie tokenizes r and inserts every n-wide window of every
// token into a fresh trie, the in-memory counterpart of
// extractNgramsFromFile for callers that already hold corpus text (MCP
// tool input) rather than a file path.
func BuildNgramTrie(r io.Reader, n int) *NgramTrie {
	trie := NewNgramTrie()
	for tok := range Tokens(r) {
		NgramsInToken(tok, n, func(ngram string) {
			trie.InsertNgram(ngram, 1)
		})
	}
	return trie
}

// printNgramSummary prints total/distinct n-gram counts, the top-10 most
// frequent n-grams, and a frequency-of-frequency histogram over fixed
// bins, grounded on ngram.c's ngramSummary.
func printNgramSummary(trie *NgramTrie, n int) {
	total := trie.Total(trie.Root())
	possible := int64(1)
	for i := 0; i < n; i++ {
		possible *= NumSymbols
	}

	type topEntry struct {
		ngram string
		count int64
	}
	var entries []topEntry
	trie.TraverseLeaves(trie.Root(), func(id int32) {
		entries = append(entries, topEntry{trie.Ngram(id), trie.Total(id)})
	})

	fmt.Printf("\nSummary of %d-gram statistics in corpus:\n", n)
	fmt.Printf("\nTotal n-grams seen:  %d", total)
	fmt.Printf("\nDistinct types seen: %d of %d (%.2f%%)\n",
		len(entries), possible, 100*float64(len(entries))/float64(possible))

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].ngram < entries[j].ngram
	})

	fmt.Println("\nTop 10 types by frequency:")
	for i := 0; i < 10 && i < len(entries); i++ {
		fmt.Printf("%s\t%d\n", entries[i].ngram, entries[i].count)
	}

	bins := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 50, 100, 500, 1000, 5000, 10000, 50000, 100000}
	sums := make([]int64, len(bins))
	for _, e := range entries {
		for i, b := range bins {
			if e.count <= b {
				sums[i] += e.count
				break
			}
		}
	}

	fmt.Println("\nFrequencies of frequencies:")
	fmt.Println("---------------------------")
	half := len(bins) / 2
	for i := len(bins) - 1; i >= half; i-- {
		fmt.Printf("%7d:\t%d\t%7d:\t%d\n", bins[i], sums[i], bins[i-half], sums[i-half])
	}
}
