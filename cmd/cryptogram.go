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
	"strings"

	"github.com/spf13/cobra"
)

// cryptogramCmd groups the diagnostic cryptanalysis helpers (frequency
// tables, Caesar shifts) that complement the n-gram/GA solver but don't
// need its probability model. The dictionary-pattern substitution solver
// (substitution.go) is dropped here: see DESIGN.md for why its word-bank
// input shape has no component in this model to drive.
var cryptogramCmd = &cobra.Command{
	Use:   "cryptogram",
	Short: "Provides a variety of tools for doing cryptanalyis",
	Long: `The cryptogram subcommand is designed to help with puzzle-level cryptanalysis.

	Examples:
	   alkindus cryptogram freq TEXT`,
}

var freqCmd = &cobra.Command{
	Use:   "freq",
	Short: "Provides frequency information for the uppercase letters in a string.",
	Long:  `Many common cryptograms require frequency analysis. This command provides single-character frequency for the uppercase letters in its arguments; digraphs and trigraphs are not counted.`,
	Args:  cobra.MinimumNArgs(1),
	Run:   printFrequencyTable,
}

var caesarCmd = &cobra.Command{
	Use:   "caesar",
	Short: "Print out caesar shifts of all the words in the arguments",
	Args:  cobra.MinimumNArgs(1),
	Run:   printCaesarShifts,
}

func init() {
	cryptogramCmd.AddCommand(freqCmd)
	cryptogramCmd.AddCommand(caesarCmd)
	rootCmd.AddCommand(cryptogramCmd)
}

// printFrequencyTable prints the count and percentage of each uppercase letter in a string; digraphs and trigraphs are not counted
func printFrequencyTable(cmd *cobra.Command, args []string) {
	totalString := strings.Join(args, " ")
	singleLetterCounts := frequencyCountInString(totalString)
	totalLetterCount := countTotalCharacters(totalString)
	fmt.Println("Frequency Table")
	fmt.Println("---------------")
	fmt.Printf("Total letters: %v\n", totalLetterCount)
	for curByte, count := range singleLetterCounts {
		fmt.Printf("%c: %v (%v%%)\n", curByte, count, fmt.Sprintf("%.2f", 100.0*(float32(count)/float32(totalLetterCount))))
	}
}

// countTotalCharacters counts the number of uppercase letters in the given string
func countTotalCharacters(toCount string) int {
	var totalCount = 0
	for _, curByte := range []byte(toCount) {
		if isUppercaseAscii(curByte) {
			totalCount += 1
		}
	}
	return totalCount
}

// frequencyCountInString takes in a string and returns the frequency of bytes in it
func frequencyCountInString(toCount string) map[byte]int {
	counts := make(map[byte]int)
	for _, curByte := range []byte(toCount) {
		if !isUppercaseAscii(curByte) {
			continue
		}

		curCount, exists := counts[curByte]
		if exists {
			counts[curByte] = curCount + 1
		} else {
			counts[curByte] = 1
		}
	}
	return counts
}

func isUppercaseAscii(check byte) bool {
	return check >= 65 && check < 91
}

func isLowercaseAscii(check byte) bool {
	return check >= 97 && check < 123
}
