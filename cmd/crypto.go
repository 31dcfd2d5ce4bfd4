package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Cryptogram holds a loaded ciphertext: the letter-only, lowercased text
// and a per-letter frequency vector. Grounded on crypto.c's cryptoLoad.
type Cryptogram struct {
	Text string
	Freq [NumSymbols]int
}

// LoadCryptogram reads path, keeping only alphabetic bytes, case-folded to
// lowercase, and builds the frequency vector alongside it. Unlike
// cryptoLoad's fixed 512-byte reallocation chunks, the Go implementation
// reads the whole file with os.ReadFile — growth-chunking is an implementation detail
// the original made visible only because of manual buffer management.
func LoadCryptogram(path string) (*Cryptogram, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening cryptogram file %q: %w", path, err)
	}
	return newCryptogramFromBytes(raw), nil
}

// NewCryptogramFromText builds a Cryptogram directly from an in-memory
// string, for callers (MCP/HTTP handlers) that receive ciphertext as a
// request field rather than a file path.
func NewCryptogramFromText(text string) *Cryptogram {
	return newCryptogramFromBytes([]byte(text))
}

func newCryptogramFromBytes(raw []byte) *Cryptogram {
	c := &Cryptogram{}
	var b strings.Builder
	b.Grow(len(raw))

	for _, ch := range raw {
		lower := ch
		if lower >= 'A' && lower <= 'Z' {
			lower += 'a' - 'A'
		}
		if lower >= 'a' && lower <= 'z' {
			b.WriteByte(lower)
			c.Freq[lower-'a']++
		}
	}

	c.Text = b.String()
	return c
}

// LoadSolution reads a known-plaintext solution file using the same
// acceptance rules as the ciphertext loader. A length mismatch against
// expectedLen is a warning, not a fatal error (spec.md §7 "Solution
// length mismatch").
func LoadSolution(path string, expectedLen int) (string, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("opening solution file %q: %w", path, err)
	}
	sol := newCryptogramFromBytes(raw).Text
	return sol, len(sol) != expectedLen, nil
}

// Print renders the ciphertext and its decryption under key side by side,
// in 50-character lines grouped in blocks of 5, matching cryptoPrint.
func Print(w io.Writer, c *Cryptogram, key Key) {
	plain := key.Decode(c.Text)
	nlines := (len(c.Text) / 50) + 1

	for i := 0; i < nlines; i++ {
		start := i * 50
		end := start + 50
		if end > len(c.Text) {
			end = len(c.Text)
		}
		if start >= end {
			continue
		}

		writeGrouped(w, strings.ToUpper(c.Text[start:end]), start)
		fmt.Fprintln(w)
		writeGrouped(w, plain[start:end], start)
		fmt.Fprintln(w, "\n")
	}
}

// writeGrouped writes s one byte at a time, inserting a space after every
// fifth absolute column, matching cryptoPrint's `j % 5 == 4` grouping.
func writeGrouped(w io.Writer, s string, startColumn int) {
	for i := 0; i < len(s); i++ {
		fmt.Fprintf(w, "%c", s[i])
		if (startColumn+i)%5 == 4 {
			fmt.Fprint(w, " ")
		}
	}
}
