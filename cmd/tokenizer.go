package cmd

import (
	"bufio"
	"io"
	"strings"
)

// punctuation holds the characters removed from inside a token, matching
// token.c's narrow punct[] array exactly. This is deliberately not the
// same set isEdgePunct uses: token.c reserves this fixed list for the
// embedded-character pass and uses the much broader ispunct() class only
// for stripping leading/trailing characters.
var punctuation = map[byte]bool{
	',': true, '.': true, ':': true, ';': true, '-': true, '+': true,
	'/': true, '\\': true, '\'': true, '&': true, '@': true, '_': true,
}

// isEdgePunct reports whether b falls in C's ispunct() class: any
// printable ASCII character that isn't a letter, digit, or space. Used
// only for stripping leading/trailing characters, matching token.c's
// edge-trimming call to ispunct() rather than its narrow punct[] array.
func isEdgePunct(b byte) bool {
	switch {
	case b >= '!' && b <= '/':
		return true
	case b >= ':' && b <= '@':
		return true
	case b >= '[' && b <= '`':
		return true
	case b >= '{' && b <= '~':
		return true
	}
	return false
}

// cleanToken lowercases tok, strips leading/trailing punctuation (the
// broad ispunct() class), removes embedded punctuation characters (the
// narrow punctuation map), and reports whether the result is entirely
// alphabetic. A token with any remaining non-letter character after
// cleanup is rejected, matching tokenProcess's recursive
// strip-then-check behavior in token.c.
func cleanToken(tok string) (string, bool) {
	tok = strings.ToLower(tok)

	start, end := 0, len(tok)
	for start < end && isEdgePunct(tok[start]) {
		start++
	}
	for end > start && isEdgePunct(tok[end-1]) {
		end--
	}
	tok = tok[start:end]

	var b strings.Builder
	b.Grow(len(tok))
	for i := 0; i < len(tok); i++ {
		if !punctuation[tok[i]] {
			b.WriteByte(tok[i])
		}
	}
	tok = b.String()

	for i := 0; i < len(tok); i++ {
		if tok[i] < 'a' || tok[i] > 'z' {
			return "", false
		}
	}
	return tok, len(tok) > 0
}

// Tokens reads whitespace-delimited words from r, cleans each one with
// cleanToken (rules derived from token.c), and
// streams the surviving all-letter tokens over the returned channel. The
// channel is closed when the reader is exhausted.
func Tokens(r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		scanner.Split(bufio.ScanWords)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if tok, ok := cleanToken(scanner.Text()); ok {
				out <- tok
			}
		}
	}()
	return out
}

// NgramsInToken slides an n-wide window over tok and sends each window to
// the supplied callback. N-grams never cross word boundaries: a token
// shorter than n contributes nothing, matching the Model Builder's
// "no cross-word n-grams" contract.
func NgramsInToken(tok string, n int, f func(ngram string)) {
	if len(tok) < n {
		return
	}
	for i := 0; i+n <= len(tok); i++ {
		f(tok[i : i+n])
	}
}
