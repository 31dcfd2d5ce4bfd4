package cmd

import (
	"strings"
	"testing"
)

func TestCleanToken(t *testing.T) {
	tests := []struct {
		in       string
		want     string
		wantKeep bool
	}{
		{"Hello,", "hello", true},
		{"--well--", "well", true},
		{"don't", "dont", true},
		{"1999", "", false},
		{"", "", false},
		{"a.b", "ab", true},
		{"fox!", "fox", true},
		{"\"quoted\"", "quoted", true},
	}

	for _, tc := range tests {
		got, keep := cleanToken(tc.in)
		if keep != tc.wantKeep || got != tc.want {
			t.Errorf("cleanToken(%q) = (%q, %v), want (%q, %v)", tc.in, got, keep, tc.want, tc.wantKeep)
		}
	}
}

func TestTokens(t *testing.T) {
	r := strings.NewReader("The quick, brown fox! 123 don't-stop")
	var got []string
	for tok := range Tokens(r) {
		got = append(got, tok)
	}

	want := []string{"the", "quick", "brown", "fox", "dontstop"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNgramsInToken(t *testing.T) {
	var got []string
	NgramsInToken("hello", 3, func(ngram string) { got = append(got, ngram) })

	want := []string{"hel", "ell", "llo"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ngram[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNgramsInTokenTooShort(t *testing.T) {
	var got []string
	NgramsInToken("ab", 3, func(ngram string) { got = append(got, ngram) })
	if len(got) != 0 {
		t.Errorf("expected no n-grams from a token shorter than n, got %v", got)
	}
}
