package cmd

import "testing"

func TestIdentifyVowelsFindsDominantLetterEarly(t *testing.T) {
	base := "amanaplanacanalpanama"
	text := ""
	for len(text) < 500 {
		text += base
	}
	text = text[:500]

	seed := IdentifyVowels(text)

	found := -1
	for i, v := range seed.Vowels {
		if v == int('a'-'a') {
			found = i
			break
		}
	}
	if found < 0 {
		t.Fatalf("expected 'a' to be identified as a vowel, got %v", seed.Vowels)
	}
	if found >= 3 {
		t.Errorf("expected 'a' among the top 3 identified vowels, found at position %d: %v", found, seed.Vowels)
	}

	if len(seed.Vowels) > MaxVowels {
		t.Errorf("identified %d vowels, exceeding MaxVowels=%d", len(seed.Vowels), MaxVowels)
	}
	for _, v := range seed.Vowels {
		if !seed.IsVowel[v] {
			t.Errorf("IsVowel[%d] should be true for a member of Vowels", v)
		}
	}
}

func TestIdentifyVowelsDeterministic(t *testing.T) {
	text := "thequickbrownfoxjumpsoverthelazydog"
	a := IdentifyVowels(text)
	b := IdentifyVowels(text)

	if len(a.Vowels) != len(b.Vowels) {
		t.Fatalf("non-deterministic result lengths: %v vs %v", a.Vowels, b.Vowels)
	}
	for i := range a.Vowels {
		if a.Vowels[i] != b.Vowels[i] {
			t.Errorf("non-deterministic result at index %d: %d vs %d", i, a.Vowels[i], b.Vowels[i])
		}
	}
}

func TestIdentifyVowelsTieBreakLowestIndex(t *testing.T) {
	// "ab" repeated gives 'a' and 'b' perfectly symmetric adjacency
	// counts; the lowest cipher-letter index must win the tie.
	text := ""
	for len(text) < 20 {
		text += "ab"
	}

	seed := IdentifyVowels(text)
	if len(seed.Vowels) == 0 {
		t.Fatal("expected at least one vowel identified")
	}
	if seed.Vowels[0] != int('a'-'a') {
		t.Errorf("expected 'a' (lowest index) to win the tie and be selected first, got %d", seed.Vowels[0])
	}
}
