package cmd

import (
	"math/rand"
	"testing"
)

func identityKey() Key {
	var k Key
	for i := range k {
		k[i] = byte(i)
	}
	return k
}

func TestKeyDecodeInvert(t *testing.T) {
	k := identityKey()
	k[0], k[1] = k[1], k[0] // a<->b

	if got := k.Decode("ab"); got != "ba" {
		t.Errorf("Decode(\"ab\") = %q, want \"ba\"", got)
	}

	enc := k.Invert()
	if enc.Decode(k.Decode("ab")) != "ab" {
		t.Errorf("Invert() did not produce a left inverse: got %q", enc.Decode(k.Decode("ab")))
	}
}

func TestKeyIsPermutation(t *testing.T) {
	if !identityKey().IsPermutation() {
		t.Error("identity key should be a valid permutation")
	}

	var bad Key
	bad[0] = 5
	bad[1] = 5 // duplicate
	if bad.IsPermutation() {
		t.Error("a key with a duplicate target letter must not be a valid permutation")
	}
}

// unigramScore builds a Score whose Eval is the sum of per-character
// scores from cond, independent of order — letting crossover tests reason
// about fitness without needing real probability files.
func unigramScore(cond map[string]float64) *Score {
	return &Score{n: 1, prior: map[string]float64{}, cond: cond, scoreZero: -1000}
}

func TestGenCrossoverRejectsTie(t *testing.T) {
	c := NewCryptogramFromText("ab")
	score := unigramScore(map[string]float64{"a": 3, "b": 7})

	x := &gaCandidate{key: identityKey(), fitness: cryptoEval(c, score, identityKey())}
	y := &gaCandidate{key: identityKey()}
	y.key[0], y.key[1] = y.key[1], y.key[0]
	y.fitness = cryptoEval(c, score, y.key)

	result := genCrossover(c, score, x, y)
	if result != x.key {
		t.Errorf("expected a tied-fitness swap to be rejected, got %v want %v", result, x.key)
	}
}

func TestGenCrossoverAcceptsStrictImprovement(t *testing.T) {
	c := NewCryptogramFromText("aab")
	score := unigramScore(map[string]float64{"a": 1, "b": 10})

	x := &gaCandidate{key: identityKey()}
	x.fitness = cryptoEval(c, score, x.key)

	y := &gaCandidate{key: identityKey()}
	y.key[0], y.key[1] = y.key[1], y.key[0]
	y.fitness = cryptoEval(c, score, y.key)

	result := genCrossover(c, score, x, y)
	if result == x.key {
		t.Error("expected a strictly-improving swap to be accepted")
	}
	if result[0] != 1 || result[1] != 0 {
		t.Errorf("expected positions 0,1 swapped, got %v", result)
	}
}

func TestGenSortDescending(t *testing.T) {
	pop := population{
		{fitness: 1},
		{fitness: 5},
		{fitness: 3},
		{fitness: 5},
		{fitness: -2},
	}
	genSort(pop)

	for i := 1; i < len(pop); i++ {
		if pop[i].fitness > pop[i-1].fitness {
			t.Errorf("population not sorted descending at index %d: %v", i, pop)
		}
	}
}

func TestGenSelectWithinRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		idx := genSelect(10, rng)
		if idx < 0 || idx >= 10 {
			t.Fatalf("genSelect returned out-of-range index %d", idx)
		}
	}
}

func TestGenInitProducesPermutationsRespectingVowelSeed(t *testing.T) {
	c := NewCryptogramFromText("thequickbrownfoxjumpsoverthelazydog")
	score := unigramScore(map[string]float64{})
	seed := IdentifyVowels(c.Text)
	rng := rand.New(rand.NewSource(42))

	pop := genInit(c, score, seed, 5, rng)
	for _, cand := range pop {
		if !cand.key.IsPermutation() {
			t.Errorf("genInit produced a non-permutation key: %v", cand.key)
		}
	}
}
