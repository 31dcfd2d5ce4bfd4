package cmd

import "testing"

func almostEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func TestZTransform(t *testing.T) {
	R := []int64{1, 2, 3, 5}
	N := []int64{10, 5, 2, 1}

	Z := zTransform(R, N)

	want := []float64{10.0, 5.0, 4.0 / 3.0, 1.0}
	if len(Z) != len(want) {
		t.Fatalf("got %d entries, want %d", len(Z), len(want))
	}
	for i := range want {
		if !almostEqual(Z[i], want[i], 1e-9) {
			t.Errorf("Z[%d] = %v, want %v", i, Z[i], want[i])
		}
	}
}

func TestSimpleGoodTuringNormalizesAndReservesUnseenMass(t *testing.T) {
	// Eighteen leaves at depth 2 with four distinct counts 1, 2, 3, 5,
	// matching the R=[1,2,3,5] N=[10,5,2,1] fixture by repeating each
	// count the required number of times (total 31).
	trie := NewNgramTrie()

	// Build distinct 2-grams with the desired per-leaf totals by
	// inserting each one "count" times.
	idx := 0
	nextNgram := func() string {
		a := idx / 26
		b := idx % 26
		idx++
		return string(rune('a'+a)) + string(rune('a'+b))
	}
	total := int64(0)
	add := func(count int, howMany int) {
		for i := 0; i < howMany; i++ {
			ng := nextNgram()
			for c := 0; c < count; c++ {
				trie.InsertNgram(ng, 1)
			}
			total += int64(count)
		}
	}
	add(1, 10)
	add(2, 5)
	add(3, 2)
	add(5, 1)

	result := SimpleGoodTuring(trie, 2)

	wantPZero := 10.0 / float64(total)
	if !almostEqual(result.PZero, wantPZero, 1e-9) {
		t.Errorf("PZero = %v, want %v", result.PZero, wantPZero)
	}

	// Re-derive the probability mass by weighting each rank's
	// probability by how many n-grams share that rank, using the
	// frequency-of-frequencies counts baked into the fixture.
	freqByRank := map[int64]int64{1: 10, 2: 5, 3: 2, 5: 1}
	var sumP float64
	for _, r := range result.R {
		p, ok := result.Prob(r)
		if !ok {
			t.Fatalf("Prob(%d) reported not found", r)
		}
		sumP += p * float64(freqByRank[r])
	}

	if !almostEqual(sumP+result.PZero, 1.0, 1e-6) {
		t.Errorf("total probability mass = %v, want ~1.0", sumP+result.PZero)
	}
}

func TestSimpleGoodTuringSingleDistinctCount(t *testing.T) {
	// Every leaf shares the same count (5), and that count isn't 1, so no
	// mass is reserved for unseen n-grams (pZero == 0) and the single
	// observed rank absorbs the full probability mass.
	trie := NewNgramTrie()
	for _, ng := range []string{"aa", "bb", "cc"} {
		for c := 0; c < 5; c++ {
			trie.InsertNgram(ng, 1)
		}
	}

	result := SimpleGoodTuring(trie, 2)
	if len(result.R) != 1 {
		t.Fatalf("expected a single distinct count, got %v", result.R)
	}
	if result.PZero != 0 {
		t.Errorf("PZero = %v, want 0", result.PZero)
	}
	p, ok := result.Prob(5)
	if !ok {
		t.Fatal("expected Prob(5) to be found")
	}
	if !almostEqual(p, 1.0, 1e-9) {
		t.Errorf("single-distinct-count probability = %v, want 1.0", p)
	}
}
