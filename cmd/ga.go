package cmd

import "math/rand"

// MaxSwaps bounds the random scrambling gen.c's genInit performs on a
// freshly seeded key, matching the reference's MAXSWAPS.
const MaxSwaps = 100

// genVowelSeed is the fixed vowel seed letters, by alphabet index, laid
// onto cipher positions the vowel seeder identified, in the order the
// seeder produced them. Matches gen.c's static genVow[] = "aeiouyt".
var genVowelSeed = []int{0, 4, 8, 14, 20, 24, 19} // a e i o u y t

// genFullSeed is gen.c's full genKey[] = "aeiouytbcdfghjklmnpqrsvwxz": the
// 7 vowel-seed letters (genVowelSeed) followed by the 19 consonants
// b c d f g h j k l m n p q r s v w x z, by alphabet index.
var genFullSeed = append(append([]int{}, genVowelSeed...),
	1, 2, 3, 5, 6, 7, 9, 10, 11, 12, 13, 15, 16, 17, 18, 21, 22, 23, 25,
)

// Key is a candidate decryption key: Key[c] is the plaintext letter index
// (0-25) produced by cipher letter index c. SPEC_FULL.md's data model
// requires every Key to be a bijection.
type Key [NumSymbols]byte

// Decode maps cipherText (a string of lowercase letters) through k,
// producing the candidate plaintext.
func (k Key) Decode(cipherText string) string {
	out := make([]byte, len(cipherText))
	for i := 0; i < len(cipherText); i++ {
		out[i] = 'a' + k[cipherText[i]-'a']
	}
	return string(out)
}

// Invert returns the encryption key, the inverse permutation of k, such
// that Invert()[k[c]] == c for all c — SPEC_FULL.md's two key views.
func (k Key) Invert() Key {
	var enc Key
	for c := 0; c < NumSymbols; c++ {
		enc[k[c]] = byte(c)
	}
	return enc
}

// IsPermutation reports whether k is a bijection over 0-25, the
// invariant every candidate key must satisfy (spec.md §8 invariant 1).
func (k Key) IsPermutation() bool {
	var seen [NumSymbols]bool
	for _, v := range k {
		if v >= NumSymbols || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// gaCandidate pairs a key with its fitness. Grounded on the teacher's
// substitutionHillclimbCandidate (cmd/hillclimb.go), generalized from a
// single-population local-search candidate into one member of a GA
// population.
type gaCandidate struct {
	key     Key
	fitness float64
}

// population is an ordered slice of M candidates, maintained in
// descending-fitness order after every generation (spec.md §3 "GA
// population" invariant).
type population []*gaCandidate

func (p population) Len() int      { return len(p) }
func (p population) Swap(i, j int)  { p[i], p[j] = p[j], p[i] }
func (p population) Less(i, j int) bool { return p[i].fitness > p[j].fitness }

// cryptoEval decodes key over c and scores the result, mirroring
// cryptoEval in crypto.c.
func cryptoEval(c *Cryptogram, score *Score, key Key) float64 {
	return score.Eval(key.Decode(c.Text))
}

// genInit generates the initial population of popSize random keys for one
// trial, grounded on gen.c's genInit.
func genInit(c *Cryptogram, score *Score, seed *VowelSeed, popSize int, rng *rand.Rand) population {
	pop := make(population, popSize)

	for i := 0; i < popSize; i++ {
		var key Key
		var placed [NumSymbols]bool

		for j, v := range seed.Vowels {
			key[v] = byte(genVowelSeed[j])
			placed[v] = true
		}

		cnum := 0
		for k := 0; k < NumSymbols; k++ {
			if !placed[k] {
				key[k] = byte(genFullSeed[cnum+len(seed.Vowels)])
				cnum++
			}
		}

		numSwaps := rng.Intn(MaxSwaps)
		for j := 0; j < numSwaps; j++ {
			var x, y int
			for {
				x = rng.Intn(NumSymbols)
				if !seed.IsVowel[x] {
					break
				}
			}
			for {
				y = rng.Intn(NumSymbols)
				if !seed.IsVowel[y] && y != x {
					break
				}
			}
			key[x], key[y] = key[y], key[x]

			if len(seed.Vowels) > 1 {
				vx := rng.Intn(len(seed.Vowels))
				var vy int
				for {
					vy = rng.Intn(len(seed.Vowels))
					if vy != vx {
						break
					}
				}
				pvx, pvy := seed.Vowels[vx], seed.Vowels[vy]
				key[pvx], key[pvy] = key[pvy], key[pvx]
			}
		}

		pop[i] = &gaCandidate{key: key, fitness: cryptoEval(c, score, key)}
	}

	return pop
}

// genSelect performs rank-biased mate selection: draw k uniformly from
// [0, M(M+1)/2) and return the smallest index i such that the cumulative
// weight (M-a summed over a=0..i) exceeds k. Rank 0 gets M chances, rank
// M-1 gets 1. Grounded on gen.c's genSelect.
func genSelect(popSize int, rng *rand.Rand) int {
	k := rng.Intn(popSize * (popSize + 1) / 2)
	n := 0
	for i := 0; i < popSize; i++ {
		n += popSize - i
		if k < n {
			return i
		}
	}
	return popSize - 1
}

// genCrossover performs the greedy, asymmetric crossover from parent x
// (the working key, fitness F_A) pulling genes from parent y wherever
// doing so strictly improves fitness. Grounded on gen.c's genCrossover,
// with the acceptance test tightened to strict improvement per spec.md
// §4.5/§8 invariant 7 (DESIGN.md records this as a deliberate deviation
// from the reference's tie-accepting `>=`).
func genCrossover(c *Cryptogram, score *Score, x, y *gaCandidate) Key {
	testKey := x.key
	testFit := cryptoEval(c, score, testKey)

	for i := 0; i < NumSymbols; i++ {
		if x.key[i] == y.key[i] {
			continue
		}

		j := 0
		for ; j < NumSymbols; j++ {
			if x.key[j] == y.key[i] {
				break
			}
		}

		testKey[i], testKey[j] = testKey[j], testKey[i]
		newFit := cryptoEval(c, score, testKey)

		if newFit > testFit {
			testFit = newFit
		} else {
			testKey[i], testKey[j] = testKey[j], testKey[i]
		}
	}

	return testKey
}

// genMate builds the next generation's children from the current
// population using rank-biased mate selection and crossover, then
// replaces the population — building all children from the unmodified
// parent generation before any replacement happens, matching gen.c's
// genMate two-phase structure.
func genMate(c *Cryptogram, score *Score, pop population, rng *rand.Rand) {
	children := make([]Key, len(pop))

	for i := range pop {
		y := i
		for y == i {
			y = genSelect(len(pop), rng)
		}
		children[i] = genCrossover(c, score, pop[i], pop[y])
	}

	for i := range pop {
		pop[i].key = children[i]
		pop[i].fitness = cryptoEval(c, score, pop[i].key)
	}
}

// genMutate gives every individual a muteRate percent chance of one
// pairwise swap between two distinct cipher positions that both occur in
// the ciphertext, grounded on gen.c's genMutate.
func genMutate(c *Cryptogram, score *Score, pop population, muteRate int, rng *rand.Rand) {
	for _, ind := range pop {
		if rng.Intn(100) >= muteRate {
			continue
		}

		var x, y int
		for {
			x = rng.Intn(NumSymbols)
			if c.Freq[x] != 0 {
				break
			}
		}
		for {
			y = rng.Intn(NumSymbols)
			if y != x && c.Freq[y] != 0 {
				break
			}
		}

		ind.key[x], ind.key[y] = ind.key[y], ind.key[x]
		ind.fitness = cryptoEval(c, score, ind.key)
	}
}

// genSort sorts pop in descending-fitness order using insertion sort,
// grounded on gen.c's genSort (preferred over sort.Sort for parity with
// the reference's stable-for-near-sorted-input behavior across
// generations).
func genSort(pop population) {
	for k := 1; k < len(pop); k++ {
		n := k - 1
		cand := pop[k]

		for n >= 0 && cand.fitness > pop[n].fitness {
			pop[n+1] = pop[n]
			n--
		}
		pop[n+1] = cand
	}
}
