package cmd

import "math"

// freqOfFreqs holds the two parallel ascending sequences R and N of the
// frequency-of-frequencies table: R[i] is a distinct
// count value observed and N[i] is how many n-grams occurred exactly
// R[i] times. Grounded on prob.c's probGetCounts/probCountNode, which
// maintain sort order on insertion rather than sorting afterward.
type freqOfFreqs struct {
	R []int64
	N []int64
}

// countNode performs the insert-in-order accumulation from probCountNode:
// increment N[i] if total matches R[i] exactly, otherwise insert a new
// (total, 1) pair at the position that keeps R ascending.
func (f *freqOfFreqs) countNode(total int64) {
	for i, r := range f.R {
		if total <= r {
			if total == r {
				f.N[i]++
			} else {
				f.R = append(f.R, 0)
				copy(f.R[i+1:], f.R[i:])
				f.R[i] = total
				f.N = append(f.N, 0)
				copy(f.N[i+1:], f.N[i:])
				f.N[i] = 1
			}
			return
		}
	}
	f.R = append(f.R, total)
	f.N = append(f.N, 1)
}

// buildFreqOfFreqs traverses trie level n and accumulates the
// frequency-of-frequencies table plus the grand total of n-gram
// occurrences at that level (ngramTotal in prob.c).
func buildFreqOfFreqs(trie *NgramTrie, n int) (*freqOfFreqs, int64) {
	f := &freqOfFreqs{}
	var total int64
	trie.TraverseLevel(trie.Root(), n, func(id int32) {
		c := trie.Total(id)
		total += c
		f.countNode(c)
	})
	return f, total
}

// SGTResult is the outcome of Simple Good-Turing smoothing over one trie
// level: a probability per distinct count-rank plus the reserved unseen
// mass, following Gale & Sampson's 1995 algorithm exactly as prob.c
// implements it.
type SGTResult struct {
	R     []int64
	P     []float64 // P[i] is the smoothed probability for any n-gram with raw count R[i]
	PZero float64
}

// probIndex returns the index in R matching total, or -1. Mirrors
// probEmitProb's bsearch against the sorted R array.
func (r *SGTResult) probIndex(total int64) int {
	lo, hi := 0, len(r.R)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case r.R[mid] == total:
			return mid
		case r.R[mid] < total:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return -1
}

// Prob returns the smoothed probability assigned to any n-gram whose raw
// trie count was total, and whether such a count was observed.
func (r *SGTResult) Prob(total int64) (float64, bool) {
	idx := r.probIndex(total)
	if idx < 0 {
		return 0, false
	}
	return r.P[idx], true
}

// zTransform applies the Gale-Sampson averaging transform to the observed
// frequency counts. DESIGN.md records a deliberate
// deviation here from prob.c's literal C code: the reference computes the
// last index as N[last]/(R[last]-R[last-1]), omitting the factor of 2 that
// every other index (including the first) carries. spec.md §4.3 step 3
// describes the boundary uniformly as 0.5·(t-q) in the denominator, which
// this implementation follows exactly, applying the factor of 2 at every
// index including the last.
func zTransform(R []int64, N []int64) []float64 {
	numCounts := len(R)
	Z := make([]float64, numCounts)

	for i := 0; i < numCounts; i++ {
		var q, t int64
		if i == 0 {
			q = 0
		} else {
			q = R[i-1]
		}
		if i == numCounts-1 {
			t = R[i]
		} else {
			t = R[i+1]
		}
		Z[i] = float64(N[i]) / (0.5 * float64(t-q))
	}
	return Z
}

// bestFit computes the OLS slope/intercept of log(Z) regressed on log(R),
// mirroring probBestFit.
func bestFit(logR, logZ []float64) (a, b float64) {
	n := float64(len(logR))
	var meanX, meanY float64
	for i := range logR {
		meanX += logR[i]
		meanY += logZ[i]
	}
	meanX /= n
	meanY /= n

	var xy, xsq float64
	for i := range logR {
		dx := logR[i] - meanX
		dy := logZ[i] - meanY
		xy += dx * dy
		xsq += dx * dx
	}
	b = xy / xsq
	a = meanY - b*meanX
	return a, b
}

// SimpleGoodTuring runs the full SGT pipeline (frequency-of-frequencies,
// Z transform, log-log fit, SGT estimate, Turing/SGT switchover,
// renormalization; grounded on prob.c's probGoodTuring) over trie level n, returning
// one probability per distinct observed count together with the reserved
// unseen-n-gram mass.
func SimpleGoodTuring(trie *NgramTrie, n int) *SGTResult {
	f, total := buildFreqOfFreqs(trie, n)
	numCounts := len(f.R)

	var pZero float64
	if numCounts > 0 && f.R[0] == 1 {
		pZero = float64(f.N[0]) / float64(total)
	}

	// Boundary case: a single distinct count value (SPEC_FULL.md /
	// spec.md §8 "Corpus with a single repeated word"). The SGT
	// machinery needs at least two points to regress a line; with one
	// point the whole remaining mass goes to that single n-gram.
	if numCounts == 1 {
		return &SGTResult{R: f.R, P: []float64{1 - pZero}, PZero: pZero}
	}

	Z := zTransform(f.R, f.N)

	logR := make([]float64, numCounts)
	logZ := make([]float64, numCounts)
	for i := 0; i < numCounts; i++ {
		logR[i] = math.Log(float64(f.R[i]))
		logZ[i] = math.Log(Z[i])
	}

	a, b := bestFit(logR, logZ)
	smooth := func(r float64) float64 { return math.Exp(a + b*math.Log(r)) }

	rStar := make([]float64, numCounts)
	for i := 0; i < numCounts; i++ {
		R := float64(f.R[i])
		rStar[i] = (R + 1) * smooth(R+1) / smooth(R)
	}

	// Turing-to-SGT switchover: prefer the raw Turing estimate while the
	// consecutive-count precondition holds and the two estimates
	// disagree by more than the 95% confidence band; switch permanently
	// to SGT at the first index where they agree, or where R isn't
	// consecutive.
	for i := 0; i < numCounts-1; i++ {
		if f.R[i+1] != f.R[i]+1 {
			break
		}
		R := float64(f.R[i])
		N := float64(f.N[i])
		N1 := float64(f.N[i+1])

		x := (R + 1) * N1 / N
		d := math.Abs(x - rStar[i])

		if d <= 1.96*math.Sqrt((R+1)*(R+1)*(N1/(N*N))*(1+N1/N)) {
			break
		}
		rStar[i] = x
	}

	var newTotal float64
	for i := 0; i < numCounts; i++ {
		newTotal += rStar[i] * float64(f.N[i])
	}

	p := make([]float64, numCounts)
	for i := 0; i < numCounts; i++ {
		p[i] = (1 - pZero) * rStar[i] / newTotal
	}

	return &SGTResult{R: f.R, P: p, PZero: pZero}
}
