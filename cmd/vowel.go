package cmd

// MaxVowels bounds how many cipher positions Sukhotin's algorithm will
// mark as vowels, matching vowel.c's MAXVOWELS.
const MaxVowels = 7

// VowelSeed is the output of Sukhotin's algorithm: the ordered list of
// cipher-letter indices (0-25) identified as likely vowels, in discovery
// order, plus a membership predicate.
type VowelSeed struct {
	Vowels  []int
	IsVowel [NumSymbols]bool
}

// IdentifyVowels runs Sukhotin's algorithm over cipherText (a string of
// lowercase letters, non-letters already stripped) and returns the
// cipher-letter positions most likely to be vowels. Grounded on vowel.c's
// vowIdentify, line for line; deterministic given the ciphertext.
func IdentifyVowels(cipherText string) *VowelSeed {
	var cmat [NumSymbols][NumSymbols]int
	var csum [NumSymbols]int

	for i := 1; i < len(cipherText); i++ {
		x := int(cipherText[i] - 'a')
		y := int(cipherText[i-1] - 'a')
		cmat[x][y]++
		cmat[y][x]++
	}

	for j := 0; j < NumSymbols; j++ {
		cmat[j][j] = 0
		for k := 0; k < NumSymbols; k++ {
			csum[j] += cmat[j][k]
		}
	}

	seed := &VowelSeed{}

	for {
		maxSum := 0
		index := -1

		// Lowest cipher-letter index among tied maxima (spec.md §9
		// open note, resolved in DESIGN.md): scanning ascending with a
		// strict > comparison means the first index to reach a given
		// maximum keeps it.
		for i := 0; i < NumSymbols; i++ {
			if !seed.IsVowel[i] && csum[i] > maxSum {
				maxSum = csum[i]
				index = i
			}
		}

		if maxSum > 0 && len(seed.Vowels) < MaxVowels {
			seed.IsVowel[index] = true
			seed.Vowels = append(seed.Vowels, index)
		} else {
			break
		}

		for i := 0; i < NumSymbols; i++ {
			if !seed.IsVowel[i] {
				csum[i] -= cmat[i][index] * 2
			}
		}
	}

	return seed
}
