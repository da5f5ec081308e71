// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package align

import (
	"math"
)

// ConservedFraction returns the fraction of fully conserved columns.
//
// A column is conserved if after removing
// every character that is not a nucleotide
// (A, C, G, T, in any case)
// the column is not empty
// and all of its characters are identical.
// The fraction is taken over all the columns,
// including columns that are only gaps.
func ConservedFraction(a *Alignment) (float64, error) {
	n := a.NChars()
	if n == 0 {
		return 0, ErrEmpty
	}

	conserved := 0
	for i := 0; i < n; i++ {
		if isConserved(a.seqs, i) {
			conserved++
		}
	}
	return float64(conserved) / float64(n), nil
}

func isConserved(seqs [][]byte, col int) bool {
	var first byte
	for _, s := range seqs {
		c := s[col]
		if BaseIndex(c) < 0 {
			continue
		}
		if first == 0 {
			first = c
			continue
		}
		if c != first {
			return false
		}
	}
	return first != 0
}

// ColumnEntropy returns the entropy of a column
// weighted by the nucleotide counts:
//
//	-Σ n_x log2(n_x/N)
//
// in which n_x is the number of times
// the nucleotide x is found in the column,
// and N is the total number of nucleotides.
// Characters that are not nucleotides are ignored.
func ColumnEntropy(col []byte) float64 {
	var counts [len(Bases)]float64
	for _, c := range col {
		if b := BaseIndex(c); b >= 0 {
			counts[b]++
		}
	}
	return countEntropy(counts[:])
}

func countEntropy(counts []float64) float64 {
	var n float64
	for _, x := range counts {
		n += x
	}

	var e float64
	for _, x := range counts {
		if x == 0 {
			continue
		}
		e += x * math.Log2(x/n)
	}
	return -e
}

// Entropy returns the mean of the column entropy
// over all the columns of an alignment.
func Entropy(a *Alignment) (float64, error) {
	n := a.NChars()
	if n == 0 {
		return 0, ErrEmpty
	}

	counts := a.Counts()
	row := make([]float64, len(Bases))
	var sum float64
	for _, cc := range counts.Mat {
		for j, x := range cc {
			row[j] = float64(x)
		}
		sum += countEntropy(row)
	}
	return sum / float64(n), nil
}

// Multinomial returns the multinomial test statistic
// of Bollback (2002)
// in which each column
// (as is, case sensitive and with gaps)
// is a site pattern:
//
//	Σ c ln(c) - L ln(L)
//
// in which c is the number of times a pattern is found
// and L is the number of columns.
// It also returns the number of different patterns,
// and the fraction of different patterns
// relative to the number of columns.
func Multinomial(a *Alignment) (stat float64, distinct int, frac float64) {
	n := a.NChars()
	if n == 0 {
		return 0, 0, 0
	}

	patterns := make(map[string]int)
	for i := 0; i < n; i++ {
		patterns[string(a.Column(i))]++
	}

	for _, c := range patterns {
		x := float64(c)
		stat += x * math.Log(x)
	}
	l := float64(n)
	stat -= l * math.Log(l)

	return stat, len(patterns), float64(len(patterns)) / l
}

// BaseFreqs returns the frequencies
// of the nucleotides
// (in the order A, C, G, T)
// over all the sequences of the alignment.
// Any character other than a nucleotide is ignored.
func BaseFreqs(a *Alignment) ([len(Bases)]float64, error) {
	var freqs [len(Bases)]float64
	var sum float64
	for _, s := range a.seqs {
		for _, c := range s {
			if b := BaseIndex(c); b >= 0 {
				freqs[b]++
				sum++
			}
		}
	}
	if sum == 0 {
		return freqs, ErrNoBases
	}

	for i := range freqs {
		freqs[i] /= sum
	}
	return freqs, nil
}
