// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package align

import "gonum.org/v1/gonum/stat"

// Substitution types.
const (
	AC = iota
	AG
	AT
	CG
	CT
	GT
	numSubs
)

// SubNames are the names of the substitution types
// in index order.
var SubNames = [numSubs]string{"AC", "AG", "AT", "CG", "CT", "GT"}

// subIndex stores the substitution type
// of a pair of different nucleotides.
var subIndex = [len(Bases)][len(Bases)]int{
	A: {A: -1, C: AC, G: AG, T: AT},
	C: {A: AC, C: -1, G: CG, T: CT},
	G: {A: AG, C: CG, G: -1, T: GT},
	T: {A: AT, C: CT, G: GT, T: -1},
}

// PairCounts are the position classes
// found when comparing two aligned sequences.
type PairCounts struct {
	// Subs is the number of positions
	// with each substitution type.
	Subs [numSubs]int

	// Matches is the number of positions
	// with the same nucleotide in both sequences,
	// for each nucleotide.
	Matches [len(Bases)]int

	// OneGap is the number of positions in which
	// only one of the sequences has a nucleotide.
	OneGap int

	// TwoGap is the number of positions
	// in which no sequence has a nucleotide.
	TwoGap int
}

// ComparePair classifies the positions
// of two aligned sequences.
func ComparePair(s1, s2 []byte) PairCounts {
	var pc PairCounts
	for i := range s1 {
		b1 := BaseIndex(s1[i])
		b2 := BaseIndex(s2[i])
		switch {
		case b1 < 0 && b2 < 0:
			pc.TwoGap++
		case b1 < 0 || b2 < 0:
			pc.OneGap++
		case b1 == b2:
			pc.Matches[b1]++
		default:
			pc.Subs[subIndex[b1][b2]]++
		}
	}
	return pc
}

// Valid returns the number of positions
// in which both sequences have a nucleotide.
func (pc PairCounts) Valid() int {
	return pc.subs() + pc.matches()
}

func (pc PairCounts) subs() int {
	var n int
	for _, x := range pc.Subs {
		n += x
	}
	return n
}

func (pc PairCounts) matches() int {
	var n int
	for _, x := range pc.Matches {
		n += x
	}
	return n
}

// Transition returns the transition rate
// (A-G and C-T substitutions)
// over the valid positions.
func (pc PairCounts) Transition() float64 {
	v := pc.Valid()
	if v == 0 {
		return 0
	}
	return float64(pc.Subs[AG]+pc.Subs[CT]) / float64(v)
}

// Transversion returns the transversion rate
// over the valid positions.
func (pc PairCounts) Transversion() float64 {
	v := pc.Valid()
	if v == 0 {
		return 0
	}
	return float64(pc.Subs[AC]+pc.Subs[AT]+pc.Subs[CG]+pc.Subs[GT]) / float64(v)
}

// Scores of the sum-of-pairs.
const (
	matchScore    = 1
	mismatchScore = -1
	gapScore      = -1
)

// SOP returns the sum-of-pairs score of the pair.
//
// A position with a single gap
// is scored both as a mismatch and as a gap,
// but the mismatch and match scores
// are only added when the pair has valid positions.
func (pc PairCounts) SOP() int {
	var score int
	if pc.Valid() != 0 {
		score += pc.matches() * matchScore
		score += (pc.subs() + pc.OneGap) * mismatchScore
	}
	score += pc.OneGap * gapScore
	return score
}

// Rates is a summary of the pairwise substitutions
// in an alignment.
type Rates struct {
	// Mean transition and transversion rates
	// over all pairs of sequences.
	Transition   float64
	Transversion float64

	// Sum-of-pairs score of the alignment.
	SOP int

	// Frequency of each substitution type
	// relative to all the substitutions.
	Subs [numSubs]float64
}

// SubstitutionRates compares every pair of sequences
// in an alignment
// and returns the summary of the substitutions.
func SubstitutionRates(a *Alignment) Rates {
	var r Rates
	var ts, tv []float64
	var subs [numSubs]int
	for i := 0; i < len(a.seqs)-1; i++ {
		for j := i + 1; j < len(a.seqs); j++ {
			pc := ComparePair(a.seqs[i], a.seqs[j])
			ts = append(ts, pc.Transition())
			tv = append(tv, pc.Transversion())
			r.SOP += pc.SOP()
			for k, x := range pc.Subs {
				subs[k] += x
			}
		}
	}

	if len(ts) > 0 {
		r.Transition = stat.Mean(ts, nil)
		r.Transversion = stat.Mean(tv, nil)
	}

	var sum int
	for _, x := range subs {
		sum += x
	}
	if sum == 0 {
		return r
	}
	for k, x := range subs {
		r.Subs[k] = float64(x) / float64(sum)
	}
	return r
}
