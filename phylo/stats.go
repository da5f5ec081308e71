// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// A Summary is a description
// of a distribution of values.
type Summary struct {
	Max     float64
	Min     float64
	Mean    float64
	Std     float64 // population standard deviation
	Entropy float64 // see DistEntropy
}

// Summarize returns the summary of a set of values.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, errors.New("empty distribution")
	}

	mean, std := stat.PopMeanStdDev(values, nil)
	return Summary{
		Max:     floats.Max(values),
		Min:     floats.Min(values),
		Mean:    mean,
		Std:     std,
		Entropy: DistEntropy(values),
	}, nil
}

// Epsilon is the value added to a distribution
// to calculate its entropy
// when the distribution sums to zero
// or has a zero value.
const Epsilon = 1e-6

// DistEntropy returns the entropy,
// in bits,
// of a distribution of values
// normalized by its sum.
//
// If the sum of the values is zero,
// Epsilon is added to each value
// (instead of normalizing).
// If the result is not a number
// (e.g., there is a zero value),
// Epsilon is added to each normalized value
// and the entropy is calculated again.
func DistEntropy(values []float64) float64 {
	p := make([]float64, len(values))
	if sum := floats.Sum(values); sum != 0 {
		for i, v := range values {
			p[i] = v / sum
		}
	} else {
		for i, v := range values {
			p[i] = v + Epsilon
		}
	}

	e := bitEntropy(p)
	if math.IsNaN(e) {
		floats.AddConst(Epsilon, p)
		e = bitEntropy(p)
	}
	return e
}

func bitEntropy(p []float64) float64 {
	var e float64
	for _, x := range p {
		e += x * math.Log2(x)
	}
	return -e
}

// BranchLengths returns the lengths of all the branches
// of a tree.
// The root is ignored.
func BranchLengths(t *Tree) []float64 {
	nodes := t.Nodes()[1:]
	bl := make([]float64, 0, len(nodes))
	for _, n := range nodes {
		bl = append(bl, n.Len)
	}
	return bl
}

// BranchLengthStats returns the summary
// of the branch lengths of a tree.
func BranchLengthStats(t *Tree) (Summary, error) {
	return Summarize(BranchLengths(t))
}

// Mode is the way in which the distance
// between two terminals is measured.
type Mode int

// Valid distance modes.
const (
	// Actual uses the branch lengths of the tree.
	Actual Mode = iota

	// Topological counts the number of branches.
	Topological
)

// Distances returns the patristic distance
// (i.e., the sum of the branch lengths
// in the path that connects two terminals)
// between each pair of terminals.
//
// In Topological mode,
// a copy of the tree with all branches
// of length 1 is used,
// so the tree is never modified.
func Distances(t *Tree, mode Mode) []float64 {
	if mode == Topological {
		t = t.Clone()
		for _, n := range t.Nodes()[1:] {
			n.Len = 1
		}
	}

	ls := t.Leaves()
	if len(ls) < 2 {
		return nil
	}

	dist := make([]float64, 0, len(ls)*(len(ls)-1)/2)
	anc := make(map[*Node]float64)
	for i, a := range ls[:len(ls)-1] {
		clear(anc)
		var d float64
		for n := a; n != nil; n = n.Parent {
			anc[n] = d
			d += n.Len
		}

		for _, b := range ls[i+1:] {
			var d float64
			n := b
			for {
				if x, ok := anc[n]; ok {
					d += x
					break
				}
				d += n.Len
				n = n.Parent
			}
			dist = append(dist, d)
		}
	}
	return dist
}

// Diameters returns the summary of the patristic distances
// between all pairs of terminals.
func Diameters(t *Tree, mode Mode) (Summary, error) {
	dist := Distances(t, mode)
	if len(dist) == 0 {
		return Summary{}, errors.New("tree with less than two terminals")
	}
	return Summarize(dist)
}

// CherryFraction returns the fraction of terminals
// in cherries
// (McKenzie and Steel 2000),
// i.e., twice the number of pairs of terminals
// with the same parent,
// divided by the number of terminals.
//
// In a multifurcating node
// all the pairs of terminal children are counted,
// so the fraction can be greater than one.
func CherryFraction(t *Tree) float64 {
	var leaves, cherries int
	for _, n := range t.Nodes() {
		var k int
		for _, c := range n.Children {
			if c.IsLeaf() {
				k++
			}
		}
		cherries += k * (k - 1) / 2
		if n.IsLeaf() {
			leaves++
		}
	}
	return 2 * float64(cherries) / float64(leaves)
}
